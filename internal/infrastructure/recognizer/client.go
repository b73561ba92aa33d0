package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ErrNoPlateDetected - на изображении не найден автомобильный номер
// Для КПП это эквивалент любого другого сбоя распознавания
var ErrNoPlateDetected = errors.New("no license plate detected")

// Client - интерфейс для сервиса распознавания номеров
type Client interface {
	// RecognizePlate распознает номер автомобиля на изображении
	RecognizePlate(ctx context.Context, image []byte) (string, error)
}

// recognitionResponse - ответ PlateRecognizer API
type recognitionResponse struct {
	Results []struct {
		Plate string  `json:"plate"`
		Score float64 `json:"score"`
	} `json:"results"`
}

// httpClient - HTTP реализация клиента PlateRecognizer
type httpClient struct {
	apiURL     string
	apiToken   string
	httpClient *http.Client
}

// NewHTTPClient создает новый HTTP клиент для PlateRecognizer API
func NewHTTPClient(apiURL, apiToken string, timeout time.Duration) Client {
	return &httpClient{
		apiURL:   apiURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// RecognizePlate отправляет изображение на распознавание
// Изображение уходит как multipart поле "upload" с Token-аутентификацией
func (c *httpClient) RecognizePlate(ctx context.Context, image []byte) (string, error) {
	var plate string
	var lastErr error

	maxRetries := 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Растущая задержка между попытками
			backoff := time.Duration(attempt) * time.Second
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		plate, lastErr = c.doRequest(ctx, image)
		if lastErr == nil {
			return plate, nil
		}

		// "Номер не найден" - окончательный ответ, повторять бессмысленно
		if errors.Is(lastErr, ErrNoPlateDetected) {
			return "", lastErr
		}
	}

	return "", fmt.Errorf("recognition failed after %d attempts: %w", maxRetries, lastErr)
}

// doRequest выполняет один запрос к PlateRecognizer и разбирает ответ
func (c *httpClient) doRequest(ctx context.Context, image []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("upload", "upload.jpg")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiToken)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("recognizer returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result recognitionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(result.Results) == 0 {
		return "", ErrNoPlateDetected
	}

	return result.Results[0].Plate, nil
}
