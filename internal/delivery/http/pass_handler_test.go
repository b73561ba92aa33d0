package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/frontandrew/crosspass/internal/usecase/pass"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPassHandler_CreatePass(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		setupContext   func() context.Context
		requestBody    interface{}
		mockSetup      func(*MockPassService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name: "успешное создание пропуска",
			setupContext: func() context.Context {
				return CreateAuthContext(t, userID, "alice@test.com")
			},
			requestBody: createPassBody{
				PassDate:                 "2026-09-01 08:00:00",
				VehicleNumber:            "SKR9859E",
				TravellerPassportNumbers: []string{"A12345678", "C98765432"},
			},
			mockSetup: func(m *MockPassService) {
				passDate := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
				created := CreateTestPass(uuid.New(), userID, uuid.New(), passDate)
				m.On("CreatePass", mock.Anything, mock.MatchedBy(func(req *pass.CreatePassRequest) bool {
					return req.CreatorID == userID && req.VehicleNumber == "SKR9859E" && len(req.TravellerPassportNumbers) == 2
				})).Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.True(t, resp["success"].(bool))
				data := resp["data"].(map[string]interface{})
				assert.False(t, data["utilized"].(bool))
			},
		},
		{
			name: "неизвестный паспорт путешественника",
			setupContext: func() context.Context {
				return CreateAuthContext(t, userID, "alice@test.com")
			},
			requestBody: createPassBody{
				PassDate:                 "2026-09-01 08:00:00",
				VehicleNumber:            "SKR9859E",
				TravellerPassportNumbers: []string{"ZZZ000"},
			},
			mockSetup: func(m *MockPassService) {
				m.On("CreatePass", mock.Anything, mock.Anything).
					Return(nil, domain.ErrTravellerNotFound)
			},
			expectedStatus: http.StatusNotFound,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.False(t, resp["success"].(bool))
			},
		},
		{
			name: "невалидная дата пропуска",
			setupContext: func() context.Context {
				return CreateAuthContext(t, userID, "alice@test.com")
			},
			requestBody: createPassBody{
				PassDate:      "not-a-date",
				VehicleNumber: "SKR9859E",
			},
			mockSetup: func(m *MockPassService) {
				m.On("CreatePass", mock.Anything, mock.Anything).
					Return(nil, domain.ErrInvalidPassDate)
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.False(t, resp["success"].(bool))
			},
		},
		{
			name: "отсутствие авторизации",
			setupContext: func() context.Context {
				return context.Background()
			},
			requestBody: createPassBody{
				PassDate:      "2026-09-01 08:00:00",
				VehicleNumber: "SKR9859E",
			},
			mockSetup: func(m *MockPassService) {
				// Mock не будет вызван
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.False(t, resp["success"].(bool))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPassService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewPassHandler(mockService, log)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/passes", bytes.NewReader(body))
			req = req.WithContext(tt.setupContext())
			w := httptest.NewRecorder()

			handler.CreatePass(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)
			tt.checkResponse(t, response)

			mockService.AssertExpectations(t)
		})
	}
}

func TestPassHandler_GetMyPasses(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		queryParams    string
		mockSetup      func(*MockPassService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name:        "все пропуска без фильтра",
			queryParams: "",
			mockSetup: func(m *MockPassService) {
				passDate := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
				passes := []*domain.Pass{
					CreateTestPass(uuid.New(), userID, uuid.New(), passDate),
					CreateTestPass(uuid.New(), userID, uuid.New(), passDate.Add(24*time.Hour)),
				}
				m.On("ListPasses", mock.Anything, userID, repository.PassFilterAll, 50, 0).
					Return(passes, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.True(t, resp["success"].(bool))
				data := resp["data"].([]interface{})
				assert.Len(t, data, 2)
			},
		},
		{
			name:        "только погашенные",
			queryParams: "?filter=utilized",
			mockSetup: func(m *MockPassService) {
				m.On("ListPasses", mock.Anything, userID, repository.PassFilterUtilized, 50, 0).
					Return([]*domain.Pass{}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.True(t, resp["success"].(bool))
				data := resp["data"].([]interface{})
				assert.Empty(t, data)
			},
		},
		{
			name:        "пагинация",
			queryParams: "?limit=10&offset=20",
			mockSetup: func(m *MockPassService) {
				m.On("ListPasses", mock.Anything, userID, repository.PassFilterAll, 10, 20).
					Return([]*domain.Pass{}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				pagination := resp["pagination"].(map[string]interface{})
				assert.Equal(t, float64(10), pagination["limit"])
				assert.Equal(t, float64(20), pagination["offset"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPassService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewPassHandler(mockService, log)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/passes/me"+tt.queryParams, nil)
			req = req.WithContext(CreateAuthContext(t, userID, "alice@test.com"))
			w := httptest.NewRecorder()

			handler.GetMyPasses(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)
			tt.checkResponse(t, response)

			mockService.AssertExpectations(t)
		})
	}
}

func TestPassHandler_UtilizePass(t *testing.T) {
	passID := uuid.New()

	tests := []struct {
		name           string
		passID         string
		mockSetup      func(*MockPassService)
		expectedStatus int
	}{
		{
			name:   "успешное гашение",
			passID: passID.String(),
			mockSetup: func(m *MockPassService) {
				m.On("MarkUtilized", mock.Anything, passID).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "повторное гашение",
			passID: passID.String(),
			mockSetup: func(m *MockPassService) {
				m.On("MarkUtilized", mock.Anything, passID).Return(domain.ErrPassAlreadyUtilized)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "невалидный pass ID",
			passID: "invalid-uuid",
			mockSetup: func(m *MockPassService) {
				// Mock не будет вызван
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPassService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewPassHandler(mockService, log)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/passes/"+tt.passID+"/utilize", nil)

			// Настройка chi router context для path параметра
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.passID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.UtilizePass(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			mockService.AssertExpectations(t)
		})
	}
}
