package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/jwt"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/usecase/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestIdentityHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockIdentityService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name: "успешная регистрация",
			requestBody: identity.RegisterRequest{
				Email:                  "alice@test.com",
				Password:               "secure-password",
				FirstName:              "Alice",
				LastName:               "Wong",
				DateOfBirth:            "1990-01-15",
				PassportIssuingCountry: "Singapore",
				PassportNumber:         "A12345678",
				PassportExpiry:         "2030-01-15",
			},
			mockSetup: func(m *MockIdentityService) {
				created := CreateTestIdentity(uuid.New(), "Alice", "Wong", "A12345678")
				m.On("Register", mock.Anything, mock.AnythingOfType("*identity.RegisterRequest")).
					Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.True(t, resp["success"].(bool))
				data := resp["data"].(map[string]interface{})
				assert.Equal(t, "A12345678", data["passport_number"])
				// Хэш пароля не попадает в ответ
				_, exposed := data["password_hash"]
				assert.False(t, exposed)
			},
		},
		{
			name: "занятый email",
			requestBody: identity.RegisterRequest{
				Email:    "alice@test.com",
				Password: "secure-password",
			},
			mockSetup: func(m *MockIdentityService) {
				m.On("Register", mock.Anything, mock.Anything).
					Return(nil, domain.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.False(t, resp["success"].(bool))
			},
		},
		{
			name:        "невалидный JSON",
			requestBody: "invalid json",
			mockSetup: func(m *MockIdentityService) {
				// Mock не будет вызван
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.False(t, resp["success"].(bool))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockIdentityService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewIdentityHandler(mockService, log)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler.Register(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)
			tt.checkResponse(t, response)

			mockService.AssertExpectations(t)
		})
	}
}

func TestIdentityHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockIdentityService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name: "успешный вход",
			requestBody: identity.LoginRequest{
				Email:    "alice@test.com",
				Password: "secure-password",
			},
			mockSetup: func(m *MockIdentityService) {
				response := &identity.LoginResponse{
					Identity: CreateTestIdentity(uuid.New(), "Alice", "Wong", "A12345678"),
					Token:    &jwt.Token{AccessToken: "signed-token"},
				}
				m.On("Login", mock.Anything, mock.AnythingOfType("*identity.LoginRequest")).
					Return(response, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.True(t, resp["success"].(bool))
				data := resp["data"].(map[string]interface{})
				token := data["token"].(map[string]interface{})
				assert.Equal(t, "signed-token", token["access_token"])
			},
		},
		{
			name: "неверные учетные данные",
			requestBody: identity.LoginRequest{
				Email:    "alice@test.com",
				Password: "wrong",
			},
			mockSetup: func(m *MockIdentityService) {
				m.On("Login", mock.Anything, mock.Anything).
					Return(nil, domain.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.False(t, resp["success"].(bool))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockIdentityService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewIdentityHandler(mockService, log)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)
			tt.checkResponse(t, response)

			mockService.AssertExpectations(t)
		})
	}
}
