package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/usecase/preset"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPresetHandler_CreatePreset(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockPresetService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name: "успешное создание пресета с участниками",
			requestBody: createPresetBody{
				Name: "Family trip",
				Members: []preset.MemberInput{
					{FirstName: "Bob", LastName: "Tan", PassportNumber: "C98765432"},
					{FirstName: "Charlie", LastName: "Lim", PassportNumber: "UK7654321"},
				},
			},
			mockSetup: func(m *MockPresetService) {
				response := &preset.CreatePresetResponse{
					Preset: &domain.Preset{
						ID:          uuid.New(),
						OwnerID:     userID,
						Name:        "Family trip",
						MemberCount: 2,
					},
					Members: []preset.MemberInput{
						{FirstName: "Bob", LastName: "Tan", PassportNumber: "C98765432"},
						{FirstName: "Charlie", LastName: "Lim", PassportNumber: "UK7654321"},
					},
				}
				m.On("CreatePreset", mock.Anything, mock.MatchedBy(func(req *preset.CreatePresetRequest) bool {
					return req.OwnerID == userID && req.Name == "Family trip" && len(req.Members) == 2
				})).Return(response, nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.True(t, resp["success"].(bool))
				data := resp["data"].(map[string]interface{})
				members := data["members"].([]interface{})
				assert.Len(t, members, 2)
				first := members[0].(map[string]interface{})
				// Имена в ответе - те, что прислал клиент
				assert.Equal(t, "Bob", first["first_name"])
			},
		},
		{
			name: "неизвестный паспорт участника - пресет не создается",
			requestBody: createPresetBody{
				Name: "Broken",
				Members: []preset.MemberInput{
					{FirstName: "Nobody", LastName: "Nowhere", PassportNumber: "ZZZ000"},
				},
			},
			mockSetup: func(m *MockPresetService) {
				m.On("CreatePreset", mock.Anything, mock.Anything).
					Return(nil, domain.ErrTravellerNotFound)
			},
			expectedStatus: http.StatusNotFound,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.False(t, resp["success"].(bool))
			},
		},
		{
			name: "пустое имя пресета",
			requestBody: createPresetBody{
				Name: "",
			},
			mockSetup: func(m *MockPresetService) {
				m.On("CreatePreset", mock.Anything, mock.Anything).
					Return(nil, domain.ErrInvalidPresetName)
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.False(t, resp["success"].(bool))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPresetService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewPresetHandler(mockService, log)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/presets", bytes.NewReader(body))
			req = req.WithContext(CreateAuthContext(t, userID, "alice@test.com"))
			w := httptest.NewRecorder()

			handler.CreatePreset(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)
			tt.checkResponse(t, response)

			mockService.AssertExpectations(t)
		})
	}
}

func TestPresetHandler_GetPresetMembers(t *testing.T) {
	presetID := uuid.New()

	tests := []struct {
		name           string
		presetID       string
		mockSetup      func(*MockPresetService)
		expectedStatus int
	}{
		{
			name:     "участники пресета",
			presetID: presetID.String(),
			mockSetup: func(m *MockPresetService) {
				members := []*domain.Identity{
					CreateTestIdentity(uuid.New(), "Bob", "Tan", "C98765432"),
				}
				m.On("ListPresetMembers", mock.Anything, presetID).
					Return(members, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "несуществующий пресет",
			presetID: presetID.String(),
			mockSetup: func(m *MockPresetService) {
				m.On("ListPresetMembers", mock.Anything, presetID).
					Return(nil, domain.ErrPresetNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:     "невалидный preset ID",
			presetID: "invalid-uuid",
			mockSetup: func(m *MockPresetService) {
				// Mock не будет вызван
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPresetService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewPresetHandler(mockService, log)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/presets/"+tt.presetID+"/members", nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.presetID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.GetPresetMembers(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			mockService.AssertExpectations(t)
		})
	}
}
