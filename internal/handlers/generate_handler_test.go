// internal/handlers/generate_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_5_flashcard_keep/internal/handlers"
	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/service/mocks"
)

func TestGenerateHandler_PostGenerate(t *testing.T) {
	newGenerateRouter := func(h *handlers.GenerateHandler) *chi.Mux {
		router := chi.NewRouter()
		router.Post("/api/v1/categories/{category}/generate", h.PostGenerate)
		return router
	}

	validReq := model.GenerateRequest{
		Text:   "The mitochondria is the powerhouse of the cell. Water boils at one hundred degrees.",
		Method: model.MethodCloze,
	}
	result := &model.GenerateResult{
		Generated: 2,
		Cards: []*model.Card{
			model.NewCard("The _____ is the powerhouse of the cell.", "mitochondria"),
			model.NewCard("Water boils at one _____ degrees.", "hundred"),
		},
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *mocks.GeneratorService)
		expectedStatus int
	}{
		{
			name: "正常系: カードが生成される",
			body: validReq,
			setupMock: func(m *mocks.GeneratorService) {
				m.On("Generate", mock.Anything, "bio", &validReq).
					Return(result, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "異常系: text がない",
			body:           map[string]string{"method": "cloze"},
			setupMock:      func(m *mocks.GeneratorService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "異常系: method が未対応",
			body:           map[string]string{"text": "some text", "method": "llm"},
			setupMock:      func(m *mocks.GeneratorService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "異常系: max_cards が負数",
			body:           map[string]interface{}{"text": "some text", "max_cards": -1},
			setupMock:      func(m *mocks.GeneratorService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := mocks.NewGeneratorService(t)
			tc.setupMock(mockSvc)
			router := newGenerateRouter(handlers.NewGenerateHandler(mockSvc, nil))

			req := createRequest(t, "POST", "/api/v1/categories/bio/generate", tc.body)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusCreated {
				var resp model.GenerateResult
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, 2, resp.Generated)
				assert.Len(t, resp.Cards, 2)
			}
		})
	}
}
