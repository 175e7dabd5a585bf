// internal/handlers/generate_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/service"
	"go_5_flashcard_keep/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type GenerateHandler struct {
	service service.GeneratorService
	logger  *slog.Logger
}

func NewGenerateHandler(s service.GeneratorService, logger *slog.Logger) *GenerateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateHandler{
		service: s,
		logger:  logger,
	}
}

// PostGenerate はテキストからカードを自動生成して保存するためのハンドラ
func (h *GenerateHandler) PostGenerate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostGenerate"))

	category, ok := categoryParam(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("category", category))

	var req model.GenerateRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode generate request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			appErr := model.NewAppError("VALIDATION_ERROR", translatedMsg, firstErr.Field(), model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	result, err := h.service.Generate(r.Context(), category, &req)
	if err != nil {
		logger.Error("Error generating cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Cards generated successfully", slog.Int("generated", result.Generated), slog.String("method", req.Method))
	webutil.RespondWithJSON(w, http.StatusCreated, result, logger)
}
