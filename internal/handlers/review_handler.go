// internal/handlers/review_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/service"
	"go_5_flashcard_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		service: s,
		logger:  logger,
	}
}

// GetNextCard は次に学習すべきカードを1枚返すためのハンドラ。
// 採点されるまで同じカードを返し続けます。
func (h *ReviewHandler) GetNextCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetNextCard"))

	category, ok := categoryParam(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("category", category))

	card, err := h.service.GetNextCard(r.Context(), category)
	if err != nil {
		if errors.Is(err, model.ErrNothingToReview) {
			logger.Info("No cards available for review", slog.Any("error", err))
		} else {
			logger.Error("Error getting next card from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Next review card selected", slog.String("card_id", card.CardID))
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// PostGrade はカードに評価（1〜3）を付け、スケジュールを更新するためのハンドラ
func (h *ReviewHandler) PostGrade(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostGrade"))

	category, ok := categoryParam(w, r, logger)
	if !ok {
		return
	}
	cardID := chi.URLParam(r, "card_id")
	logger = logger.With(slog.String("category", category), slog.String("card_id", cardID))

	var req model.SubmitGradeRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode grade request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()), slog.Any("request", req))
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

	card, err := h.service.SubmitGrade(r.Context(), category, cardID, *req.Grade)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Card to grade not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error submitting grade in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Grade submitted successfully",
		slog.Int("grade", *req.Grade),
		slog.Int("interval", card.Interval),
		slog.String("due_date", card.DueDate),
	)
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}
