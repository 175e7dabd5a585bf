// internal/handlers/card_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/service"
	"go_5_flashcard_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CardHandler struct {
	service service.CardService
	logger  *slog.Logger
}

func NewCardHandler(s service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		service: s,
		logger:  logger,
	}
}

// PostCard は新しいカードを作成するためのハンドラ
func (h *CardHandler) PostCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCard"))

	category, ok := categoryParam(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("category", category))

	var req model.CreateCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()), slog.Any("request", req))

			// 最初のエラーを代表としてクライアントに返す
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)

			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	card, err := h.service.CreateCard(r.Context(), category, &req)
	if err != nil {
		logger.Error("Error creating card in service", slog.Any("error", err), slog.Any("request", req))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card created successfully", slog.String("card_id", card.ID))
	webutil.RespondWithJSON(w, http.StatusCreated, card, logger)
}

// GetCards はカード一覧を取得するためのハンドラ。search/sort クエリに対応。
func (h *CardHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCards"))

	category, ok := categoryParam(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("category", category))

	search := r.URL.Query().Get("search")
	sortKey := r.URL.Query().Get("sort")

	cards, err := h.service.ListCards(r.Context(), category, search, sortKey)
	if err != nil {
		logger.Error("Error listing cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if cards == nil {
		cards = []*model.Card{}
	}
	logger.Info("Cards listed successfully", slog.Int("count", len(cards)))
	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

// GetCard は特定のカードを取得するためのハンドラ
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCard"))

	category, ok := categoryParam(w, r, logger)
	if !ok {
		return
	}
	cardID := chi.URLParam(r, "card_id")
	logger = logger.With(slog.String("category", category), slog.String("card_id", cardID))

	card, err := h.service.GetCard(r.Context(), category, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Card not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting card from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card retrieved successfully")
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// PatchCard は特定のカードの一部（質問・回答・期日）を更新するためのハンドラ
func (h *CardHandler) PatchCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchCard"))

	category, ok := categoryParam(w, r, logger)
	if !ok {
		return
	}
	cardID := chi.URLParam(r, "card_id")
	logger = logger.With(slog.String("category", category), slog.String("card_id", cardID))

	var req model.PatchCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode PatchCard request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if req.Question == nil && req.Answer == nil && req.DueDate == nil {
		logger.Warn("PatchCard called with no fields provided for update", slog.Any("request", req))
		appErr := model.NewAppError("VALIDATION_ERROR", "更新するフィールドが指定されていません。", "", model.ErrInvalidInput)
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

	card, err := h.service.PatchCard(r.Context(), category, cardID, &req)
	if err != nil {
		logger.Error("Error patching card in service", slog.Any("error", err), slog.Any("request", req))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card patched successfully")
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// DeleteCard は特定のカードを削除するためのハンドラ
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCard"))

	category, ok := categoryParam(w, r, logger)
	if !ok {
		return
	}
	cardID := chi.URLParam(r, "card_id")
	logger = logger.With(slog.String("category", category), slog.String("card_id", cardID))

	err := h.service.DeleteCard(r.Context(), category, cardID)
	if err != nil {
		logger.Error("Error deleting card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateCard は特定のカードを複製するためのハンドラ。
// 学習状態は初期化され、内容のみコピーされます。
func (h *CardHandler) DuplicateCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DuplicateCard"))

	category, ok := categoryParam(w, r, logger)
	if !ok {
		return
	}
	cardID := chi.URLParam(r, "card_id")
	logger = logger.With(slog.String("category", category), slog.String("card_id", cardID))

	card, err := h.service.DuplicateCard(r.Context(), category, cardID)
	if err != nil {
		logger.Error("Error duplicating card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card duplicated successfully", slog.String("new_card_id", card.ID))
	webutil.RespondWithJSON(w, http.StatusCreated, card, logger)
}

// ImportCards はJSON配列のカードレコードを取り込むためのハンドラ。
// 取り込みは寛容で、question/answer を欠くレコードはスキップして件数を報告します。
func (h *CardHandler) ImportCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ImportCards"))

	category, ok := categoryParam(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("category", category))

	// 未知のフィールドを許容するため、DecodeJSONBody ではなく素のデコーダを使う
	var records []model.CardRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		logger.Warn("Failed to decode import body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "インポートデータはカードのJSON配列である必要があります。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	result, err := h.service.ImportCards(r.Context(), category, records)
	if err != nil {
		logger.Error("Error importing cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Cards imported successfully", slog.Int("imported", result.Imported), slog.Int("skipped", result.Skipped))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// ExportCards はカテゴリの全カードを保存形式そのままのJSON配列で返すためのハンドラ
func (h *CardHandler) ExportCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ExportCards"))

	category, ok := categoryParam(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("category", category))

	cards, err := h.service.ExportCards(r.Context(), category)
	if err != nil {
		logger.Error("Error exporting cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if cards == nil {
		cards = []*model.Card{}
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", category+".json"))
	logger.Info("Cards exported successfully", slog.Int("count", len(cards)))
	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}
