// internal/handlers/category_handler.go
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

type CategoryHandler struct {
	service service.CategoryService
	logger  *slog.Logger
}

func NewCategoryHandler(s service.CategoryService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryHandler{
		service: s,
		logger:  logger,
	}
}

// GetCategories はカテゴリ一覧（カード件数付き）を取得するためのハンドラ
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCategories"))

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		logger.Error("Error listing categories in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if categories == nil {
		categories = []*model.Category{}
	}
	logger.Info("Categories listed successfully", slog.Int("count", len(categories)))
	webutil.RespondWithJSON(w, http.StatusOK, categories, logger)
}

// PostCategory は新しいカテゴリ（空のカードファイル）を作成するためのハンドラ
func (h *CategoryHandler) PostCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCategory"))

	var req model.CreateCategoryRequest
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

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			logger.Info("Category already exists", slog.String("name", req.Name))
		} else {
			logger.Error("Error creating category in service", slog.Any("error", err), slog.Any("request", req))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Category created successfully", slog.String("name", category.Name))
	webutil.RespondWithJSON(w, http.StatusCreated, category, logger)
}

// PostMigrate は旧形式の単一ファイルをカテゴリ形式へ移行するためのハンドラ
func (h *CategoryHandler) PostMigrate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostMigrate"))

	result, err := h.service.MigrateLegacy(r.Context())
	if err != nil {
		logger.Error("Error migrating legacy data in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Legacy migration finished", slog.Bool("migrated", result.Migrated))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
