// internal/handlers/handlers.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// categoryParam はURLからカテゴリ名を取り出して検証します。
// 不正な場合はエラーレスポンスを書き込み済みで ok=false を返します。
func categoryParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	category := chi.URLParam(r, "category")
	if !model.ValidCategoryName(category) {
		logger.Warn("Invalid category name in URL", slog.String("category", category))
		appErr := model.NewAppError("INVALID_URL_PARAM", "カテゴリ名の形式が正しくありません。", "category", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return "", false
	}
	return category, true
}
