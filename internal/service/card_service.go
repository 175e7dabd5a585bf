// internal/service/card_service.go
package service

import (
	"context"
	"sort"
	"strings"

	"go_5_flashcard_keep/internal/middleware"
	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/repository"
)

type CardService interface {
	CreateCard(ctx context.Context, category string, req *model.CreateCardRequest) (*model.Card, error)
	GetCard(ctx context.Context, category, cardID string) (*model.Card, error)
	ListCards(ctx context.Context, category, search, sortKey string) ([]*model.Card, error)
	PatchCard(ctx context.Context, category, cardID string, req *model.PatchCardRequest) (*model.Card, error)
	DeleteCard(ctx context.Context, category, cardID string) error
	DuplicateCard(ctx context.Context, category, cardID string) (*model.Card, error)
	ImportCards(ctx context.Context, category string, records []model.CardRecord) (*model.ImportResult, error)
	ExportCards(ctx context.Context, category string) ([]*model.Card, error)
}

type cardService struct {
	cardRepo repository.CardRepository
}

func NewCardService(cardRepo repository.CardRepository) CardService {
	return &cardService{cardRepo: cardRepo}
}

// loadTolerant は読み込みエラーを報告だけして空ストアとして継続します。
// 読み込み失敗でカード操作全体をクラッシュさせない（StorageReadError）。
func (s *cardService) loadTolerant(ctx context.Context, category string) []*model.Card {
	cards, err := s.cardRepo.Load(ctx, category)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to load cards, continuing with empty store",
			"category", category, "error", err)
	}
	return cards
}

func (s *cardService) CreateCard(ctx context.Context, category string, req *model.CreateCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("category", category)

	question := strings.TrimSpace(req.Question)
	answer := strings.TrimSpace(req.Answer)
	// 手動追加では質問・答えともに空を認めない
	if question == "" || answer == "" {
		return nil, model.NewAppError("INVALID_INPUT", "質問と答えは空にできません。", "", model.ErrInvalidInput)
	}

	cards := s.loadTolerant(ctx, category)
	card := model.NewCard(question, answer)
	cards = append(cards, card)

	if err := s.cardRepo.Save(ctx, category, cards); err != nil {
		logger.Error("Failed to save cards after create", "error", err)
		return nil, model.NewAppError("STORAGE_WRITE_ERROR", "カードの保存に失敗しました。", "", model.ErrStorageWrite)
	}

	logger.Info("Card created", "card_id", card.ID)
	return card, nil
}

func (s *cardService) GetCard(ctx context.Context, category, cardID string) (*model.Card, error) {
	cards := s.loadTolerant(ctx, category)
	if card := findCard(cards, cardID); card != nil {
		return card, nil
	}
	return nil, model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)
}

func (s *cardService) ListCards(ctx context.Context, category, search, sortKey string) ([]*model.Card, error) {
	cards := s.loadTolerant(ctx, category)

	if search != "" {
		q := strings.ToLower(search)
		filtered := make([]*model.Card, 0, len(cards))
		for _, c := range cards {
			if strings.Contains(strings.ToLower(c.Question), q) || strings.Contains(strings.ToLower(c.Answer), q) {
				filtered = append(filtered, c)
			}
		}
		cards = filtered
	}

	switch sortKey {
	case "question":
		sort.SliceStable(cards, func(i, j int) bool {
			return strings.ToLower(cards[i].Question) < strings.ToLower(cards[j].Question)
		})
	case "created_at":
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].CreatedAt < cards[j].CreatedAt
		})
	case "ease_factor":
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].EaseFactor < cards[j].EaseFactor
		})
	}

	return cards, nil
}

func (s *cardService) PatchCard(ctx context.Context, category, cardID string, req *model.PatchCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("category", category, "card_id", cardID)

	cards := s.loadTolerant(ctx, category)
	card := findCard(cards, cardID)
	if card == nil {
		// 古いIDへの編集は警告してno-op（EditTargetNotFound）
		logger.Warn("Patch target not found")
		return nil, model.NewAppError("NOT_FOUND", "編集対象のカードが見つかりません。", "card_id", model.ErrNotFound)
	}

	// 外部から直接編集できるのは question / answer / due_date のみ。
	// スケジューリング状態と履歴はスケジューラだけが変更する。
	if req.Question != nil && strings.TrimSpace(*req.Question) != "" {
		card.Question = strings.TrimSpace(*req.Question)
	}
	if req.Answer != nil && strings.TrimSpace(*req.Answer) != "" {
		card.Answer = strings.TrimSpace(*req.Answer)
	}
	if req.DueDate != nil && *req.DueDate != "" {
		card.DueDate = *req.DueDate
	}

	if err := s.cardRepo.Save(ctx, category, cards); err != nil {
		logger.Error("Failed to save cards after patch", "error", err)
		return nil, model.NewAppError("STORAGE_WRITE_ERROR", "カードの保存に失敗しました。", "", model.ErrStorageWrite)
	}

	logger.Info("Card patched")
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, category, cardID string) error {
	logger := middleware.GetLogger(ctx).With("category", category, "card_id", cardID)

	cards := s.loadTolerant(ctx, category)
	remaining := make([]*model.Card, 0, len(cards))
	for _, c := range cards {
		if c.ID != cardID {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == len(cards) {
		logger.Warn("Delete target not found")
		return model.NewAppError("NOT_FOUND", "削除対象のカードが見つかりません。", "card_id", model.ErrNotFound)
	}

	if err := s.cardRepo.Save(ctx, category, remaining); err != nil {
		logger.Error("Failed to save cards after delete", "error", err)
		return model.NewAppError("STORAGE_WRITE_ERROR", "カードの保存に失敗しました。", "", model.ErrStorageWrite)
	}

	logger.Info("Card deleted")
	return nil
}

func (s *cardService) DuplicateCard(ctx context.Context, category, cardID string) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("category", category, "card_id", cardID)

	cards := s.loadTolerant(ctx, category)
	source := findCard(cards, cardID)
	if source == nil {
		return nil, model.NewAppError("NOT_FOUND", "複製元のカードが見つかりません。", "card_id", model.ErrNotFound)
	}

	dup := source.Duplicate()
	cards = append(cards, dup)

	if err := s.cardRepo.Save(ctx, category, cards); err != nil {
		logger.Error("Failed to save cards after duplicate", "error", err)
		return nil, model.NewAppError("STORAGE_WRITE_ERROR", "カードの保存に失敗しました。", "", model.ErrStorageWrite)
	}

	logger.Info("Card duplicated", "new_card_id", dup.ID)
	return dup, nil
}

// ImportCards は question と answer を持つレコードだけを受け入れて追記します。
// 欠けたレコードは単体でスキップし、インポートは継続する（ImportValidationSkip）。
// 既存カードの置き換えも内容による重複排除も行わない。
func (s *cardService) ImportCards(ctx context.Context, category string, records []model.CardRecord) (*model.ImportResult, error) {
	logger := middleware.GetLogger(ctx).With("category", category)

	cards := s.loadTolerant(ctx, category)

	result := &model.ImportResult{}
	for _, rec := range records {
		if rec.Question == nil || rec.Answer == nil {
			result.Skipped++
			continue
		}
		cards = append(cards, model.CardFromRecord(rec))
		result.Imported++
	}

	if result.Imported > 0 {
		if err := s.cardRepo.Save(ctx, category, cards); err != nil {
			logger.Error("Failed to save cards after import", "error", err)
			return nil, model.NewAppError("STORAGE_WRITE_ERROR", "インポート結果の保存に失敗しました。", "", model.ErrStorageWrite)
		}
	}

	logger.Info("Cards imported", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// ExportCards はカテゴリの現在のカード一覧を永続化形式と同じスキーマで返します。
func (s *cardService) ExportCards(ctx context.Context, category string) ([]*model.Card, error) {
	return s.loadTolerant(ctx, category), nil
}

func findCard(cards []*model.Card, cardID string) *model.Card {
	for _, c := range cards {
		if c.ID == cardID {
			return c
		}
	}
	return nil
}
