// internal/service/review_service.go
package service

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"go_5_flashcard_keep/internal/config"
	"go_5_flashcard_keep/internal/middleware"
	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/repository"
	"go_5_flashcard_keep/internal/sm2"
)

type ReviewService interface {
	// GetNextCard は次に提示するカードを返します。採点が送信されるまで
	// 同じカードを返し続ける（セッション固定）。
	GetNextCard(ctx context.Context, category string) (*model.ReviewCardResponse, error)
	// SubmitGrade は採点を適用して保存し、更新後のカードを返します。
	SubmitGrade(ctx context.Context, category, cardID string, grade int) (*model.Card, error)
}

type reviewService struct {
	cardRepo repository.CardRepository
	cfg      *config.Config
	rng      *rand.Rand

	mu     sync.Mutex
	pinned map[string]string // カテゴリ → 採点待ちのカードID
}

func NewReviewService(cardRepo repository.CardRepository, cfg *config.Config, rng *rand.Rand) ReviewService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &reviewService{
		cardRepo: cardRepo,
		cfg:      cfg,
		rng:      rng,
		pinned:   make(map[string]string),
	}
}

func (s *reviewService) GetNextCard(ctx context.Context, category string) (*model.ReviewCardResponse, error) {
	logger := middleware.GetLogger(ctx).With("category", category)

	cards, err := s.cardRepo.Load(ctx, category)
	if err != nil {
		// StorageReadError は空ストア扱いで復習を続行する
		logger.Error("Failed to load cards for review, treating as empty store", "error", err)
	}
	if len(cards) == 0 {
		return nil, model.NewAppError("NOTHING_TO_REVIEW", "復習するカードがありません。", "", model.ErrNothingToReview)
	}

	// 採点待ちのカードがまだ存在するならそれを出し続ける
	s.mu.Lock()
	pinnedID := s.pinned[category]
	s.mu.Unlock()
	if pinnedID != "" {
		if card := findCard(cards, pinnedID); card != nil {
			return reviewResponse(card), nil
		}
	}

	var card *model.Card
	switch s.cfg.Review.Policy {
	case config.PolicyDue:
		card = selectDue(cards, time.Now())
	default:
		s.mu.Lock()
		card = selectWeighted(cards, s.rng)
		s.mu.Unlock()
	}
	if card == nil {
		// 期日ゲートで対象0件なのはエラーではなく「今日はおしまい」
		return nil, model.NewAppError("NOTHING_TO_REVIEW", "今日は復習するカードがありません。", "", model.ErrNothingToReview)
	}

	s.mu.Lock()
	s.pinned[category] = card.ID
	s.mu.Unlock()

	logger.Debug("Next card selected", "card_id", card.ID, "policy", s.cfg.Review.Policy)
	return reviewResponse(card), nil
}

func (s *reviewService) SubmitGrade(ctx context.Context, category, cardID string, grade int) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("category", category, "card_id", cardID)

	cards, err := s.cardRepo.Load(ctx, category)
	if err != nil {
		logger.Error("Failed to load cards for grading, treating as empty store", "error", err)
	}

	card := findCard(cards, cardID)
	if card == nil {
		logger.Warn("Grade target not found")
		return nil, model.NewAppError("NOT_FOUND", "採点対象のカードが見つかりません。", "card_id", model.ErrNotFound)
	}

	sm2.Grade(card, grade, time.Now())

	if err := s.cardRepo.Save(ctx, category, cards); err != nil {
		logger.Error("Failed to save cards after grading", "error", err)
		return nil, model.NewAppError("STORAGE_WRITE_ERROR", "採点結果の保存に失敗しました。", "", model.ErrStorageWrite)
	}

	// 採点が済んだので次回は再選択する
	s.mu.Lock()
	delete(s.pinned, category)
	s.mu.Unlock()

	logger.Info("Card graded", "grade", grade, "interval", card.Interval, "ease_factor", card.EaseFactor)
	return card, nil
}

// selectWeighted は ease_factor で重み付けした連続復習の1枚を選びます。
// EFが低い（=苦手な）カードほど重く、未復習のカードは1.2倍ブーストする。
// 累積重み配列＋一様乱数1回＋線形走査で自前実装する。
func selectWeighted(cards []*model.Card, rng *rand.Rand) *model.Card {
	if len(cards) == 0 {
		return nil
	}

	cumulative := make([]float64, len(cards))
	total := 0.0
	for i, c := range cards {
		weight := 4.0 - c.EaseFactor
		if weight < 0.1 {
			weight = 0.1
		}
		if len(c.History) == 0 {
			weight *= 1.2
		}
		total += weight
		cumulative[i] = total
	}

	draw := rng.Float64() * total
	for i, bound := range cumulative {
		if draw < bound {
			return cards[i]
		}
	}
	return cards[len(cards)-1] // 浮動小数の端数対策
}

// selectDue は期日ゲート式の選択です。due_date が空か今日以前のカードを
// (due_date, created_at) 昇順に並べ、先頭を返す。対象が無ければ nil。
func selectDue(cards []*model.Card, today time.Time) *model.Card {
	var pool []*model.Card
	for _, c := range cards {
		if c.IsDue(today) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return nil
	}
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].DueDate != pool[j].DueDate {
			return pool[i].DueDate < pool[j].DueDate
		}
		return pool[i].CreatedAt < pool[j].CreatedAt
	})
	return pool[0]
}

func reviewResponse(card *model.Card) *model.ReviewCardResponse {
	return &model.ReviewCardResponse{
		CardID:      card.ID,
		Question:    card.Question,
		Answer:      card.Answer,
		EaseFactor:  card.EaseFactor,
		Repetitions: card.Repetitions,
		Interval:    card.Interval,
		DueDate:     card.DueDate,
		Reviews:     len(card.History),
	}
}
