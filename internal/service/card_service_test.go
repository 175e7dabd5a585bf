// internal/service/card_service_test.go
package service

import (
	"context"
	"testing"

	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestCardService_CreateCard(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		req       *model.CreateCardRequest
		setupMock func(m *mocks.CardRepository)
		wantErr   error
	}{
		{
			name: "正常系: カード作成と保存",
			req:  &model.CreateCardRequest{Question: "What is Go?", Answer: "A language"},
			setupMock: func(m *mocks.CardRepository) {
				m.On("Load", ctx, "dev").Return([]*model.Card{}, nil).Once()
				m.On("Save", ctx, "dev", mock.MatchedBy(func(cards []*model.Card) bool {
					return len(cards) == 1 && cards[0].Question == "What is Go?"
				})).Return(nil).Once()
			},
		},
		{
			name:    "異常系: 空の質問は入力エラー",
			req:     &model.CreateCardRequest{Question: "   ", Answer: "a"},
			wantErr: model.ErrInvalidInput,
		},
		{
			name:    "異常系: 空の答えは入力エラー",
			req:     &model.CreateCardRequest{Question: "q", Answer: ""},
			wantErr: model.ErrInvalidInput,
		},
		{
			name: "異常系: 保存失敗はStorageWriteError",
			req:  &model.CreateCardRequest{Question: "q", Answer: "a"},
			setupMock: func(m *mocks.CardRepository) {
				m.On("Load", ctx, "dev").Return([]*model.Card{}, nil).Once()
				m.On("Save", ctx, "dev", mock.Anything).Return(assert.AnError).Once()
			},
			wantErr: model.ErrStorageWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewCardRepository(t)
			if tt.setupMock != nil {
				tt.setupMock(mockRepo)
			}
			svc := NewCardService(mockRepo)

			card, err := svc.CreateCard(ctx, "dev", tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, card)
			} else {
				require.NoError(t, err)
				require.NotNil(t, card)
				assert.NotEmpty(t, card.ID)
				assert.Equal(t, model.DefaultEaseFactor, card.EaseFactor)
				assert.Empty(t, card.History)
			}
		})
	}
}

func TestCardService_ListCards(t *testing.T) {
	ctx := context.Background()
	cards := []*model.Card{
		{ID: "1", Question: "Banana color", Answer: "yellow", CreatedAt: "2025-03-01", EaseFactor: 3.0},
		{ID: "2", Question: "Apple color", Answer: "red", CreatedAt: "2025-01-01", EaseFactor: 1.5},
		{ID: "3", Question: "Sky color", Answer: "blue", CreatedAt: "2025-02-01", EaseFactor: 2.5},
	}

	tests := []struct {
		name    string
		search  string
		sortKey string
		wantIDs []string
	}{
		{"検索なしは元の順序", "", "", []string{"1", "2", "3"}},
		{"質問と答えの部分一致検索", "RED", "", []string{"2"}},
		{"質問でソート", "", "question", []string{"2", "1", "3"}},
		{"作成日でソート", "", "created_at", []string{"2", "3", "1"}},
		{"ease_factorでソート", "", "ease_factor", []string{"2", "3", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewCardRepository(t)
			mockRepo.On("Load", ctx, "colors").Return(cards, nil).Once()
			svc := NewCardService(mockRepo)

			got, err := svc.ListCards(ctx, "colors", tt.search, tt.sortKey)

			require.NoError(t, err)
			gotIDs := make([]string, len(got))
			for i, c := range got {
				gotIDs[i] = c.ID
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestCardService_PatchCard(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: question/answer/due_dateだけ更新される", func(t *testing.T) {
		card := model.NewCard("old q", "old a")
		card.Repetitions = 3
		mockRepo := mocks.NewCardRepository(t)
		mockRepo.On("Load", ctx, "dev").Return([]*model.Card{card}, nil).Once()
		mockRepo.On("Save", ctx, "dev", mock.Anything).Return(nil).Once()

		svc := NewCardService(mockRepo)
		got, err := svc.PatchCard(ctx, "dev", card.ID, &model.PatchCardRequest{
			Question: strptr("new q"),
			DueDate:  strptr("2025-12-01"),
		})

		require.NoError(t, err)
		assert.Equal(t, "new q", got.Question)
		assert.Equal(t, "old a", got.Answer) // 未指定は据え置き
		assert.Equal(t, "2025-12-01", got.DueDate)
		assert.Equal(t, 3, got.Repetitions) // スケジューリング状態は触らない
	})

	t.Run("異常系: 古いIDはno-opで404相当", func(t *testing.T) {
		mockRepo := mocks.NewCardRepository(t)
		mockRepo.On("Load", ctx, "dev").Return([]*model.Card{}, nil).Once()

		svc := NewCardService(mockRepo)
		_, err := svc.PatchCard(ctx, "dev", "stale", &model.PatchCardRequest{Question: strptr("x")})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestCardService_DeleteCard(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 残りのリストが保存される", func(t *testing.T) {
		c1 := model.NewCard("q1", "a1")
		c2 := model.NewCard("q2", "a2")
		mockRepo := mocks.NewCardRepository(t)
		mockRepo.On("Load", ctx, "dev").Return([]*model.Card{c1, c2}, nil).Once()
		mockRepo.On("Save", ctx, "dev", mock.MatchedBy(func(cards []*model.Card) bool {
			return len(cards) == 1 && cards[0].ID == c2.ID
		})).Return(nil).Once()

		svc := NewCardService(mockRepo)
		require.NoError(t, svc.DeleteCard(ctx, "dev", c1.ID))
	})

	t.Run("異常系: 見つからなければno-opでErrNotFound", func(t *testing.T) {
		mockRepo := mocks.NewCardRepository(t)
		mockRepo.On("Load", ctx, "dev").Return([]*model.Card{model.NewCard("q", "a")}, nil).Once()

		svc := NewCardService(mockRepo)
		err := svc.DeleteCard(ctx, "dev", "stale")

		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestCardService_DuplicateCard(t *testing.T) {
	ctx := context.Background()

	source := model.NewCard("dup q", "dup a")
	source.Repetitions = 4
	source.Interval = 12
	source.EaseFactor = 1.7
	source.History = []model.ReviewRecord{{Date: "2025-01-01", Quality: 5, UserGrade: 3}}

	mockRepo := mocks.NewCardRepository(t)
	mockRepo.On("Load", ctx, "dev").Return([]*model.Card{source}, nil).Once()
	mockRepo.On("Save", ctx, "dev", mock.MatchedBy(func(cards []*model.Card) bool {
		return len(cards) == 2
	})).Return(nil).Once()

	svc := NewCardService(mockRepo)
	dup, err := svc.DuplicateCard(ctx, "dev", source.ID)

	require.NoError(t, err)
	// 内容は引き継ぎ、IDと学習状態は新規
	assert.Equal(t, source.Question, dup.Question)
	assert.Equal(t, source.Answer, dup.Answer)
	assert.NotEqual(t, source.ID, dup.ID)
	assert.Equal(t, 0, dup.Repetitions)
	assert.Equal(t, 0, dup.Interval)
	assert.Equal(t, model.DefaultEaseFactor, dup.EaseFactor)
	assert.Empty(t, dup.History)
}

func TestCardService_ImportCards(t *testing.T) {
	ctx := context.Background()

	t.Run("必須フィールドの無いレコードは単体でスキップ", func(t *testing.T) {
		existing := []*model.Card{model.NewCard("keep", "me")}
		mockRepo := mocks.NewCardRepository(t)
		mockRepo.On("Load", ctx, "imp").Return(existing, nil).Once()
		mockRepo.On("Save", ctx, "imp", mock.MatchedBy(func(cards []*model.Card) bool {
			// 既存1 + インポート2（置き換えも重複排除もしない）
			return len(cards) == 3 && cards[0].Question == "keep"
		})).Return(nil).Once()

		records := []model.CardRecord{
			{Question: strptr("q1"), Answer: strptr("a1")},
			{Question: strptr("no answer")}, // answer欠落 → スキップ
			{Answer: strptr("no question")}, // question欠落 → スキップ
			{Question: strptr("q2"), Answer: strptr("a2"), EaseFactor: func() *float64 { f := 1.9; return &f }()},
		}

		svc := NewCardService(mockRepo)
		result, err := svc.ImportCards(ctx, "imp", records)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		assert.Equal(t, 2, result.Skipped)
	})

	t.Run("全件スキップなら保存しない", func(t *testing.T) {
		mockRepo := mocks.NewCardRepository(t)
		mockRepo.On("Load", ctx, "imp").Return([]*model.Card{}, nil).Once()

		svc := NewCardService(mockRepo)
		result, err := svc.ImportCards(ctx, "imp", []model.CardRecord{{Question: strptr("only q")}})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Imported)
		assert.Equal(t, 1, result.Skipped)
	})
}

func TestCardService_ExportCards(t *testing.T) {
	ctx := context.Background()
	cards := []*model.Card{model.NewCard("q", "a")}
	mockRepo := mocks.NewCardRepository(t)
	mockRepo.On("Load", ctx, "exp").Return(cards, nil).Once()

	svc := NewCardService(mockRepo)
	got, err := svc.ExportCards(ctx, "exp")

	require.NoError(t, err)
	assert.Equal(t, cards, got)
}
