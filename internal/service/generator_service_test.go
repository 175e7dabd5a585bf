// internal/service/generator_service_test.go
package service

import (
	"context"
	"strings"
	"testing"

	"go_5_flashcard_keep/internal/config"
	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClozeFromSentence(t *testing.T) {
	t.Run("6文字超の単語を空白化し答えは原文の部分文字列", func(t *testing.T) {
		sentence := "The mitochondria is the powerhouse of the cell."

		question, answer, ok := clozeFromSentence(sentence)

		require.True(t, ok)
		assert.Greater(t, len(answer), 6)
		assert.Contains(t, sentence, answer) // 答えは原文そのままの単語
		assert.Contains(t, question, blankMarker)
		assert.NotContains(t, question, answer)
	})

	t.Run("最長候補が複数あるときは文中で先に現れた方(決定的)", func(t *testing.T) {
		// "mitochondria" と "powerhouse" なら最長の mitochondria が選ばれる
		question, answer, ok := clozeFromSentence("The mitochondria is the powerhouse of the cell.")
		require.True(t, ok)
		assert.Equal(t, "mitochondria", answer)
		assert.Equal(t, "The _____ is the powerhouse of the cell.", question)
	})

	t.Run("6文字超が無ければ4文字超にフォールバック", func(t *testing.T) {
		question, answer, ok := clozeFromSentence("a cat hurts small dogs a lot")
		require.True(t, ok)
		assert.Equal(t, "hurts", answer)
		assert.Contains(t, question, blankMarker)
	})

	t.Run("候補が無い文はカードを生まない", func(t *testing.T) {
		_, _, ok := clozeFromSentence("a b cd ef gh ij kl")
		assert.False(t, ok)
	})

	t.Run("大文字小文字を無視して最初の出現だけを置換", func(t *testing.T) {
		question, answer, ok := clozeFromSentence("Mitochondria power cells, and mitochondria divide.")
		require.True(t, ok)
		assert.Equal(t, "mitochondria", strings.ToLower(answer))
		assert.Equal(t, "_____ power cells, and mitochondria divide.", question)
	})
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "句読点境界で分割される",
			text: "This is the first sentence. And here is another one! Did the third arrive?",
			want: []string{"This is the first sentence.", "And here is another one!", "Did the third arrive?"},
		},
		{
			name: "15文字以下の断片は捨てられる",
			text: "Too short. This sentence is long enough to survive the filter.",
			want: []string{"This sentence is long enough to survive the filter."},
		},
		{
			name: "セミコロンも境界になる",
			text: "The first clause runs here; the second clause follows after it.",
			want: []string{"The first clause runs here;", "the second clause follows after it."},
		},
		{
			name: "改行は空白として扱う",
			text: "A sentence split\nacross two lines works fine. Short.",
			want: []string{"A sentence split across two lines works fine."},
		},
		{
			name: "何も残らなければ空",
			text: "Hi. No? Ok.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSentences(tt.text))
		})
	}
}

func TestQAFromLines(t *testing.T) {
	t.Run("Term:Def の行が1枚ずつカードになる", func(t *testing.T) {
		pairs := qaFromLines("Capital: Paris\nLanguage: French")

		require.Len(t, pairs, 2)
		assert.Equal(t, qaPair{question: "Capital", answer: "Paris"}, pairs[0])
		assert.Equal(t, qaPair{question: "Language", answer: "French"}, pairs[1])
	})

	t.Run("続きの行は最大3行まで答えに連結", func(t *testing.T) {
		text := "Term: first part\nsecond part\nthird part\nfourth part\nfifth part"
		pairs := qaFromLines(text)

		require.Len(t, pairs, 1)
		// lookaheadは3行まで。5行目は含まれない
		assert.Equal(t, "first part second part third part fourth part", pairs[0].answer)
	})

	t.Run("次のシード行で連結は止まる", func(t *testing.T) {
		pairs := qaFromLines("Capital: Paris\ncity of light\nLanguage: French")

		require.Len(t, pairs, 2)
		assert.Equal(t, "Paris city of light", pairs[0].answer)
		assert.Equal(t, "French", pairs[1].answer)
	})

	t.Run("コロン前が長すぎる行はシードにしない", func(t *testing.T) {
		long := strings.Repeat("x", 120) + ": not a seed"
		pairs := qaFromLines(long + "\nReal: seed")

		require.Len(t, pairs, 1)
		assert.Equal(t, "Real", pairs[0].question)
	})

	t.Run("200文字以上の行は連結しない", func(t *testing.T) {
		long := strings.Repeat("y", 250)
		pairs := qaFromLines("Term: short\n" + long + "\ntail")

		require.Len(t, pairs, 1)
		assert.Equal(t, "short tail", pairs[0].answer)
	})
}

func TestGenerateCards(t *testing.T) {
	clozeText := "The mitochondria is the powerhouse of the cell. Photosynthesis converts sunlight into chemical energy."

	t.Run("clozeは文ごとに1枚まで", func(t *testing.T) {
		cards := GenerateCards(clozeText, model.MethodCloze, 10, true)
		assert.Len(t, cards, 2)
		for _, c := range cards {
			assert.Contains(t, c.Question, blankMarker)
			assert.NotEmpty(t, c.Answer)
			assert.NotEmpty(t, c.ID)
			assert.Empty(t, c.History)
			assert.Equal(t, model.DefaultEaseFactor, c.EaseFactor)
		}
	})

	t.Run("max_cardsで打ち切られる", func(t *testing.T) {
		cards := GenerateCards(clozeText, model.MethodCloze, 1, true)
		assert.Len(t, cards, 1)
	})

	t.Run("qaはフォールバック有効なら不足分をclozeで補う", func(t *testing.T) {
		text := "Capital: Paris\n" + clozeText
		cards := GenerateCards(text, model.MethodQA, 10, true)

		require.Len(t, cards, 3) // QA 1枚 + cloze 2枚
		assert.Equal(t, "Capital", cards[0].Question)
		assert.Contains(t, cards[1].Question, blankMarker)
	})

	t.Run("qaはフォールバック無効ならQAのみ", func(t *testing.T) {
		text := "Capital: Paris\n" + clozeText
		cards := GenerateCards(text, model.MethodQA, 10, false)

		require.Len(t, cards, 1)
		assert.Equal(t, "Capital", cards[0].Question)
	})

	t.Run("何も該当しないテキストは0枚(エラーではない)", func(t *testing.T) {
		cards := GenerateCards("no match", model.MethodQA, 10, false)
		assert.Empty(t, cards)
	})
}

func TestGeneratorService_Generate(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.Generation.MaxCards = 80
	cfg.Generation.QAFallback = true

	t.Run("生成したカードは既存リストに追記して保存", func(t *testing.T) {
		mockRepo := mocks.NewCardRepository(t)
		existing := []*model.Card{model.NewCard("old q", "old a")}
		mockRepo.On("Load", ctx, "bio").Return(existing, nil).Once()
		mockRepo.On("Save", ctx, "bio", mock.MatchedBy(func(cards []*model.Card) bool {
			return len(cards) == 2 && cards[0].Question == "old q"
		})).Return(nil).Once()

		svc := NewGeneratorService(mockRepo, cfg)
		result, err := svc.Generate(ctx, "bio", &model.GenerateRequest{
			Text:   "The mitochondria is the powerhouse of the cell.",
			Method: model.MethodCloze,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Generated)
		require.Len(t, result.Cards, 1)
	})

	t.Run("0枚生成なら保存しない", func(t *testing.T) {
		mockRepo := mocks.NewCardRepository(t)

		svc := NewGeneratorService(mockRepo, cfg)
		result, err := svc.Generate(ctx, "bio", &model.GenerateRequest{Text: "short", Method: model.MethodCloze})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Generated)
	})

	t.Run("保存失敗はStorageWriteErrorとして報告", func(t *testing.T) {
		mockRepo := mocks.NewCardRepository(t)
		mockRepo.On("Load", ctx, "bio").Return([]*model.Card{}, nil).Once()
		mockRepo.On("Save", ctx, "bio", mock.Anything).Return(assert.AnError).Once()

		svc := NewGeneratorService(mockRepo, cfg)
		_, err := svc.Generate(ctx, "bio", &model.GenerateRequest{
			Text:   "The mitochondria is the powerhouse of the cell.",
			Method: model.MethodCloze,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrStorageWrite)
	})
}
