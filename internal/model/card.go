// internal/model/card.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout はカードの日付フィールド（created_at / due_date / history.date）の書式です。
const DateLayout = "2006-01-02"

// デフォルト値（SM-2の初期状態）
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// ReviewRecord は1回の採点イベントの履歴レコードです。
// history は追記専用で、エンジンが過去のレコードを書き換えることはありません。
type ReviewRecord struct {
	Date      string `json:"date"`       // 採点日 (ISO date)
	Quality   int    `json:"q"`          // SM-2内部品質 (0-5)
	UserGrade int    `json:"user_grade"` // ユーザーの評価 (1-3)
}

// Card は復習対象の1枚のフラッシュカードを表します。
// 永続化形式（カテゴリごとのJSON配列）の1要素と1:1で対応します。
type Card struct {
	ID          string         `json:"id"`
	Question    string         `json:"question"`
	Answer      string         `json:"answer"`
	CreatedAt   string         `json:"created_at"` // 作成日 (ISO date, 不変)
	Interval    int            `json:"interval"`   // 次回復習までの日数
	Repetitions int            `json:"repetitions"`
	EaseFactor  float64        `json:"ease_factor"`
	DueDate     string         `json:"due_date"` // 次に復習可能になる日 (ISO date)
	History     []ReviewRecord `json:"history"`
}

// NewCard は手動追加・自動生成用のコンストラクタです。
// IDは衝突しないよう高エントロピーなUUIDを使います。
func NewCard(question, answer string) *Card {
	today := time.Now().Format(DateLayout)
	return &Card{
		ID:          uuid.NewString(),
		Question:    question,
		Answer:      answer,
		CreatedAt:   today,
		Interval:    0,
		Repetitions: 0,
		EaseFactor:  DefaultEaseFactor,
		DueDate:     today,
		History:     []ReviewRecord{},
	}
}

// CardRecord は永続化ファイル・インポートJSONの生のレコード形状です。
// 欠損フィールドを区別するためポインタで受けます。
type CardRecord struct {
	ID          *string        `json:"id"`
	Question    *string        `json:"question"`
	Answer      *string        `json:"answer"`
	CreatedAt   *string        `json:"created_at"`
	Interval    *int           `json:"interval"`
	Repetitions *int           `json:"repetitions"`
	EaseFactor  *float64       `json:"ease_factor"`
	DueDate     *string        `json:"due_date"`
	History     []ReviewRecord `json:"history"`
}

// CardFromRecord はレコードからCardを復元します。
// 欠損フィールドへのデフォルト適用はこの関数に集約します（読み込みは1フィールドの
// 欠損で失敗させない）。id欠損は新規生成、日付欠損は今日の日付になります。
func CardFromRecord(rec CardRecord) *Card {
	today := time.Now().Format(DateLayout)
	card := &Card{
		ID:          uuid.NewString(),
		Question:    "",
		Answer:      "",
		CreatedAt:   today,
		Interval:    0,
		Repetitions: 0,
		EaseFactor:  DefaultEaseFactor,
		DueDate:     today,
		History:     []ReviewRecord{},
	}
	if rec.ID != nil && *rec.ID != "" {
		card.ID = *rec.ID
	}
	if rec.Question != nil {
		card.Question = *rec.Question
	}
	if rec.Answer != nil {
		card.Answer = *rec.Answer
	}
	if rec.CreatedAt != nil && *rec.CreatedAt != "" {
		card.CreatedAt = *rec.CreatedAt
	}
	if rec.Interval != nil && *rec.Interval >= 0 {
		card.Interval = *rec.Interval
	}
	if rec.Repetitions != nil && *rec.Repetitions >= 0 {
		card.Repetitions = *rec.Repetitions
	}
	if rec.EaseFactor != nil && *rec.EaseFactor > 0 {
		card.EaseFactor = *rec.EaseFactor
	}
	if rec.DueDate != nil && *rec.DueDate != "" {
		card.DueDate = *rec.DueDate
	}
	if rec.History != nil {
		card.History = rec.History
	}
	return card
}

// Duplicate は内容だけを引き継いだ新しいカードを返します。
// ID・作成日・期日は新規、学習状態と履歴はリセットされます。
func (c *Card) Duplicate() *Card {
	return NewCard(c.Question, c.Answer)
}

// IsDue は期日ゲート式の選択で復習対象かどうかを判定します。
// due_date が空、パース不能、または today 以前なら復習対象です。
// タイムゾーンに依存しないよう、ローカルの日付文字列同士で比較します。
func (c *Card) IsDue(today time.Time) bool {
	if c.DueDate == "" {
		return true
	}
	if _, err := time.Parse(DateLayout, c.DueDate); err != nil {
		return true
	}
	return c.DueDate <= today.Format(DateLayout)
}

// 新規カード作成リクエストDTO
type CreateCardRequest struct {
	Question string `json:"question" validate:"required,min=1"`
	Answer   string `json:"answer" validate:"required,min=1"`
}

// カード更新（部分）リクエストDTO
// question / answer / due_date だけが外部コラボレータから直接編集できる。
type PatchCardRequest struct {
	Question *string `json:"question,omitempty" validate:"omitempty,min=1"`
	Answer   *string `json:"answer,omitempty" validate:"omitempty,min=1"`
	DueDate  *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// インポート結果レスポンスDTO
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
