// internal/model/review.go
package model

// ユーザー評価（1=理解できなかった / 2=まあまあ / 3=理解した）
const (
	GradeFailed  = 1
	GradePartial = 2
	GradeGood    = 3
)

// ReviewCardResponse は「次のカード」レスポンスのDTO。
// 採点まで同じカードを返し続ける（セッション固定）。
type ReviewCardResponse struct {
	CardID      string  `json:"card_id"`
	Question    string  `json:"question"`
	Answer      string  `json:"answer"`
	EaseFactor  float64 `json:"ease_factor"`
	Repetitions int     `json:"repetitions"`
	Interval    int     `json:"interval"`
	DueDate     string  `json:"due_date"`
	Reviews     int     `json:"reviews"` // 履歴件数
}

// SubmitGradeRequest は採点リクエストのDTO
type SubmitGradeRequest struct {
	Grade *int `json:"grade" validate:"required,min=1,max=3"`
}
