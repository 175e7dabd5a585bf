// internal/model/generate.go
package model

// 自動生成の戦略名
const (
	MethodCloze = "cloze" // 文単位の穴埋め
	MethodQA    = "qa"    // 行単位の Term:Def ヒューリスティック
)

// GenerateRequest は貼り付けテキストからのカード生成リクエストDTO。
// PDF抽出などは外部コラボレータの責務で、ここにはプレーンテキストが届く。
type GenerateRequest struct {
	Text     string `json:"text" validate:"required,min=1"`
	Method   string `json:"method" validate:"omitempty,oneof=cloze qa"`
	MaxCards int    `json:"max_cards" validate:"omitempty,min=1,max=500"`
}

// GenerateResult は生成結果のレスポンスDTO。
// 0件はエラーではなく、件数として報告する。
type GenerateResult struct {
	Generated int     `json:"generated"`
	Cards     []*Card `json:"cards"`
}
