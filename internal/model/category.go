// internal/model/category.go
package model

import "strings"

// Category はカードの名前付きパーティションで、ストレージファイルと1:1対応します。
// カテゴリ間は独立（カード移動はエクスポート/インポート経由のみ）。
type Category struct {
	Name  string `json:"name"`
	Cards int    `json:"cards"` // 所属カード数
}

// カテゴリ作成リクエストDTO
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// 移行結果レスポンスDTO
type MigrateResult struct {
	Migrated bool `json:"migrated"`
}

// ValidCategoryName はカテゴリ名がファイル名として安全か検証します。
// 名前がそのまま <data_dir>/<name>.json になるため、パス区切りは拒否する。
func ValidCategoryName(name string) bool {
	if name == "" {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	if name == "." || name == ".." {
		return false
	}
	return true
}
