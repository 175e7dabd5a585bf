// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー。
// このエンジンに致命的エラーは存在しない（最悪でも「カードは変更されない」）。
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternalServer  = errors.New("internal server error")
	ErrConflict        = errors.New("resource conflict") // カテゴリ名の重複など
	ErrStorageWrite    = errors.New("storage write failed")
	ErrNothingToReview = errors.New("nothing to review") // 期日ゲートで対象0件
)

// ErrorDetail はクライアントに返すエラーの詳細です。
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスのエンベロープです。
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はHTTP層でのマッピングに使う、コード付きのアプリケーションエラーです。
// Err にはセンチネルエラーをラップし、errors.Is で分類できるようにします。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Detail.Code + ": " + e.Detail.Message + ": " + e.Err.Error()
	}
	return e.Detail.Code + ": " + e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError はAppErrorのコンストラクタです。
func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}
