// Package model はドメインモデルを定義する。
package model

import (
	"errors"
	"fmt"
)

// ErrorKind はAPIエラーの分類を表す。
// ハンドラー層でHTTPステータスコードへの変換に使用する。
type ErrorKind string

const (
	// KindValidation は入力不正（400）。
	KindValidation ErrorKind = "validation"
	// KindAuth は認証失敗（401）。
	KindAuth ErrorKind = "auth"
	// KindNotFound はリソース不在（404）。上流の空結果・404応答を含む。
	KindNotFound ErrorKind = "not_found"
	// KindUpstream は上流プロバイダ呼び出しの失敗（500）。
	KindUpstream ErrorKind = "upstream"
	// KindInternal は予期しない内部エラー（500）。
	KindInternal ErrorKind = "internal"
)

// APIError は統一エラーフォーマットを表す。
// Messageはそのままレスポンスの {success:false, message} に載るため、
// スタックトレースや内部識別子を含めてはならない。
type APIError struct {
	Kind    ErrorKind
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// AsAPIError はエラーチェーンからAPIErrorを取り出す。
// 見つからない場合はnilを返す。
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// NewValidationError は入力不正エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{Kind: KindValidation, Message: message}
}

// NewAuthError は認証失敗エラーを生成する。
// Cookie欠落・署名不一致・期限切れを区別せず、常に同一メッセージを返す
// （偽造試行へのオラクルを避けるため）。
func NewAuthError() *APIError {
	return &APIError{Kind: KindAuth, Message: "Unauthorized"}
}

// NewNotFoundError はリソース不在エラーを生成する。
func NewNotFoundError(message string) *APIError {
	return &APIError{Kind: KindNotFound, Message: message}
}

// NewUpstreamError は上流プロバイダの呼び出し失敗エラーを生成する。
// statusTextには上流のステータステキストを渡す。
func NewUpstreamError(statusText string) *APIError {
	return &APIError{Kind: KindUpstream, Message: "Failed to fetch from upstream provider: " + statusText}
}

// NewInternalError は内部エラーの統一メッセージを生成する。
// 詳細はログのみに記録する。
func NewInternalError() *APIError {
	return &APIError{Kind: KindInternal, Message: "Internal server error"}
}

// NewInvalidCategoryError は未対応カテゴリ名のエラーを生成する。
// サポートされるカテゴリの一覧をメッセージに含める。
func NewInvalidCategoryError(category string, supported []string) *APIError {
	msg := fmt.Sprintf("Invalid category name: %s. Supported categories are: ", category)
	for i, s := range supported {
		if i > 0 {
			msg += ", "
		}
		msg += s
	}
	return &APIError{Kind: KindValidation, Message: msg}
}
