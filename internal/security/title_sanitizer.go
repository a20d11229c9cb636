// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TitleSanitizerService は上流プロバイダから取得したタイトル文字列を
// サニタイズし、検索履歴への保存前にHTMLタグやスクリプト断片を除去する。
// bluemondayのStrictPolicy（全タグ除去）を使用する。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TitleSanitizerService は表示文字列のサニタイズ機能のインターフェースを定義する。
// 検索履歴エントリの保存前に使用される。
type TitleSanitizerService interface {
	// Sanitize は文字列から全てのHTMLタグを除去したプレーンテキストを返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// titleSanitizer はTitleSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type titleSanitizer struct {
	policy *bluemonday.Policy
}

// NewTitleSanitizer はTitleSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyは許可タグを一切持たないため、全てのHTML要素が除去される。
func NewTitleSanitizer() *titleSanitizer {
	return &titleSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は文字列から全てのHTMLタグを除去したプレーンテキストを返す。
func (s *titleSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}
