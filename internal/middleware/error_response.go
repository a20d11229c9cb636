package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/aniflix/aniflix/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
// 全エンドポイントで {"success": false, "message": "..."} の形を取る。
type ErrorResponseBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteErrorResponse は統一エラーフォーマットでHTTPエラーレスポンスを書き込む。
// すべてのAPIエンドポイントで一貫したエラーレスポンスを提供する。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Success: false,
		Message: apiErr.Message,
	})
}

// WriteInternalServerError は内部サーバーエラーの統一レスポンスを書き込む。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}

// WriteUnauthorized は認証失敗の統一レスポンスを書き込む。
// 失敗理由（Cookie欠落・署名不一致・期限切れ）を区別せず常に同一の本文を返す。
func WriteUnauthorized(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusUnauthorized, model.NewAuthError())
}
