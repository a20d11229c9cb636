package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aniflix/aniflix/internal/catalog"
	"github.com/aniflix/aniflix/internal/middleware"
	"github.com/aniflix/aniflix/internal/model"
)

// レスポンスエンベロープのフィールド名はエンドポイントごとに異なる
// （content / data / similar / trailers）。フロントエンドがキー名に
// 依存しているため、統一してはならない。

// contentListResponse は結果リストをcontentキーで返すエンベロープ。
type contentListResponse struct {
	Success bool              `json:"success"`
	Content []json.RawMessage `json:"content"`
}

// contentObjectResponse は単一オブジェクトをcontentキーで返すエンベロープ。
type contentObjectResponse struct {
	Success bool            `json:"success"`
	Content json.RawMessage `json:"content"`
}

// trailersResponse は予告編リストをtrailersキーで返すエンベロープ。
type trailersResponse struct {
	Success  bool              `json:"success"`
	Trailers []json.RawMessage `json:"trailers"`
}

// similarListResponse は類似作品リストをsimilarキーで返すエンベロープ。
type similarListResponse struct {
	Success bool              `json:"success"`
	Similar []json.RawMessage `json:"similar"`
}

// dataListResponse は検索結果リストをdataキーで返すエンベロープ。
type dataListResponse struct {
	Success bool              `json:"success"`
	Data    []json.RawMessage `json:"data"`
}

// messageResponse は成功メッセージのみのエンベロープ。
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// userResponse はユーザー情報のエンベロープ。
// model.UserのPasswordHashはjson:"-"のためレスポンスに含まれない。
type userResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    *model.User `json:"user"`
}

// historyResponse は検索履歴リストのエンベロープ。
type historyResponse struct {
	Success bool                 `json:"success"`
	Content []model.HistoryEntry `json:"content"`
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
// catalog.ErrNotFoundはエンドポイント固有のメッセージで404に写像する。
func handleServiceError(w http.ResponseWriter, err error, notFoundMessage string) {
	if errors.Is(err, catalog.ErrNotFound) {
		middleware.WriteErrorResponse(w, http.StatusNotFound, model.NewNotFoundError(notFoundMessage))
		return
	}

	if apiErr := model.AsAPIError(err); apiErr != nil {
		middleware.WriteErrorResponse(w, mapErrorKindToHTTPStatus(apiErr.Kind), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapErrorKindToHTTPStatus はエラー分類からHTTPステータスコードにマッピングする。
func mapErrorKindToHTTPStatus(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation:
		return http.StatusBadRequest
	case model.KindAuth:
		return http.StatusUnauthorized
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindUpstream, model.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
