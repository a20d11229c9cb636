package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aniflix/aniflix/internal/catalog"
	"github.com/aniflix/aniflix/internal/middleware"
	"github.com/aniflix/aniflix/internal/model"
)

// SearchCatalogInterface は検索ハンドラーが必要とするカタログインターフェース。
type SearchCatalogInterface interface {
	SearchMovies(ctx context.Context, query string) (*catalog.Page, error)
	SearchTV(ctx context.Context, query string) (*catalog.Page, error)
	SearchPeople(ctx context.Context, query string) (*catalog.Page, error)
	SearchAnime(ctx context.Context, query string) (*catalog.Page, error)
}

// HistoryServiceInterface は検索ハンドラーが必要とする履歴サービスインターフェース。
type HistoryServiceInterface interface {
	RecordSearch(ctx context.Context, userID string, searchType model.SearchType, firstResult json.RawMessage)
	List(ctx context.Context, userID string) ([]model.HistoryEntry, error)
	Delete(ctx context.Context, userID string, contentID model.ContentID) error
}

// SearchHandler はフリーテキスト検索と検索履歴のHTTPハンドラー。
type SearchHandler struct {
	catalog SearchCatalogInterface
	history HistoryServiceInterface
}

// NewSearchHandler はSearchHandlerを生成する。
func NewSearchHandler(catalog SearchCatalogInterface, history HistoryServiceInterface) *SearchHandler {
	return &SearchHandler{
		catalog: catalog,
		history: history,
	}
}

// SearchMovie は映画検索を処理する。
// GET /api/v1/search/movie/{query}
func (h *SearchHandler) SearchMovie(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	page, err := h.catalog.SearchMovies(r.Context(), query)
	if err != nil {
		handleServiceError(w, err, "No movie found")
		return
	}

	h.recordHistory(r, model.SearchTypeMovie, page.Results[0])

	writeJSON(w, http.StatusOK, dataListResponse{
		Success: true,
		Data:    page.Results,
	})
}

// SearchTV はTV番組検索を処理する。
// GET /api/v1/search/tv/{query}
func (h *SearchHandler) SearchTV(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	page, err := h.catalog.SearchTV(r.Context(), query)
	if err != nil {
		handleServiceError(w, err, "No tv show found")
		return
	}

	h.recordHistory(r, model.SearchTypeTV, page.Results[0])

	writeJSON(w, http.StatusOK, dataListResponse{
		Success: true,
		Data:    page.Results,
	})
}

// SearchPerson は人物検索を処理する。
// GET /api/v1/search/person/{query}
func (h *SearchHandler) SearchPerson(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	page, err := h.catalog.SearchPeople(r.Context(), query)
	if err != nil {
		handleServiceError(w, err, "No person found")
		return
	}

	h.recordHistory(r, model.SearchTypePerson, page.Results[0])

	writeJSON(w, http.StatusOK, dataListResponse{
		Success: true,
		Data:    page.Results,
	})
}

// SearchAnime はアニメ検索を処理する。
// 他の検索と異なりcontentキーで返す（フロントエンドがこのキー名に依存している）。
// GET /api/v1/search/anime/{query}
func (h *SearchHandler) SearchAnime(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	page, err := h.catalog.SearchAnime(r.Context(), query)
	if err != nil {
		handleServiceError(w, err, fmt.Sprintf("No anime found for query %q", query))
		return
	}

	h.recordHistory(r, model.SearchTypeAnime, page.Results[0])

	writeJSON(w, http.StatusOK, contentListResponse{
		Success: true,
		Content: page.Results,
	})
}

// GetHistory はユーザーの検索履歴を返す。
// GET /api/v1/search/history
func (h *SearchHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w)
		return
	}

	entries, err := h.history.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Success: true,
		Content: entries,
	})
}

// DeleteHistoryItem は検索履歴エントリを削除する。
// 同一IDのエントリは検索種別を問わず全て削除される。
// 該当エントリが存在しなくても成功として扱う（冪等削除）。
// DELETE /api/v1/search/history/{id}
func (h *SearchHandler) DeleteHistoryItem(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w)
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := strconv.Atoi(id); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("Invalid ID format"))
		return
	}

	if err := h.history.Delete(r.Context(), userID, model.ContentID(id)); err != nil {
		handleServiceError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Search History item deleted (if it existed)",
	})
}

// recordHistory は検索の先頭結果を履歴に非同期で記録する。
// 履歴の記録失敗は検索レスポンスに影響させない。
// レスポンス送信後もゴルーチンが書き込みを継続できるよう、
// リクエストコンテキストのキャンセルからは切り離す。
func (h *SearchHandler) recordHistory(r *http.Request, searchType model.SearchType, firstResult json.RawMessage) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		return
	}

	ctx := context.WithoutCancel(r.Context())
	go h.history.RecordSearch(ctx, userID, searchType, firstResult)
}
