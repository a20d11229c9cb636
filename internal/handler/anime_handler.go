package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aniflix/aniflix/internal/catalog"
)

// AnimeCatalogInterface はアニメハンドラーが必要とするカタログインターフェース。
type AnimeCatalogInterface interface {
	AnimeTrendingPage(ctx context.Context) (*catalog.Page, error)
	AnimeCategory(ctx context.Context, category string) (*catalog.Page, error)
	AnimeDetails(ctx context.Context, id string) (json.RawMessage, error)
	AnimeTrailers(ctx context.Context, id string) (*catalog.Page, error)
	AnimeSimilar(ctx context.Context, id string) (*catalog.Page, error)
	SearchAnime(ctx context.Context, query string) (*catalog.Page, error)
}

// AnimeHandler はアニメカタログのHTTPハンドラー。
type AnimeHandler struct {
	catalog AnimeCatalogInterface
}

// NewAnimeHandler はAnimeHandlerを生成する。
func NewAnimeHandler(catalog AnimeCatalogInterface) *AnimeHandler {
	return &AnimeHandler{catalog: catalog}
}

// GetTrending は人気アニメからランダムに選んだ1件を返す。
// GET /api/v1/anime/trending
func (h *AnimeHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.AnimeTrendingPage(r.Context())
	if err != nil {
		handleServiceError(w, err, "No trending anime found")
		return
	}

	writeJSON(w, http.StatusOK, contentObjectResponse{
		Success: true,
		Content: page.RandomResult(),
	})
}

// GetByCategory は指定カテゴリのアニメリストを返す。
// GET /api/v1/anime/category/{category}
func (h *AnimeHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	page, err := h.catalog.AnimeCategory(r.Context(), category)
	if err != nil {
		handleServiceError(w, err, fmt.Sprintf("No anime found in the %q category", category))
		return
	}

	writeJSON(w, http.StatusOK, contentListResponse{
		Success: true,
		Content: page.Results,
	})
}

// GetDetails は指定アニメの詳細を返す。
// GET /api/v1/anime/{id}/details
func (h *AnimeHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	details, err := h.catalog.AnimeDetails(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, fmt.Sprintf("Anime with ID %s not found", id))
		return
	}

	writeJSON(w, http.StatusOK, contentObjectResponse{
		Success: true,
		Content: details,
	})
}

// GetTrailers は指定アニメの予告編リストを返す。
// 予告編が未登録のアニメでは空リストの200を返す（404にしない）。
// GET /api/v1/anime/{id}/trailers
func (h *AnimeHandler) GetTrailers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	page, err := h.catalog.AnimeTrailers(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, fmt.Sprintf("Anime with ID %s not found", id))
		return
	}

	writeJSON(w, http.StatusOK, trailersResponse{
		Success:  true,
		Trailers: page.Results,
	})
}

// GetSimilar は指定アニメの関連作品リストを返す。
// 関連作品がないアニメでは空リストの200を返す。
// GET /api/v1/anime/{id}/similar
func (h *AnimeHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	page, err := h.catalog.AnimeSimilar(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, fmt.Sprintf("Anime with ID %s not found", id))
		return
	}

	writeJSON(w, http.StatusOK, similarListResponse{
		Success: true,
		Similar: page.Results,
	})
}

// Search はアニメのフリーテキスト検索を行う。
// 検索履歴への記録は行わない（履歴付きの検索は/api/v1/search/anime側）。
// GET /api/v1/anime/search/{query}
func (h *AnimeHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	page, err := h.catalog.SearchAnime(r.Context(), query)
	if err != nil {
		handleServiceError(w, err, fmt.Sprintf("No anime found for query %q", query))
		return
	}

	writeJSON(w, http.StatusOK, contentListResponse{
		Success: true,
		Content: page.Results,
	})
}
