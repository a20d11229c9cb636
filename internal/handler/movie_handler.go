package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aniflix/aniflix/internal/catalog"
)

// MovieCatalogInterface は映画ハンドラーが必要とするカタログインターフェース。
type MovieCatalogInterface interface {
	MovieTrendingPage(ctx context.Context) (*catalog.Page, error)
	MovieTrailers(ctx context.Context, id string) (*catalog.Page, error)
	MovieDetails(ctx context.Context, id string) (json.RawMessage, error)
	MovieSimilar(ctx context.Context, id string) (*catalog.Page, error)
	MovieCategory(ctx context.Context, category string) (*catalog.Page, error)
}

// MovieHandler は映画カタログのHTTPハンドラー。
type MovieHandler struct {
	catalog MovieCatalogInterface
}

// NewMovieHandler はMovieHandlerを生成する。
func NewMovieHandler(catalog MovieCatalogInterface) *MovieHandler {
	return &MovieHandler{catalog: catalog}
}

// GetTrending は人気映画からランダムに選んだ1件を返す。
// GET /api/v1/movie/trending
func (h *MovieHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.MovieTrendingPage(r.Context())
	if err != nil {
		handleServiceError(w, err, "No movies found")
		return
	}

	writeJSON(w, http.StatusOK, contentObjectResponse{
		Success: true,
		Content: page.RandomResult(),
	})
}

// GetTrailers は指定映画の予告編リストを返す。
// GET /api/v1/movie/{id}/trailers
func (h *MovieHandler) GetTrailers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	page, err := h.catalog.MovieTrailers(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, "No trailers found")
		return
	}

	writeJSON(w, http.StatusOK, trailersResponse{
		Success:  true,
		Trailers: page.Results,
	})
}

// GetDetails は指定映画の詳細を返す。
// GET /api/v1/movie/{id}/details
func (h *MovieHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	details, err := h.catalog.MovieDetails(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, "No movie found")
		return
	}

	writeJSON(w, http.StatusOK, contentObjectResponse{
		Success: true,
		Content: details,
	})
}

// GetSimilar は指定映画の類似作品リストを返す。
// GET /api/v1/movie/{id}/similar
func (h *MovieHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	page, err := h.catalog.MovieSimilar(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, "No similar movies found")
		return
	}

	writeJSON(w, http.StatusOK, similarListResponse{
		Success: true,
		Similar: page.Results,
	})
}

// GetByCategory は指定カテゴリの映画リストを返す。
// GET /api/v1/movie/{id}（パスパラメータはカテゴリ名。/trending等の静的ルートが優先される）
func (h *MovieHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "id")

	page, err := h.catalog.MovieCategory(r.Context(), category)
	if err != nil {
		handleServiceError(w, err, "No movies found in this category")
		return
	}

	writeJSON(w, http.StatusOK, contentListResponse{
		Success: true,
		Content: page.Results,
	})
}
