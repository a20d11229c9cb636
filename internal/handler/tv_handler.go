package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aniflix/aniflix/internal/catalog"
)

// TVCatalogInterface はTVハンドラーが必要とするカタログインターフェース。
type TVCatalogInterface interface {
	TVTrendingPage(ctx context.Context) (*catalog.Page, error)
	TVTrailers(ctx context.Context, id string) (*catalog.Page, error)
	TVDetails(ctx context.Context, id string) (json.RawMessage, error)
	TVSimilar(ctx context.Context, id string) (*catalog.Page, error)
	TVCategory(ctx context.Context, category string) (*catalog.Page, error)
}

// TVHandler はTV番組カタログのHTTPハンドラー。
type TVHandler struct {
	catalog TVCatalogInterface
}

// NewTVHandler はTVHandlerを生成する。
func NewTVHandler(catalog TVCatalogInterface) *TVHandler {
	return &TVHandler{catalog: catalog}
}

// GetTrending は人気TV番組からランダムに選んだ1件を返す。
// GET /api/v1/tv/trending
func (h *TVHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.TVTrendingPage(r.Context())
	if err != nil {
		handleServiceError(w, err, "No tv shows found")
		return
	}

	writeJSON(w, http.StatusOK, contentObjectResponse{
		Success: true,
		Content: page.RandomResult(),
	})
}

// GetTrailers は指定TV番組の予告編リストを返す。
// GET /api/v1/tv/{id}/trailers
func (h *TVHandler) GetTrailers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	page, err := h.catalog.TVTrailers(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, "No trailers found")
		return
	}

	writeJSON(w, http.StatusOK, trailersResponse{
		Success:  true,
		Trailers: page.Results,
	})
}

// GetDetails は指定TV番組の詳細を返す。
// GET /api/v1/tv/{id}/details
func (h *TVHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	details, err := h.catalog.TVDetails(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, "No tv show found")
		return
	}

	writeJSON(w, http.StatusOK, contentObjectResponse{
		Success: true,
		Content: details,
	})
}

// GetSimilar は指定TV番組の類似作品リストを返す。
// 映画と異なりcontentキーで返す（フロントエンドがこのキー名に依存している）。
// GET /api/v1/tv/{id}/similar
func (h *TVHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	page, err := h.catalog.TVSimilar(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, "No similar tv shows found")
		return
	}

	writeJSON(w, http.StatusOK, contentListResponse{
		Success: true,
		Content: page.Results,
	})
}

// GetByCategory は指定カテゴリのTV番組リストを返す。
// GET /api/v1/tv/{id}（パスパラメータはカテゴリ名。/trending等の静的ルートが優先される）
func (h *TVHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "id")

	page, err := h.catalog.TVCategory(r.Context(), category)
	if err != nil {
		handleServiceError(w, err, "No tv shows found")
		return
	}

	writeJSON(w, http.StatusOK, contentListResponse{
		Success: true,
		Content: page.Results,
	})
}
