package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aniflix/aniflix/internal/catalog"
)

// --- モック ---

type mockAnimeCatalog struct {
	trendingFn func(ctx context.Context) (*catalog.Page, error)
	categoryFn func(ctx context.Context, category string) (*catalog.Page, error)
	detailsFn  func(ctx context.Context, id string) (json.RawMessage, error)
	trailersFn func(ctx context.Context, id string) (*catalog.Page, error)
	similarFn  func(ctx context.Context, id string) (*catalog.Page, error)
	searchFn   func(ctx context.Context, query string) (*catalog.Page, error)
}

func (m *mockAnimeCatalog) AnimeTrendingPage(ctx context.Context) (*catalog.Page, error) {
	if m.trendingFn != nil {
		return m.trendingFn(ctx)
	}
	return &catalog.Page{}, nil
}

func (m *mockAnimeCatalog) AnimeCategory(ctx context.Context, category string) (*catalog.Page, error) {
	if m.categoryFn != nil {
		return m.categoryFn(ctx, category)
	}
	return &catalog.Page{}, nil
}

func (m *mockAnimeCatalog) AnimeDetails(ctx context.Context, id string) (json.RawMessage, error) {
	if m.detailsFn != nil {
		return m.detailsFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAnimeCatalog) AnimeTrailers(ctx context.Context, id string) (*catalog.Page, error) {
	if m.trailersFn != nil {
		return m.trailersFn(ctx, id)
	}
	return &catalog.Page{}, nil
}

func (m *mockAnimeCatalog) AnimeSimilar(ctx context.Context, id string) (*catalog.Page, error) {
	if m.similarFn != nil {
		return m.similarFn(ctx, id)
	}
	return &catalog.Page{}, nil
}

func (m *mockAnimeCatalog) SearchAnime(ctx context.Context, query string) (*catalog.Page, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return &catalog.Page{}, nil
}

// --- AnimeHandler ---

func TestAnimeGetTrending_NotFound(t *testing.T) {
	h := NewAnimeHandler(&mockAnimeCatalog{
		trendingFn: func(ctx context.Context) (*catalog.Page, error) { return nil, catalog.ErrNotFound },
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/anime/trending", nil)
	rec := httptest.NewRecorder()
	h.GetTrending(rec, req)

	assertNotFoundMessage(t, rec, "No trending anime found")
}

func TestAnimeGetByCategory_ContentKey(t *testing.T) {
	h := NewAnimeHandler(&mockAnimeCatalog{
		categoryFn: func(ctx context.Context, category string) (*catalog.Page, error) {
			if category != "top_rated" {
				t.Errorf("category = %q, want top_rated", category)
			}
			return pageOf(`{"id":"1"}`, `{"id":"2"}`), nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/anime/category/top_rated", nil), "category", "top_rated")
	rec := httptest.NewRecorder()
	h.GetByCategory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[struct {
		Success bool              `json:"success"`
		Content []json.RawMessage `json:"content"`
	}](t, rec)
	if len(resp.Content) != 2 {
		t.Errorf("len(content) = %d, want 2", len(resp.Content))
	}
}

func TestAnimeGetByCategory_NotFoundMessageNamesCategory(t *testing.T) {
	h := NewAnimeHandler(&mockAnimeCatalog{
		categoryFn: func(ctx context.Context, category string) (*catalog.Page, error) {
			return nil, catalog.ErrNotFound
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/anime/category/upcoming", nil), "category", "upcoming")
	rec := httptest.NewRecorder()
	h.GetByCategory(rec, req)

	assertNotFoundMessage(t, rec, `No anime found in the "upcoming" category`)
}

func TestAnimeGetDetails_NotFoundMessageNamesID(t *testing.T) {
	h := NewAnimeHandler(&mockAnimeCatalog{
		detailsFn: func(ctx context.Context, id string) (json.RawMessage, error) {
			return nil, catalog.ErrNotFound
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/anime/999/details", nil), "id", "999")
	rec := httptest.NewRecorder()
	h.GetDetails(rec, req)

	assertNotFoundMessage(t, rec, "Anime with ID 999 not found")
}

func TestAnimeGetTrailers_EmptyListIsOK(t *testing.T) {
	h := NewAnimeHandler(&mockAnimeCatalog{
		trailersFn: func(ctx context.Context, id string) (*catalog.Page, error) {
			return &catalog.Page{Results: []json.RawMessage{}}, nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/anime/1555/trailers", nil), "id", "1555")
	rec := httptest.NewRecorder()
	h.GetTrailers(rec, req)

	// 予告編未登録でも404にしない
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[struct {
		Success  bool              `json:"success"`
		Trailers []json.RawMessage `json:"trailers"`
	}](t, rec)
	if resp.Trailers == nil {
		t.Error("trailers should be an empty array, not null")
	}
	if len(resp.Trailers) != 0 {
		t.Errorf("len(trailers) = %d, want 0", len(resp.Trailers))
	}
}

func TestAnimeGetSimilar_SimilarKey(t *testing.T) {
	h := NewAnimeHandler(&mockAnimeCatalog{
		similarFn: func(ctx context.Context, id string) (*catalog.Page, error) {
			return pageOf(`{"id":"1556","type":"anime"}`), nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/anime/1555/similar", nil), "id", "1555")
	rec := httptest.NewRecorder()
	h.GetSimilar(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[map[string]json.RawMessage](t, rec)
	if _, ok := resp["similar"]; !ok {
		t.Error("response should use the similar key")
	}
}

func TestAnimeSearch_ContentKey(t *testing.T) {
	h := NewAnimeHandler(&mockAnimeCatalog{
		searchFn: func(ctx context.Context, query string) (*catalog.Page, error) {
			if query != "bebop" {
				t.Errorf("query = %q, want bebop", query)
			}
			return pageOf(`{"id":"1555"}`), nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/anime/search/bebop", nil), "query", "bebop")
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[map[string]json.RawMessage](t, rec)
	if _, ok := resp["content"]; !ok {
		t.Error("response should use the content key")
	}
}
