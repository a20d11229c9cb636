package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// TMDB系エンドポイントのラッパー群。
// URLはサーバー側で組み立て、パスパラメータはエスケープして埋め込む。

// MovieTrendingPage は人気映画の1ページ分を取得する。
// フィーチャー枠用のランダム選択はPage.RandomResultで行う。
func (c *Client) MovieTrendingPage(ctx context.Context) (*Page, error) {
	u := fmt.Sprintf("%s/movie/popular?language=en-US&page=1", c.tmdbBaseURL)
	return c.fetchPage(ctx, u, ProviderTMDB)
}

// MovieTrailers は指定映画の予告編リストを取得する。
func (c *Client) MovieTrailers(ctx context.Context, id string) (*Page, error) {
	u := fmt.Sprintf("%s/movie/%s/videos?language=en-US", c.tmdbBaseURL, url.PathEscape(id))
	return c.fetchPage(ctx, u, ProviderTMDB)
}

// MovieDetails は指定映画の詳細オブジェクトを取得する。
func (c *Client) MovieDetails(ctx context.Context, id string) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/movie/%s?language=en-US", c.tmdbBaseURL, url.PathEscape(id))
	return c.fetchObject(ctx, u, ProviderTMDB)
}

// MovieSimilar は指定映画の類似作品リストを取得する。
func (c *Client) MovieSimilar(ctx context.Context, id string) (*Page, error) {
	u := fmt.Sprintf("%s/movie/%s/similar?language=en-US", c.tmdbBaseURL, url.PathEscape(id))
	return c.fetchPage(ctx, u, ProviderTMDB)
}

// MovieCategory は指定カテゴリの映画リストを取得する。
// カテゴリ名の検証は上流呼び出しの前に行われる。
func (c *Client) MovieCategory(ctx context.Context, category string) (*Page, error) {
	path, err := resolveCategory(movieCategoryPaths, category)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/%s?language=en-US&page=1", c.tmdbBaseURL, path)
	return c.fetchPage(ctx, u, ProviderTMDB)
}

// SearchMovies は映画のフリーテキスト検索を行う。
func (c *Client) SearchMovies(ctx context.Context, query string) (*Page, error) {
	u := fmt.Sprintf("%s/search/movie?query=%s&include_adult=false&language=en-US&page=1",
		c.tmdbBaseURL, url.QueryEscape(query))
	return c.fetchPage(ctx, u, ProviderTMDB)
}

// TVTrendingPage は人気TV番組の1ページ分を取得する。
func (c *Client) TVTrendingPage(ctx context.Context) (*Page, error) {
	u := fmt.Sprintf("%s/tv/popular?language=en-US&page=1", c.tmdbBaseURL)
	return c.fetchPage(ctx, u, ProviderTMDB)
}

// TVTrailers は指定TV番組の予告編リストを取得する。
func (c *Client) TVTrailers(ctx context.Context, id string) (*Page, error) {
	u := fmt.Sprintf("%s/tv/%s/videos?language=en-US", c.tmdbBaseURL, url.PathEscape(id))
	return c.fetchPage(ctx, u, ProviderTMDB)
}

// TVDetails は指定TV番組の詳細オブジェクトを取得する。
func (c *Client) TVDetails(ctx context.Context, id string) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/tv/%s?language=en-US", c.tmdbBaseURL, url.PathEscape(id))
	return c.fetchObject(ctx, u, ProviderTMDB)
}

// TVSimilar は指定TV番組の類似作品リストを取得する。
func (c *Client) TVSimilar(ctx context.Context, id string) (*Page, error) {
	u := fmt.Sprintf("%s/tv/%s/similar?language=en-US&page=1", c.tmdbBaseURL, url.PathEscape(id))
	return c.fetchPage(ctx, u, ProviderTMDB)
}

// TVCategory は指定カテゴリのTV番組リストを取得する。
func (c *Client) TVCategory(ctx context.Context, category string) (*Page, error) {
	path, err := resolveCategory(tvCategoryPaths, category)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/%s?language=en-US&page=1", c.tmdbBaseURL, path)
	return c.fetchPage(ctx, u, ProviderTMDB)
}

// SearchTV はTV番組のフリーテキスト検索を行う。
func (c *Client) SearchTV(ctx context.Context, query string) (*Page, error) {
	u := fmt.Sprintf("%s/search/tv?query=%s&include_adult=false&language=en-US&page=1",
		c.tmdbBaseURL, url.QueryEscape(query))
	return c.fetchPage(ctx, u, ProviderTMDB)
}

// SearchPeople は人物のフリーテキスト検索を行う。
func (c *Client) SearchPeople(ctx context.Context, query string) (*Page, error) {
	u := fmt.Sprintf("%s/search/person?query=%s&include_adult=false&language=en-US&page=1",
		c.tmdbBaseURL, url.QueryEscape(query))
	return c.fetchPage(ctx, u, ProviderTMDB)
}
