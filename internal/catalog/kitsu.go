package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Kitsu系エンドポイントのラッパー群。
// KitsuのJSON:API形状（data/includedネスト）はこの層で剥がし、
// ハンドラーにはTMDBレスポンスと同じ形（Page / 裸のオブジェクト）で返す。

// AnimeTrendingPage は人気アニメの1ページ分を取得する。
func (c *Client) AnimeTrendingPage(ctx context.Context) (*Page, error) {
	u := fmt.Sprintf("%s/anime?page[limit]=10&sort=popularityRank", c.kitsuBaseURL)
	return c.fetchPage(ctx, u, ProviderKitsu)
}

// AnimeCategory は指定カテゴリのアニメリストを取得する。
// カテゴリ名の検証は上流呼び出しの前に行われる。
func (c *Client) AnimeCategory(ctx context.Context, category string) (*Page, error) {
	query, err := resolveCategory(animeCategoryQueries, category)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/anime?%s", c.kitsuBaseURL, query)
	return c.fetchPage(ctx, u, ProviderKitsu)
}

// AnimeDetails は指定アニメの詳細オブジェクトを取得する。
func (c *Client) AnimeDetails(ctx context.Context, id string) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/anime/%s", c.kitsuBaseURL, url.PathEscape(id))
	return c.fetchObject(ctx, u, ProviderKitsu)
}

// AnimeTrailers は指定アニメの予告編リストを取得する。
// Kitsuには予告編の一覧APIがないため、本体のyoutubeVideoId属性を取得して
// 0件または1件の予告編エントリ（{id, key}）に組み立てる。
func (c *Client) AnimeTrailers(ctx context.Context, id string) (*Page, error) {
	u := fmt.Sprintf("%s/anime/%s?fields[anime]=youtubeVideoId", c.kitsuBaseURL, url.PathEscape(id))
	obj, err := c.fetchObject(ctx, u, ProviderKitsu)
	if err != nil {
		return nil, err
	}

	var anime struct {
		Attributes struct {
			YoutubeVideoID string `json:"youtubeVideoId"`
		} `json:"attributes"`
	}
	if err := json.Unmarshal(obj, &anime); err != nil {
		return nil, newUpstreamError("malformed provider response")
	}

	page := &Page{Results: []json.RawMessage{}}
	if anime.Attributes.YoutubeVideoID != "" {
		trailer, err := json.Marshal(map[string]string{
			"id":  anime.Attributes.YoutubeVideoID,
			"key": anime.Attributes.YoutubeVideoID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode trailer entry: %w", err)
		}
		page.Results = append(page.Results, trailer)
	}

	return page, nil
}

// AnimeSimilar は指定アニメの関連作品リストを取得する。
// Kitsuにはネイティブの「類似」関係がないため、media-relationshipsの
// includedリソースをtype==animeで絞り込んだベストエフォートの代用を返す。
// 関係のrole（sequel/prequel等）では絞り込まない。真の類似度ではない近似である。
func (c *Client) AnimeSimilar(ctx context.Context, id string) (*Page, error) {
	u := fmt.Sprintf("%s/anime/%s/media-relationships?include=destination", c.kitsuBaseURL, url.PathEscape(id))
	body, err := c.fetch(ctx, u, ProviderKitsu)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data     []json.RawMessage `json:"data"`
		Included []json.RawMessage `json:"included"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, newUpstreamError("malformed provider response")
	}

	// includedからtype==animeのリソースのみ抽出する
	similar := []json.RawMessage{}
	for _, raw := range envelope.Included {
		var resource struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &resource); err != nil {
			continue
		}
		if resource.Type == "anime" {
			similar = append(similar, raw)
		}
	}

	return &Page{Results: similar}, nil
}

// SearchAnime はアニメのフリーテキスト検索を行う。
func (c *Client) SearchAnime(ctx context.Context, query string) (*Page, error) {
	u := fmt.Sprintf("%s/anime?filter[text]=%s", c.kitsuBaseURL, url.QueryEscape(query))
	return c.fetchPage(ctx, u, ProviderKitsu)
}
