// Package catalog は上流メタデータプロバイダへのプロキシ層を提供する。
//
// 2種類のプロバイダ（TMDB: 映画/TV、Kitsu: アニメ)への呼び出しを単一の
// フェッチ経路に集約し、プロバイダ固有のレスポンス形状をここで正規化する。
// 上位のハンドラー層はプロバイダ種別で分岐してはならない。
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrNotFound は上流にリソースが存在しない場合のエラー。
// 空の結果セット、または上流の404応答がこれに該当する。
// 上流呼び出し自体の失敗（UpstreamError）とは区別され、
// ハンドラー層で404と500の選択に使用される。
var ErrNotFound = errors.New("resource not found upstream")

// ProviderKind は上流プロバイダの種別を表す。
type ProviderKind int

const (
	// ProviderTMDB はBearerトークン認証のTMDB系プロバイダ。
	ProviderTMDB ProviderKind = iota
	// ProviderKitsu はJSON:API形式（data/includedネスト）のKitsu系プロバイダ。
	ProviderKitsu
)

// String はメトリクスラベル用のプロバイダ名を返す。
func (k ProviderKind) String() string {
	switch k {
	case ProviderTMDB:
		return "tmdb"
	case ProviderKitsu:
		return "kitsu"
	}
	return "unknown"
}

// Page は正規化済みの結果リストを表す。
// TMDBのresults配列、Kitsuのdata配列はどちらもこの形に揃えられる。
type Page struct {
	Results []json.RawMessage `json:"results"`
}

// URLValidator は組み立て済み上流URLの事前検証インターフェース。
// security.UpstreamGuardServiceの部分集合として定義する。
type URLValidator interface {
	ValidateURL(rawURL string) error
}

// FetchRecorder は上流フェッチのメトリクス記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type FetchRecorder interface {
	RecordUpstreamSuccess(provider string)
	RecordUpstreamFailure(provider string)
	RecordUpstreamLatency(duration time.Duration)
}

// Client は上流カタログプロバイダへのHTTPクライアント。
type Client struct {
	httpClient   *http.Client
	tmdbAPIKey   string
	tmdbBaseURL  string
	kitsuBaseURL string
	validator    URLValidator
	recorder     FetchRecorder
	logger       *slog.Logger
}

// ClientConfig はClientの設定。
type ClientConfig struct {
	TMDBAPIKey   string
	TMDBBaseURL  string
	KitsuBaseURL string
}

// NewClient はClientの新しいインスタンスを生成する。
// httpClientにはsecurity.UpstreamGuardService.NewSafeClientで生成した
// SSRF防止付きクライアントを渡すことを想定している。
func NewClient(httpClient *http.Client, validator URLValidator, recorder FetchRecorder, logger *slog.Logger, cfg ClientConfig) *Client {
	return &Client{
		httpClient:   httpClient,
		tmdbAPIKey:   cfg.TMDBAPIKey,
		tmdbBaseURL:  cfg.TMDBBaseURL,
		kitsuBaseURL: cfg.KitsuBaseURL,
		validator:    validator,
		recorder:     recorder,
		logger:       logger,
	}
}

// fetch は上流プロバイダへの全リクエストの単一エントリポイント。
// プロバイダ種別ごとのヘッダーを付与し、失敗を内部エラー種別に写像する:
//   - 上流404 → ErrNotFound
//   - その他の非2xx、ネットワーク失敗、タイムアウト → UpstreamError（APIError）
func (c *Client) fetch(ctx context.Context, rawURL string, kind ProviderKind) ([]byte, error) {
	// 1. URLの事前検証（パスパラメータ経由の汚染への保険）
	if err := c.validator.ValidateURL(rawURL); err != nil {
		return nil, fmt.Errorf("upstream URL rejected: %w", err)
	}

	// 2. リクエスト作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}

	switch kind {
	case ProviderTMDB:
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.tmdbAPIKey)
	case ProviderKitsu:
		req.Header.Set("Accept", "application/vnd.api+json")
	}

	// 3. リクエスト実行
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	c.recorder.RecordUpstreamLatency(latency)

	if err != nil {
		c.recorder.RecordUpstreamFailure(kind.String())
		c.logger.Error("upstream fetch failed",
			slog.String("provider", kind.String()),
			slog.String("error", err.Error()),
		)
		return nil, newUpstreamError(err.Error())
	}
	defer resp.Body.Close()

	// 4. ステータスの写像
	if resp.StatusCode == http.StatusNotFound {
		c.recorder.RecordUpstreamFailure(kind.String())
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.recorder.RecordUpstreamFailure(kind.String())
		c.logger.Warn("upstream returned error status",
			slog.String("provider", kind.String()),
			slog.Int("http_status", resp.StatusCode),
		)
		return nil, newUpstreamError(resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recorder.RecordUpstreamFailure(kind.String())
		return nil, newUpstreamError("failed to read response body")
	}

	c.recorder.RecordUpstreamSuccess(kind.String())
	return body, nil
}

// fetchPage は結果リストを返すエンドポイント用の共通経路。
// プロバイダ形状（TMDB: results / Kitsu: data）を正規化済みPageに揃え、
// 空の結果セットはErrNotFoundとして返す。
func (c *Client) fetchPage(ctx context.Context, rawURL string, kind ProviderKind) (*Page, error) {
	body, err := c.fetch(ctx, rawURL, kind)
	if err != nil {
		return nil, err
	}

	page, err := decodePage(body, kind)
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, ErrNotFound
	}

	return page, nil
}

// fetchObject は単一オブジェクトを返すエンドポイント用の共通経路。
// Kitsuのdataネストを剥がし、TMDBレスポンスと同じ裸のオブジェクトに揃える。
func (c *Client) fetchObject(ctx context.Context, rawURL string, kind ProviderKind) (json.RawMessage, error) {
	body, err := c.fetch(ctx, rawURL, kind)
	if err != nil {
		return nil, err
	}

	return decodeObject(body, kind)
}

// decodePage はプロバイダ固有のリスト形状を正規化する。
func decodePage(body []byte, kind ProviderKind) (*Page, error) {
	switch kind {
	case ProviderKitsu:
		var envelope struct {
			Data []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, newUpstreamError("malformed provider response")
		}
		return &Page{Results: envelope.Data}, nil
	default:
		page := &Page{}
		if err := json.Unmarshal(body, page); err != nil {
			return nil, newUpstreamError("malformed provider response")
		}
		return page, nil
	}
}

// decodeObject はプロバイダ固有の単一オブジェクト形状を正規化する。
func decodeObject(body []byte, kind ProviderKind) (json.RawMessage, error) {
	switch kind {
	case ProviderKitsu:
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, newUpstreamError("malformed provider response")
		}
		if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
			return nil, ErrNotFound
		}
		return envelope.Data, nil
	default:
		if len(body) == 0 || string(body) == "null" {
			return nil, ErrNotFound
		}
		return json.RawMessage(body), nil
	}
}
