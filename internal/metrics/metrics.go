// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// カタログクライアントや履歴サービスから利用する。
type MetricsCollector interface {
	RecordUpstreamSuccess(provider string)
	RecordUpstreamFailure(provider string)
	RecordUpstreamLatency(duration time.Duration)
	RecordHTTPStatus(statusCode int)
	RecordHistoryAppend()
	RecordHistoryDedupSkip()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	upstreamSuccess  *prometheus.CounterVec
	upstreamFail     *prometheus.CounterVec
	upstreamLatency  prometheus.Histogram
	httpStatus       *prometheus.CounterVec
	historyAppend    prometheus.Counter
	historyDedupSkip prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		upstreamSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aniflix_upstream_success_total",
			Help: "プロバイダ別の上流フェッチ成功の合計数",
		}, []string{"provider"}),
		upstreamFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aniflix_upstream_fail_total",
			Help: "プロバイダ別の上流フェッチ失敗の合計数",
		}, []string{"provider"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aniflix_upstream_latency_seconds",
			Help:    "上流フェッチのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aniflix_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		historyAppend: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aniflix_history_append_total",
			Help: "検索履歴に追加されたエントリの合計数",
		}),
		historyDedupSkip: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aniflix_history_dedup_skip_total",
			Help: "重複によりスキップされた履歴追加の合計数",
		}),
	}

	reg.MustRegister(
		c.upstreamSuccess,
		c.upstreamFail,
		c.upstreamLatency,
		c.httpStatus,
		c.historyAppend,
		c.historyDedupSkip,
	)

	return c
}

// RecordUpstreamSuccess は上流フェッチ成功を記録する。
func (c *Collector) RecordUpstreamSuccess(provider string) {
	c.upstreamSuccess.WithLabelValues(provider).Inc()
}

// RecordUpstreamFailure は上流フェッチ失敗を記録する。
func (c *Collector) RecordUpstreamFailure(provider string) {
	c.upstreamFail.WithLabelValues(provider).Inc()
}

// RecordUpstreamLatency は上流フェッチのレイテンシを記録する。
func (c *Collector) RecordUpstreamLatency(duration time.Duration) {
	c.upstreamLatency.Observe(duration.Seconds())
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordHistoryAppend は履歴エントリの追加を記録する。
func (c *Collector) RecordHistoryAppend() {
	c.historyAppend.Inc()
}

// RecordHistoryDedupSkip は重複による履歴追加スキップを記録する。
func (c *Collector) RecordHistoryDedupSkip() {
	c.historyDedupSkip.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
