package catalog

import "github.com/aniflix/aniflix/internal/model"

// newUpstreamError は上流呼び出し失敗をAPIエラーに写像する。
// ネットワーク失敗・タイムアウト・非2xxステータスは全てこの1種類に集約する。
func newUpstreamError(statusText string) error {
	return model.NewUpstreamError(statusText)
}
