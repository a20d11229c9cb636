package catalog

import (
	"encoding/json"
	"math/rand"
)

// RandomResult はページ内から一様ランダムに1件選択する。
// フィーチャー枠（ヒーローバナー)の表示を推薦エンジンなしで変化させるための
// 意図的な設計であり、おすすめ精度は持たない。
// 空ページに対してはnilを返す（呼び出し前にfetchPageが空をErrNotFoundに
// 写像するため、通常経路では発生しない）。
func (p *Page) RandomResult() json.RawMessage {
	if len(p.Results) == 0 {
		return nil
	}
	return p.Results[rand.Intn(len(p.Results))]
}
