package catalog

import "github.com/aniflix/aniflix/internal/model"

// SupportedCategories はカテゴリエンドポイントで受け付けるカテゴリ名の一覧。
// 未対応の名前は上流呼び出しを行う前に検証エラーとして弾く。
var SupportedCategories = []string{
	"popular", "top_rated", "airing_today", "new_releases", "upcoming", "trending",
}

// movieCategoryPaths は内部カテゴリ名をTMDBの映画エンドポイントに写像する。
// TMDBに直接対応するリストがないカテゴリは最も近いものに寄せる
// （airing_today/new_releases → now_playing、trending → popular）。
var movieCategoryPaths = map[string]string{
	"popular":      "movie/popular",
	"top_rated":    "movie/top_rated",
	"airing_today": "movie/now_playing",
	"new_releases": "movie/now_playing",
	"upcoming":     "movie/upcoming",
	"trending":     "movie/popular",
}

// tvCategoryPaths は内部カテゴリ名をTMDBのTVエンドポイントに写像する。
var tvCategoryPaths = map[string]string{
	"popular":      "tv/popular",
	"top_rated":    "tv/top_rated",
	"airing_today": "tv/airing_today",
	"new_releases": "tv/on_the_air",
	"upcoming":     "tv/on_the_air",
	"trending":     "tv/popular",
}

// animeCategoryQueries は内部カテゴリ名をKitsuのソート/フィルタパラメータに写像する。
// Kitsuのランキングは昇順（1が最上位）のため、ソートに降順記号を付けない。
var animeCategoryQueries = map[string]string{
	"popular":      "page[limit]=10&sort=popularityRank",
	"top_rated":    "page[limit]=10&sort=ratingRank",
	"airing_today": "page[limit]=10&filter[status]=currently_airing",
	"new_releases": "page[limit]=10&sort=-startDate",
	"upcoming":     "page[limit]=10&filter[status]=upcoming",
	"trending":     "page[limit]=10&sort=popularityRank",
}

// resolveCategory はカテゴリ写像を検索し、未対応の名前には
// サポート一覧を含む検証エラーを返す。上流呼び出し前に必ず実行される。
func resolveCategory(table map[string]string, category string) (string, error) {
	resolved, ok := table[category]
	if !ok {
		return "", model.NewInvalidCategoryError(category, SupportedCategories)
	}
	return resolved, nil
}
