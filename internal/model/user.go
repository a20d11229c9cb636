// Package model はドメインモデルを定義する。
package model

import (
	"encoding/json"
	"time"
)

// User はサービス利用ユーザーを表す。
// PasswordHashはJSONレスポンスに含めない（json:"-"）。
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SearchType は検索の種別を表す。
type SearchType string

const (
	SearchTypeMovie  SearchType = "movie"
	SearchTypeTV     SearchType = "tv"
	SearchTypePerson SearchType = "person"
	SearchTypeAnime  SearchType = "anime"
)

// IsValid は検索種別が定義済みのものかを返す。
func (t SearchType) IsValid() bool {
	switch t {
	case SearchTypeMovie, SearchTypeTV, SearchTypePerson, SearchTypeAnime:
		return true
	}
	return false
}

// ContentID はプロバイダが割り当てたコンテンツIDを表す。
// TMDBは整数、Kitsuは数字文字列を返すため、内部では文字列として保持し、
// JSON出力時は数字のみの場合に数値としてシリアライズする。
type ContentID string

// MarshalJSON は数字のみのIDを数値として、それ以外を文字列として出力する。
func (c ContentID) MarshalJSON() ([]byte, error) {
	if c != "" && isAllDigits(string(c)) {
		return []byte(c), nil
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON は数値・文字列どちらのIDも受け入れる。
func (c *ContentID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = ContentID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = ContentID(n.String())
	return nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HistoryEntry はユーザーの検索履歴1件を表す。
// 同一ユーザー内で (ContentID, SearchType) の組は一意であり、
// 2回目以降の同一検索ではエントリの追加もタイムスタンプ更新も行わない。
type HistoryEntry struct {
	ContentID  ContentID  `json:"id"`
	Image      *string    `json:"Image"`
	Title      string     `json:"title"`
	SearchType SearchType `json:"searchType"`
	CreatedAt  time.Time  `json:"createAt"`
}
