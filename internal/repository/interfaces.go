// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/aniflix/aniflix/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Create はユーザーを作成する。
	// username/emailの一意制約違反の場合はErrDuplicateUser系のエラーを返す。
	Create(ctx context.Context, user *model.User) error
}

// HistoryRepository は検索履歴の永続化インターフェース。
type HistoryRepository interface {
	// InsertIfAbsent は (userID, entry.ContentID, entry.SearchType) が未登録の
	// 場合のみ履歴エントリを追加する。既存の場合は何もしない（タイムスタンプも
	// 更新しない）。一意インデックスとON CONFLICT DO NOTHINGにより、同一ユーザーの
	// 並行検索でも重複は発生しない。
	// 戻り値は実際に挿入されたかどうかを示す（既存スキップ時はfalse）。
	InsertIfAbsent(ctx context.Context, userID string, entry *model.HistoryEntry) (bool, error)

	// ListByUserID はユーザーの履歴を挿入順（初回出現順）で返す。
	ListByUserID(ctx context.Context, userID string) ([]model.HistoryEntry, error)

	// DeleteByContentID はコンテンツIDが一致する履歴を検索種別を問わず全て削除する。
	// 該当エントリが存在しなくてもエラーにしない（冪等削除）。
	DeleteByContentID(ctx context.Context, userID string, contentID model.ContentID) error
}
