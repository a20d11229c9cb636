package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aniflix/aniflix/internal/model"
)

// PostgresHistoryRepo はPostgreSQLを使用した検索履歴リポジトリ。
type PostgresHistoryRepo struct {
	db *sql.DB
}

// NewPostgresHistoryRepo はPostgresHistoryRepoを生成する。
func NewPostgresHistoryRepo(db *sql.DB) *PostgresHistoryRepo {
	return &PostgresHistoryRepo{db: db}
}

// InsertIfAbsent は (userID, content_id, search_type) が未登録の場合のみ
// 履歴エントリを追加する。既存の場合は何もしない（タイムスタンプも更新しない）。
// 一意インデックスとON CONFLICT DO NOTHINGで原子的なinsert-if-absentを実現しており、
// 同一ユーザーの並行検索でも重複エントリは発生しない。
// 戻り値は実際に挿入されたかどうかを示す（既存スキップ時はfalse）。
func (r *PostgresHistoryRepo) InsertIfAbsent(ctx context.Context, userID string, entry *model.HistoryEntry) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO search_history (user_id, content_id, image, title, search_type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, content_id, search_type) DO NOTHING`,
		userID, string(entry.ContentID), entry.Image, entry.Title,
		string(entry.SearchType), entry.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert history entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// ListByUserID はユーザーの履歴を挿入順（初回出現順）で返す。
// この層では並べ替えを行わない。表示側がタイムスタンプ降順に並べ替えてよい。
func (r *PostgresHistoryRepo) ListByUserID(ctx context.Context, userID string) ([]model.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT content_id, image, title, search_type, created_at
		 FROM search_history WHERE user_id = $1 ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	entries := []model.HistoryEntry{}
	for rows.Next() {
		var e model.HistoryEntry
		var contentID, searchType string
		if err := rows.Scan(&contentID, &e.Image, &e.Title, &searchType, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.ContentID = model.ContentID(contentID)
		e.SearchType = model.SearchType(searchType)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	return entries, nil
}

// DeleteByContentID はコンテンツIDが一致する履歴を検索種別を問わず全て削除する。
// 種別の異なる同一IDのエントリも巻き込んで削除される（削除APIはIDのみを受け取るため）。
// 該当エントリが存在しなくてもエラーにしない（冪等削除）。
func (r *PostgresHistoryRepo) DeleteByContentID(ctx context.Context, userID string, contentID model.ContentID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM search_history WHERE user_id = $1 AND content_id = $2`,
		userID, string(contentID),
	)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	return nil
}

// compile-time interface check
var _ HistoryRepository = (*PostgresHistoryRepo)(nil)
