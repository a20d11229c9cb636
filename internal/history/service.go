// Package history は検索履歴のドメインロジックを提供する。
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aniflix/aniflix/internal/model"
	"github.com/aniflix/aniflix/internal/repository"
	"github.com/aniflix/aniflix/internal/security"
)

// AppendRecorder は履歴追加のメトリクス記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type AppendRecorder interface {
	RecordHistoryAppend()
	RecordHistoryDedupSkip()
}

// Service は検索履歴のサービス層。
// 検索成功時の履歴追記（重複排除付き）と履歴の取得/削除を提供する。
type Service struct {
	repo      repository.HistoryRepository
	sanitizer security.TitleSanitizerService
	recorder  AppendRecorder
	logger    *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.HistoryRepository, sanitizer security.TitleSanitizerService, recorder AppendRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		recorder:  recorder,
		logger:    logger,
	}
}

// RecordSearch は検索の先頭結果から履歴エントリを抽出して追記する。
// 同一 (コンテンツID, 検索種別) が既に存在する場合は何もしない。
// 履歴の記録失敗は検索レスポンスに影響させない。エラーはログに残すのみで、
// 呼び出し側には一切返さない。
func (s *Service) RecordSearch(ctx context.Context, userID string, searchType model.SearchType, firstResult json.RawMessage) {
	entry, err := extractEntry(searchType, firstResult)
	if err != nil {
		s.logger.Warn("failed to extract history entry",
			slog.String("user_id", userID),
			slog.String("search_type", string(searchType)),
			slog.String("error", err.Error()),
		)
		return
	}

	entry.Title = s.sanitizer.Sanitize(entry.Title)
	entry.CreatedAt = time.Now()

	inserted, err := s.repo.InsertIfAbsent(ctx, userID, entry)
	if err != nil {
		s.logger.Error("failed to record search history",
			slog.String("user_id", userID),
			slog.String("content_id", string(entry.ContentID)),
			slog.String("error", err.Error()),
		)
		return
	}

	if inserted {
		s.recorder.RecordHistoryAppend()
	} else {
		s.recorder.RecordHistoryDedupSkip()
	}
}

// List はユーザーの検索履歴を初回出現順で返す。
func (s *Service) List(ctx context.Context, userID string) ([]model.HistoryEntry, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Delete はコンテンツIDが一致する履歴エントリを削除する。
// 該当エントリが存在しなくてもエラーにしない（冪等削除）。
func (s *Service) Delete(ctx context.Context, userID string, contentID model.ContentID) error {
	return s.repo.DeleteByContentID(ctx, userID, contentID)
}

// extractEntry は検索種別ごとの結果形状から履歴エントリを組み立てる。
//
// TMDB系（movie/tv/person）は数値idとフラットな属性を持つ。
// 画像はmovie/tvがposter_path、personがprofile_path。
// タイトルはmovieがtitle、tv/personがname。
// Kitsu系（anime）は文字列idとネストしたattributesを持ち、
// 画像はposterImage.small（なければtiny）、タイトルはcanonicalTitle。
func extractEntry(searchType model.SearchType, raw json.RawMessage) (*model.HistoryEntry, error) {
	switch searchType {
	case model.SearchTypeMovie, model.SearchTypeTV, model.SearchTypePerson:
		var result struct {
			ID          json.Number `json:"id"`
			Title       string      `json:"title"`
			Name        string      `json:"name"`
			PosterPath  *string     `json:"poster_path"`
			ProfilePath *string     `json:"profile_path"`
		}
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("failed to decode search result: %w", err)
		}
		if result.ID.String() == "" {
			return nil, fmt.Errorf("search result has no id")
		}

		entry := &model.HistoryEntry{
			ContentID:  model.ContentID(result.ID.String()),
			SearchType: searchType,
		}
		if searchType == model.SearchTypeMovie {
			entry.Title = result.Title
			entry.Image = result.PosterPath
		} else {
			entry.Title = result.Name
			if searchType == model.SearchTypePerson {
				entry.Image = result.ProfilePath
			} else {
				entry.Image = result.PosterPath
			}
		}
		return entry, nil

	case model.SearchTypeAnime:
		var result struct {
			ID         string `json:"id"`
			Attributes struct {
				CanonicalTitle string `json:"canonicalTitle"`
				PosterImage    struct {
					Tiny  string `json:"tiny"`
					Small string `json:"small"`
				} `json:"posterImage"`
			} `json:"attributes"`
		}
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("failed to decode search result: %w", err)
		}
		if result.ID == "" {
			return nil, fmt.Errorf("search result has no id")
		}

		title := result.Attributes.CanonicalTitle
		if title == "" {
			title = "Untitled Anime"
		}
		entry := &model.HistoryEntry{
			ContentID:  model.ContentID(result.ID),
			SearchType: model.SearchTypeAnime,
			Title:      title,
		}
		if img := result.Attributes.PosterImage.Small; img != "" {
			entry.Image = &img
		} else if img := result.Attributes.PosterImage.Tiny; img != "" {
			entry.Image = &img
		}
		return entry, nil
	}

	return nil, fmt.Errorf("unknown search type: %s", searchType)
}
