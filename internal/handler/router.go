package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aniflix/aniflix/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBがこれを満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker     HealthChecker
	TokenVerifier     middleware.TokenVerifier
	UserFinder        middleware.UserFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// メトリクス公開（nilの場合は/metricsを公開しない）
	MetricsHandler http.Handler
	// ステータスコード別レスポンス数の記録（nil可）
	StatusRecorder middleware.HTTPStatusRecorder

	// 認証
	AuthService AuthServiceInterface
	TokenIssuer TokenIssuer
	AuthConfig  AuthHandlerConfig

	// カタログ
	MovieCatalog  MovieCatalogInterface
	TVCatalog     TVCatalogInterface
	AnimeCatalog  AnimeCatalogInterface
	SearchCatalog SearchCatalogInterface

	// 検索履歴
	HistoryService HistoryServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging → Session → RateLimit(General)
//
// 認証ルート（/api/v1/auth/*）と/health、/metricsはセッションミドルウェアの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddlewareWithMetrics(deps.Logger, deps.StatusRecorder))

	authHandler := NewAuthHandler(deps.AuthService, deps.TokenIssuer, deps.AuthConfig)
	movieHandler := NewMovieHandler(deps.MovieCatalog)
	tvHandler := NewTVHandler(deps.TVCatalog)
	animeHandler := NewAnimeHandler(deps.AnimeCatalog)
	searchHandler := NewSearchHandler(deps.SearchCatalog, deps.HistoryService)

	sessionMiddleware := middleware.NewSessionMiddleware(deps.TokenVerifier, deps.UserFinder)

	// --- 認証不要のルート ---

	r.Get("/health", healthHandler(deps.HealthChecker))

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.With(sessionMiddleware).Get("/authCheck", authHandler.AuthCheck)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 映画カタログ
		r.Route("/api/v1/movie", func(r chi.Router) {
			r.Get("/trending", movieHandler.GetTrending)

			// GET /api/v1/movie/{category} とIDルートが同一位置のため
			// パラメータ名はidで共有する
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", movieHandler.GetByCategory)
				r.Get("/trailers", movieHandler.GetTrailers)
				r.Get("/details", movieHandler.GetDetails)
				r.Get("/similar", movieHandler.GetSimilar)
			})
		})

		// TVカタログ
		r.Route("/api/v1/tv", func(r chi.Router) {
			r.Get("/trending", tvHandler.GetTrending)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", tvHandler.GetByCategory)
				r.Get("/trailers", tvHandler.GetTrailers)
				r.Get("/details", tvHandler.GetDetails)
				r.Get("/similar", tvHandler.GetSimilar)
			})
		})

		// アニメカタログ
		r.Route("/api/v1/anime", func(r chi.Router) {
			r.Get("/trending", animeHandler.GetTrending)
			r.Get("/category/{category}", animeHandler.GetByCategory)
			r.Get("/search/{query}", animeHandler.Search)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/details", animeHandler.GetDetails)
				r.Get("/trailers", animeHandler.GetTrailers)
				r.Get("/similar", animeHandler.GetSimilar)
			})
		})

		// 検索と検索履歴
		r.Route("/api/v1/search", func(r chi.Router) {
			// 検索は上流呼び出しを伴うため専用レート制限を追加する
			r.Group(func(r chi.Router) {
				r.Use(deps.RateLimiter.SearchMiddleware())

				r.Get("/movie/{query}", searchHandler.SearchMovie)
				r.Get("/tv/{query}", searchHandler.SearchTV)
				r.Get("/person/{query}", searchHandler.SearchPerson)
				r.Get("/anime/{query}", searchHandler.SearchAnime)
			})

			r.Get("/history", searchHandler.GetHistory)
			r.Delete("/history/{id}", searchHandler.DeleteHistoryItem)
		})
	})

	return r
}

// healthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
