// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aniflix/aniflix/internal/middleware"
	"github.com/aniflix/aniflix/internal/model"
	"github.com/aniflix/aniflix/internal/token"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Signup は新規ユーザーを登録する。
	Signup(ctx context.Context, username, email, password string) (*model.User, error)
	// Login は資格情報を照合し、一致したユーザーを返す。
	Login(ctx context.Context, email, password string) (*model.User, error)
}

// TokenIssuer はセッショントークンの発行インターフェース。
// token.Issuerの部分集合として定義する。
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieSecure bool
}

// AuthHandler はメール/パスワード認証関連のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	issuer  TokenIssuer
	config  AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, issuer TokenIssuer, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service: service,
		issuer:  issuer,
		config:  config,
	}
}

// signupRequest はサインアップリクエストのボディ。
type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup は新規ユーザー登録を処理する。
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("Invalid request body"))
		return
	}

	user, err := h.service.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err, "")
		return
	}

	if err := h.setSessionCookie(w, user.ID); err != nil {
		slog.Error("failed to issue session token", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		Success: true,
		Message: "User created successfully",
		User:    user,
	})
}

// Login はログインを処理する。
// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("Invalid request body"))
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err, "")
		return
	}

	if err := h.setSessionCookie(w, user.ID); err != nil {
		slog.Error("failed to issue session token", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		Success: true,
		Message: "Logged in successfully",
		User:    user,
	})
}

// Logout はセッションCookieをクリアする。
// POST /api/v1/auth/logout
// トークンはステートレスなためサーバー側で破棄する状態はない。
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

// AuthCheck は現在のログインユーザー情報を返す。
// GET /api/v1/auth/authCheck（セッションミドルウェアの後に配置）
func (h *AuthHandler) AuthCheck(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		Success: true,
		User:    user,
	})
}

// setSessionCookie はセッショントークンを発行し、HTTP Only Cookieに設定する。
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, userID string) error {
	tokenString, err := h.issuer.Issue(userID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(token.SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})

	return nil
}
