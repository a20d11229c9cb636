// Package auth はメール/パスワード認証のドメインロジックを提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aniflix/aniflix/internal/model"
	"github.com/aniflix/aniflix/internal/repository"
)

// emailRegex はメールアドレスの形式チェック用パターン。
// 厳密なRFC準拠ではなく「空白なし@空白なし.空白なし」の緩い検証に留める。
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// defaultAvatars は新規ユーザーにランダムに割り当てるアバター画像のパス。
var defaultAvatars = []string{"/avatar1.png", "/avatar2.png", "/avatar3.png"}

// bcryptCost はパスワードハッシュの計算コスト。
const bcryptCost = 10

// minPasswordLength はパスワードの最小文字数。
const minPasswordLength = 6

// Service は認証のサービス層。
// サインアップ/ログインの検証と資格情報の照合を提供する。
type Service struct {
	users repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// Signup は新規ユーザーを登録する。
// 検証順序: 必須項目 → メール形式 → パスワード長 → メール重複 → ユーザー名重複。
// 最初に失敗した検証のメッセージのみを返す。
func (s *Service) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	// 1. 入力検証
	if username == "" || email == "" || password == "" {
		return nil, model.NewValidationError("Please fill all the fields")
	}
	if !emailRegex.MatchString(email) {
		return nil, model.NewValidationError("Invalid email")
	}
	if len(password) < minPasswordLength {
		return nil, model.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	// 2. 重複チェック（メール → ユーザー名の順）
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		return nil, model.NewValidationError("Email already exists")
	}

	existing, err = s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}
	if existing != nil {
		return nil, model.NewValidationError("Username already exists")
	}

	// 3. パスワードハッシュ化
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Image:        defaultAvatars[rand.Intn(len(defaultAvatars))],
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 4. 作成（事前チェックとの競合は一意制約違反として現れる）
	if err := s.users.Create(ctx, user); err != nil {
		switch err {
		case repository.ErrDuplicateEmail:
			return nil, model.NewValidationError("Email already exists")
		case repository.ErrDuplicateUsername:
			return nil, model.NewValidationError("Username already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user signed up",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login は資格情報を照合し、一致したユーザーを返す。
// 未登録メールとパスワード不一致は同一メッセージに潰す（存在の漏洩防止）。
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, model.NewValidationError("Please fill all the fields")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil {
		return nil, model.NewValidationError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewValidationError("Invalid credentials")
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
	)

	return user, nil
}
