// Package token はセッショントークンの発行と検証を提供する。
//
// トークンはユーザーIDと有効期限（発行から15日）を埋め込んだHS256署名付きJWTで、
// サーバー側には保持しない。有効性は署名と期限のみで判定する。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession はセッショントークンが無効な場合のエラー。
// 形式不正・署名不一致・期限切れのいずれもこのエラーに集約する
// （失敗理由を呼び出し元に区別させない）。
var ErrInvalidSession = errors.New("invalid session token")

// SessionDuration はセッショントークンの有効期間。
const SessionDuration = 15 * 24 * time.Hour

// claims はセッショントークンのJWTペイロード。
type claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Issuer はセッショントークンの発行・検証を行う。
type Issuer struct {
	secret []byte
}

// NewIssuer は署名鍵を保持するIssuerを生成する。
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue は指定ユーザーIDを埋め込んだ署名付きトークンを発行する。
func (i *Issuer) Issue(userID string) (string, error) {
	now := time.Now()
	c := &claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionDuration)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString(i.secret)
}

// Verify はトークンの署名と期限を検証し、ユーザーIDを返す。
// いかなる失敗もErrInvalidSessionとして返す。
func (i *Issuer) Verify(tokenStr string) (string, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		// alg none攻撃を防ぐため、HMAC以外の署名方式を拒否する
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return i.secret, nil
	})
	if err != nil {
		return "", ErrInvalidSession
	}

	c, ok := t.Claims.(*claims)
	if !ok || !t.Valid || c.UserID == "" {
		return "", ErrInvalidSession
	}

	return c.UserID, nil
}
