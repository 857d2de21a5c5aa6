package security

import (
	"errors"
	"fmt"
	"time"

	"taskapp/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

// 署名不正・期限切れ・形式不正はすべてこれ
var ErrInvalidToken = errors.New("invalid token")

type accessJWTClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// HS256でアクセストークンを署名・検証する
type JWTCodec struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewJWTCodec(secret string, accessTTL time.Duration) *JWTCodec {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &JWTCodec{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

func (c *JWTCodec) TTL() time.Duration {
	return c.accessTTL
}

// Sign は now+TTL を期限にしたトークンを返す
func (c *JWTCodec) Sign(claims model.AccessClaims, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(c.accessTTL)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, accessJWTClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify は署名と期限を確認して本人情報を返す
func (c *JWTCodec) Verify(raw string) (model.AccessClaims, error) {
	var claims accessJWTClaims

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return model.AccessClaims{}, ErrInvalidToken
	}

	//expは必須
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(c.now()) {
		return model.AccessClaims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return model.AccessClaims{}, ErrInvalidToken
	}

	return model.AccessClaims{UserID: claims.Subject, Email: claims.Email}, nil
}
