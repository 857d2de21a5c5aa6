package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// refresh/resetトークンのバイト長（256bit）
const tokenBytes = 32

// 不透明なランダムトークンとDB保存用ハッシュを作る
type TokenGenerator struct {
	bytesLen int
}

func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{bytesLen: tokenBytes}
}

// Generate はOSの安全な乱数からbase64urlの平文を返す
func (g *TokenGenerator) Generate() (string, error) {
	if g.bytesLen <= 0 {
		return "", fmt.Errorf("bytesLen must be positive")
	}

	b := make([]byte, g.bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Hash は平文のSHA-256（hex）。同じ入力なら同じ値になるので検索キーに使う
func (g *TokenGenerator) Hash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
