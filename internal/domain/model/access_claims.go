package model

// アクセストークンに載せる本人情報（DBには保存しない）
type AccessClaims struct {
	UserID string
	Email  string
}
