package model

import "time"

// パスワードリセット用の使い捨てトークン。
// UsedAtはnil→時刻へ一度だけ遷移する。
type PasswordResetToken struct {
	ID        string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID    string     `json:"userId" gorm:"type:varchar(36);not null;index"`
	TokenHash string     `json:"-" gorm:"type:varchar(64);not null;uniqueIndex"`
	ExpiresAt time.Time  `json:"expiresAt" gorm:"not null;index"`
	UsedAt    *time.Time `json:"usedAt" gorm:"index"`
	CreatedAt time.Time  `json:"createdAt" gorm:"not null"`
}

// 未使用かつ期限内か
func (t PasswordResetToken) IsActive(now time.Time) bool {
	return t.UsedAt == nil && t.ExpiresAt.After(now)
}
