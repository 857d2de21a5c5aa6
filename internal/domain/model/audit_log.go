package model

import "time"

// 認証まわりの操作種別
type AuditAction string

const (
	//会員登録
	AuditActionRegister AuditAction = "REGISTER"
	//パスワードリセット完了（全セッション失効）
	AuditActionPasswordReset AuditAction = "PASSWORD_RESET"
	//アカウント削除
	AuditActionDeleteAccount AuditAction = "DELETE_ACCOUNT"
)

// 何に対する操作か
type AuditResourceType string

const (
	//ユーザーに対する操作。
	AuditResourceUser AuditResourceType = "user"
)

// 監査ログ。
// 「誰が」「何を」「どの対象に」を残す。ユーザー削除後も残るのでFKは張らない。
type AuditLog struct {
	//IDは監査ログの主キー
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザーのID。
	ActorUserID string `gorm:"type:varchar(36);not null;index" json:"actor_user_id"`

	//操作の種類（REGISTER / PASSWORD_RESET など）。
	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	//対象の種類
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	//対象のID
	ResourceID string `gorm:"type:varchar(36);not null;index" json:"resource_id"`

	//作成時刻
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
