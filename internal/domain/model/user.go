package model

import "time"

type Role string

const (
	RoleFarmer   Role = "farmer"
	RoleConsumer Role = "consumer"
)

// Valid はサインアップで受け付けるroleかどうか
func (r Role) Valid() bool {
	return r == RoleFarmer || r == RoleConsumer
}

// profilesテーブル。パスワードハッシュはJSONに出さない。
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'consumer'" json:"role"`
	Location     string    `gorm:"type:varchar(255)" json:"location"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	Avatar       string    `gorm:"column:avatar_url;type:text" json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "profiles"
}
