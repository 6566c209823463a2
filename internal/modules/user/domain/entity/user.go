package entity

import "github.com/google/uuid"

type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleAdmin   UserRole = "ADMIN"
)

type UserLanguage string

const (
	LanguageDE UserLanguage = "de"
	LanguageEN UserLanguage = "en"
)

// User is created lazily the first time an actor account name authenticates.
type User struct {
	ID                 uuid.UUID    `gorm:"primaryKey;type:char(36)" json:"id"`
	ActorAccountName   string       `gorm:"uniqueIndex;size:191" json:"actorAccountName"`
	Password           string       `gorm:"size:191" json:"-"`
	Role               UserRole     `gorm:"size:32" json:"role"`
	Language           UserLanguage `gorm:"size:8" json:"language"`
	LastLoggedInLmsURL string       `json:"lastLoggedInLmsUrl,omitempty"`
	LongLivedTokenID   *uuid.UUID   `gorm:"type:char(36)" json:"longLivedTokenId,omitempty"`
}

func (User) TableName() string {
	return "users"
}
