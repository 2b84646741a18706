package models

import (
	"slices"
	"time"
)

// Role определяет роль пользователя маркетплейса
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
)

// Valid сообщает, является ли роль одной из известных
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// User представляет пользователя в системе
type User struct {
	CreatedAt        time.Time  `json:"createdAt"`                // время создания
	UpdatedAt        time.Time  `json:"updatedAt"`                // время последнего обновления
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty"`    // время последнего входа
	FirstName        *string    `json:"firstName,omitempty"`      // имя
	LastName         *string    `json:"lastName,omitempty"`       // фамилия
	Avatar           *string    `json:"avatar,omitempty"`         // URL аватара
	Bio              *string    `json:"bio,omitempty"`            // описание профиля
	WalletAddress    *string    `json:"walletAddress,omitempty"`  // адрес кошелька
	ID               string     `json:"id"`                       // UUID пользователя
	Email            string     `json:"email"`                    // уникальный email
	Username         string     `json:"username"`                 // уникальный username
	Role             Role       `json:"role"`                     // USER | ADMIN | MODERATOR
	PasswordHash     string     `json:"-"`                        // bcrypt хеш пароля, только на сервере
	IsActive         bool       `json:"isActive"`                 // учетная запись активна
	IsSuspended      bool       `json:"isSuspended"`              // учетная запись заблокирована
	IsVerified       bool       `json:"isVerified"`               // email подтвержден
	IsAdmin          bool       `json:"isAdmin"`                  // legacy флаг администратора
	TwoFactorEnabled bool       `json:"twoFactorEnabled"`         // включена 2FA
}

// Clone возвращает независимую копию пользователя
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.LastLoginAt = clonePtr(u.LastLoginAt)
	c.FirstName = clonePtr(u.FirstName)
	c.LastName = clonePtr(u.LastName)
	c.Avatar = clonePtr(u.Avatar)
	c.Bio = clonePtr(u.Bio)
	c.WalletAddress = clonePtr(u.WalletAddress)
	return &c
}

// HasRole сообщает, входит ли роль пользователя в переданный набор
func (u *User) HasRole(roles ...Role) bool {
	if u == nil {
		return false
	}
	return slices.Contains(roles, u.Role)
}

// UserPatch содержит частичное обновление профиля.
// nil-поля не изменяются.
type UserPatch struct {
	Email            *string
	Username         *string
	FirstName        *string
	LastName         *string
	Avatar           *string
	Bio              *string
	WalletAddress    *string
	Role             *Role
	IsActive         *bool
	IsVerified       *bool
	TwoFactorEnabled *bool
}

// Apply применяет patch к пользователю на месте
func (p UserPatch) Apply(u *User) {
	if u == nil {
		return
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.FirstName != nil {
		u.FirstName = clonePtr(p.FirstName)
	}
	if p.LastName != nil {
		u.LastName = clonePtr(p.LastName)
	}
	if p.Avatar != nil {
		u.Avatar = clonePtr(p.Avatar)
	}
	if p.Bio != nil {
		u.Bio = clonePtr(p.Bio)
	}
	if p.WalletAddress != nil {
		u.WalletAddress = clonePtr(p.WalletAddress)
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.IsVerified != nil {
		u.IsVerified = *p.IsVerified
	}
	if p.TwoFactorEnabled != nil {
		u.TwoFactorEnabled = *p.TwoFactorEnabled
	}
}

// RefreshToken представляет refresh token пользователя
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
	Token     string    `json:"token"`      // значение токена
	UserID    string    `json:"user_id"`    // ID пользователя
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
