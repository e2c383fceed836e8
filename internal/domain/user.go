package domain

import "context"

const RoleAdmin = "admin"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:80;not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}

type UserRepo interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Save(ctx context.Context, u *User) error
}

// Claims is what a verified bearer token says about the caller.
type Claims struct {
	Subject string
	Role    string
}

func (c Claims) IsAdmin() bool { return c.Role == RoleAdmin }

type TokenIssuer interface {
	Issue(subject, role string) (string, error)
	Verify(token string) (Claims, error)
}
