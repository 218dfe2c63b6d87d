package domain

import (
	"context"
	"io"
	"time"
)

type Account struct {
	ID       int64  `json:"id,string"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
	Password string `json:"-"`

	AccessToken  string `json:"-" gorm:"-"`
	RefreshToken string `json:"-" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const DefaultAccountRole = "user"

type AccountRepo interface {
	Create(account *Account) error
	Get(accountID int64) (*Account, error)
	GetByEmail(email string) (*Account, error)
	List(skip, limit int, name string) ([]*Account, error)
	UpdateAvatar(accountID int64, avatar string) error
}

type RegisterAccountRequest struct {
	Name     string
	Email    string
	Password string

	// Avatar is optional. When set, AvatarFilename carries the original
	// file name so the stored key keeps its extension.
	Avatar         io.Reader
	AvatarFilename string
}

type AccountUseCase interface {
	Register(ctx context.Context, req RegisterAccountRequest) (*Account, error)
	// UpdateAvatar replaces the caller's profile picture and returns the
	// refreshed account.
	UpdateAvatar(ctx context.Context, accountID int64, avatar io.Reader, filename string) (*Account, error)
	Get(ctx context.Context, accountID int64) (*Account, error)
	List(ctx context.Context, skip, limit int, name string) ([]*Account, error)
	// VerifyActive returns the account or an inactive-user error. It backs
	// the active-account middleware in front of every protected endpoint.
	VerifyActive(ctx context.Context, accountID int64) (*Account, error)
}

// AvatarRepo is the blob-storage collaborator for profile pictures. Upload
// returns the stable reference stored on the account.
type AvatarRepo interface {
	Upload(ctx context.Context, fileReader io.Reader, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
