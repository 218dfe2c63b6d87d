package domain

import (
	"context"
	"time"
)

type Tag struct {
	ID        int64     `json:"id,string"`
	AccountID int64     `json:"account_id,string"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Deleted   bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TagRepo interface {
	Create(tag *Tag) error
	// Get resolves a tag by id regardless of its deleted flag, so expenses
	// referencing a soft-deleted tag still render a snapshot.
	Get(tagID int64) (*Tag, error)
	GetByIDs(tagIDs []int64) (map[int64]*Tag, error)
	// ListByAccount excludes soft-deleted tags.
	ListByAccount(accountID int64) ([]*Tag, error)
	// Update and SoftDelete are owner-scoped and report rows affected.
	Update(tagID, accountID int64, name, color string) (int64, error)
	SoftDelete(tagID, accountID int64) (int64, error)
}

type TagUseCase interface {
	Create(ctx context.Context, accountID int64, name, color string) (*Tag, error)
	Update(ctx context.Context, accountID, tagID int64, name, color string) (*Tag, error)
	Delete(ctx context.Context, accountID, tagID int64) error
	ListByAccount(ctx context.Context, accountID int64) ([]*Tag, error)
}
