package store

import (
	"context"
	"errors"

	"github.com/thoughtwall/thoughtwall/internal/model"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicateUsername = errors.New("duplicate username")
)

// ThoughtListOpts selects a page of thoughts. Category is an exact
// case-insensitive match when non-empty. Sort is "hearts" or "date";
// anything else falls back to newest-first.
type ThoughtListOpts struct {
	Category string
	Sort     string
	Page     int
	Limit    int
}

type Store interface {
	ThoughtStore
	UserStore
	GetSiteStats(ctx context.Context) (model.SiteStats, error)
	Close() error
}

type ThoughtStore interface {
	CreateThought(ctx context.Context, thought *model.Thought) error
	GetThought(ctx context.Context, id string) (model.Thought, error)
	// ListThoughts returns one page plus the total count of thoughts
	// matching the same filter.
	ListThoughts(ctx context.Context, opts ThoughtListOpts) ([]model.Thought, int, error)
	UpdateThought(ctx context.Context, id, message, category string) (model.Thought, error)
	IncrementHearts(ctx context.Context, id string) (model.Thought, error)
	DeleteThought(ctx context.Context, id string) (model.Thought, error)
	DeleteThoughtsByUser(ctx context.Context, userID string) (int64, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByToken(ctx context.Context, token string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	// SetAccessToken replaces the user's stored token, invalidating
	// whatever token was issued before.
	SetAccessToken(ctx context.Context, userID, token string) error
	DeleteUser(ctx context.Context, id string) error
}
