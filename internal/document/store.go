package document

import (
	"context"
	"time"

	"github.com/theirongolddev/staffplan/internal/model"
)

// SaveResult describes a stored proposal version.
type SaveResult struct {
	ID      string    `json:"id"`
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
}

// Entry is one row of a proposal listing.
type Entry struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Client  string    `json:"client"`
	Date    time.Time `json:"date"`
	SavedAt time.Time `json:"saved_at"`
}

// Version is one historical save of a proposal.
type Version struct {
	Version int       `json:"version"`
	Title   string    `json:"title"`
	SavedAt time.Time `json:"saved_at"`
}

// Store persists proposals. Save assigns an ID when the proposal has none
// and records a new version on every call.
type Store interface {
	Save(ctx context.Context, p model.Proposal) (SaveResult, error)
	Load(ctx context.Context, id string) (model.Proposal, error)
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, id string) error
	Versions(ctx context.Context, id string) ([]Version, error)
}
