package repository

import (
	"context"
	"errors"

	"recycletrack-api/internal/model"
)

// Sentinel errors shared by all repository implementations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a uniqueness conflict (duplicate username).
	ErrAlreadyExists = errors.New("already exists")
)

// CatalogRepository defines barcode catalog data access methods.
type CatalogRepository interface {
	// Lookup returns the entry for a barcode, or ErrNotFound if unknown.
	Lookup(ctx context.Context, barcode string) (*model.ItemEntry, error)

	// Register inserts or overwrites the entry for its barcode.
	// Overwriting an existing barcode is not an error (last write wins).
	Register(ctx context.Context, entry model.ItemEntry) error

	// List returns all catalog entries in no particular order.
	List(ctx context.Context) ([]model.ItemEntry, error)
}

// LedgerRepository defines access to the append-only recycling ledger.
type LedgerRepository interface {
	// Append stores a new immutable event and assigns its insertion
	// sequence number. Unknown owner ids are accepted; referential
	// integrity is the caller's concern.
	Append(ctx context.Context, event *model.RecycleEvent) error

	// RecentFor returns up to limit events for the user, most recent
	// first; timestamp ties break toward later insertion. limit <= 0
	// yields an empty slice.
	RecentFor(ctx context.Context, userID string, limit int) ([]model.RecycleEvent, error)

	// AllFor returns every event for the user with no ordering guarantee.
	AllFor(ctx context.Context, userID string) ([]model.RecycleEvent, error)

	// Stats returns operational statistics about the ledger store.
	Stats(ctx context.Context) (map[string]interface{}, error)
}

// LeaderboardRepository defines access to the user roster and snapshots.
type LeaderboardRepository interface {
	// ListUsers returns a snapshot copy of the roster in insertion order.
	ListUsers(ctx context.Context) ([]model.UserProfile, error)

	// AddUser creates a profile with zeroed aggregates. A no-op if the
	// id is already present; returns ErrAlreadyExists if the username is
	// taken by a different id.
	AddUser(ctx context.Context, id, username string) error

	// UpdateSnapshot overwrites the aggregate fields for the user.
	// Returns ErrNotFound if the user is unknown.
	UpdateSnapshot(ctx context.Context, userID string, stats model.UserStats) error
}

// AccountRepository defines access to account credentials.
type AccountRepository interface {
	// Create stores a credential. Returns ErrAlreadyExists if the
	// username is taken.
	Create(ctx context.Context, cred model.Credential) error

	// GetByUsername returns the credential for a username, or ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*model.Credential, error)
}
