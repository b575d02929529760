package model

import "time"

// RecycleEvent is a single recorded recycling action. Events are immutable
// once appended; the ledger never mutates or deletes them.
type RecycleEvent struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	ItemType    string    `json:"item_type"`
	Barcode     string    `json:"barcode"`
	ValueCents  int64     `json:"value_cents"`
	RecordedAt  time.Time `json:"recorded_at"`

	// Seq is the ledger insertion sequence, assigned on append.
	// Used only to break timestamp ties (later insertion first).
	Seq int64 `json:"-"`
}
