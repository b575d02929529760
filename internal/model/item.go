package model

// ItemEntry maps a barcode to an item type and its per-unit deposit value.
// Barcode is the unique key; re-registering a barcode overwrites the mapping.
type ItemEntry struct {
	Barcode    string `json:"barcode"`
	ItemType   string `json:"item_type"`
	ValueCents int64  `json:"value_cents"`
}
