package watchlist

import "time"

// Entry es una dirección de dueño que un viewer sigue.
type Entry struct {
	ID       string
	ViewerID string

	// OwnerAddress normalizada a minúsculas (0x + 40 hex).
	OwnerAddress string

	// Label opcional, elegido por el viewer.
	Label string

	CreatedAt time.Time
}
