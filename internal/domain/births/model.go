package births

import (
	"time"

	"kitty-lineage/internal/ports/birthsource"
)

// BirthRecord es un nacimiento ya incorporado al dominio.
// Los campos de cadena (IDs, owner, genes) son inmutables; FetchedAt es local.
type BirthRecord struct {
	RecordID     string
	OwnerAddress string
	KittyID      string
	MatronID     string
	SireID       string

	// Genes: genoma como string decimal (entero sin signo de 256 bits).
	Genes string

	BlockTime time.Time
	FetchedAt time.Time
}

func fromSource(r birthsource.BirthRecord, fetchedAt time.Time) BirthRecord {
	return BirthRecord{
		RecordID:     r.RecordID,
		OwnerAddress: r.OwnerAddress,
		KittyID:      r.KittyID,
		MatronID:     r.MatronID,
		SireID:       r.SireID,
		Genes:        r.Genes,
		BlockTime:    r.BlockTime,
		FetchedAt:    fetchedAt,
	}
}
