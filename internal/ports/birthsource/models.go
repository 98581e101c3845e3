package birthsource

import "time"

// BirthRecord representa un nacimiento tal como lo entrega el dataset externo.
// Inmutable una vez fetcheado; los IDs vienen asignados por la cadena.
type BirthRecord struct {
	RecordID     string
	OwnerAddress string
	KittyID      string
	MatronID     string
	SireID       string

	// Genes es el genoma como string decimal de un entero sin signo de 256 bits.
	Genes string

	BlockTime time.Time
}
