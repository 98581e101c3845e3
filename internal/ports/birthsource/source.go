package birthsource

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven las implementaciones cuando el record/kitty no existe
// en el dataset. El dominio lo chequea con errors.Is.
var ErrNotFound = errors.New("birthsource: not found")

// Source expone el dataset externo de nacimientos (API GraphQL).
type Source interface {
	// ListBirths trae los nacimientos más recientes.
	// owner opcional ("" = sin filtro) para filtrar por dueño.
	ListBirths(ctx context.Context, owner string, limit int) ([]BirthRecord, error)

	// GetBirth trae un nacimiento puntual por su record ID.
	GetBirth(ctx context.Context, recordID string) (BirthRecord, error)

	// GetGenome trae el genoma (string decimal) de un kitty por su ID.
	GetGenome(ctx context.Context, kittyID string) (string, error)
}
