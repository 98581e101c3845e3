package genome

// Relation clasifica cómo se relacionan los grupos de rasgos de matron, sire y cría,
// mirando solo el nibble dominante de cada uno.
type Relation string

const (
	// Los tres comparten el dominante.
	RelationAllShare Relation = "allShare"
	// Los padres comparten, la cría difiere.
	RelationParentsOnlyShare Relation = "parentsOnlyShare"
	// Matron y cría comparten, sire difiere.
	RelationMatronOffspringShare Relation = "matronOffspringShare"
	// Sire y cría comparten, matron difiere.
	RelationSireOffspringShare Relation = "sireOffspringShare"
	// Los tres difieren, o falta algún grupo (bucket por defecto).
	RelationMutation Relation = "mutation"
)

// Classify devuelve la relación de herencia entre los tres grupos.
// Cualquier grupo ausente (string vacío) => mutation.
//
// El orden de los chequeos importa y debe preservarse:
// allShare > parentsOnlyShare > matronOffspringShare > sireOffspringShare > mutation.
func Classify(matron, sire, kitten TraitGroup) Relation {
	m := matron.Dominant()
	s := sire.Dominant()
	k := kitten.Dominant()

	if m == "" || s == "" || k == "" {
		return RelationMutation
	}

	switch {
	case m == s && s == k:
		return RelationAllShare
	case m == s:
		return RelationParentsOnlyShare
	case m == k:
		return RelationMatronOffspringShare
	case s == k:
		return RelationSireOffspringShare
	default:
		return RelationMutation
	}
}
