package births

import "kitty-lineage/internal/domain/genome"

// TraitType es la categoría visible de cada uno de los 12 grupos del genoma.
type TraitType string

const (
	TraitPrestige       TraitType = "prestige"
	TraitSecret         TraitType = "secret"
	TraitEnvironment    TraitType = "environment"
	TraitMouth          TraitType = "mouth"
	TraitWild           TraitType = "wild"
	TraitAccentColor    TraitType = "accentcolor"
	TraitHighlightColor TraitType = "highlightcolor"
	TraitBaseColor      TraitType = "basecolor"
	TraitEyeType        TraitType = "eyetype"
	TraitEyeColor       TraitType = "eyecolor"
	TraitPattern        TraitType = "pattern"
	TraitBody           TraitType = "body"
)

// TraitTypes en el mismo orden en que Decode entrega los grupos
// (del más significativo al menos significativo).
var TraitTypes = [genome.TraitCount]TraitType{
	TraitPrestige,
	TraitSecret,
	TraitEnvironment,
	TraitMouth,
	TraitWild,
	TraitAccentColor,
	TraitHighlightColor,
	TraitBaseColor,
	TraitEyeType,
	TraitEyeColor,
	TraitPattern,
	TraitBody,
}

// Trait es un grupo decodificado con su categoría.
type Trait struct {
	Type      TraitType
	Group     genome.TraitGroup
	Dominant  string
	Recessive string
}

// Participant es uno de los tres kitties de un linaje (matron, sire o cría).
type Participant struct {
	KittyID     string
	Genes       string
	PortraitURL string
	Traits      []Trait
}

// Comparison es la comparación de un slot de rasgo entre los tres participantes.
// Un grupo vacío significa que ese genoma no estaba disponible.
type Comparison struct {
	Type     TraitType
	Matron   genome.TraitGroup
	Sire     genome.TraitGroup
	Kitten   genome.TraitGroup
	Relation genome.Relation
}

// Lineage es el resultado completo de comparar un nacimiento con sus padres.
type Lineage struct {
	Record      BirthRecord
	Matron      Participant
	Sire        Participant
	Kitten      Participant
	Comparisons []Comparison
}

// KittyTraits es el genoma decodificado de un kitty puntual.
type KittyTraits struct {
	KittyID     string
	Genes       string
	PortraitURL string
	Traits      []Trait
}
