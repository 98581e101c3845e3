package genome

import (
	"math/big"
	"strings"
)

const (
	// TraitCount es la cantidad de grupos de rasgos en un genoma.
	TraitCount = 12

	// GroupLen es el largo en dígitos hex de cada grupo.
	GroupLen = 4

	// hexWidth: 256 bits = 64 dígitos hex; la ventana útil son los 48 de menor peso.
	hexWidth  = 64
	windowLen = TraitCount * GroupLen
)

// TraitGroup es un grupo de 4 dígitos hex.
// El último dígito es el dominante (se expresa); los tres primeros son recesivos.
type TraitGroup string

// Dominant devuelve el nibble dominante (último dígito) o "" si el grupo está vacío.
func (g TraitGroup) Dominant() string {
	if g == "" {
		return ""
	}
	return string(g[len(g)-1])
}

// Recessive devuelve los nibbles recesivos (todos menos el último).
func (g TraitGroup) Recessive() string {
	if g == "" {
		return ""
	}
	return string(g[:len(g)-1])
}

// Decode convierte un genoma (string decimal de un entero sin signo de 256 bits)
// en sus 12 grupos de rasgos, del grupo más significativo al menos significativo.
//
// Input malformado (vacío, no numérico, negativo) => nil, nunca error ni panic.
// El caller debe distinguir "sin datos" (nil) de "presente pero cero" (12 grupos "0000").
func Decode(genes string) []TraitGroup {
	n, ok := new(big.Int).SetString(strings.TrimSpace(genes), 10)
	if !ok || n.Sign() < 0 {
		return nil
	}

	// Hex con padding a 64 dígitos; nos quedamos con los 48 de menor peso.
	hex := n.Text(16)
	if len(hex) < hexWidth {
		hex = strings.Repeat("0", hexWidth-len(hex)) + hex
	}
	window := hex[len(hex)-windowLen:]

	out := make([]TraitGroup, 0, TraitCount)
	for i := 0; i < windowLen; i += GroupLen {
		out = append(out, TraitGroup(window[i:i+GroupLen]))
	}
	return out
}
