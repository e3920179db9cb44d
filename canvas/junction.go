package canvas

// arm is one of the four half-lines a box-drawing glyph can extend along.
type arm uint8

const (
	armUp arm = 1 << iota
	armDown
	armLeft
	armRight
)

// junctionArms lists the fusible glyphs and the arms each of them draws.
var junctionArms = map[rune]arm{
	'─': armLeft | armRight,
	'│': armUp | armDown,
	'┌': armRight | armDown,
	'┐': armLeft | armDown,
	'└': armRight | armUp,
	'┘': armLeft | armUp,
	'├': armUp | armDown | armRight,
	'┤': armUp | armDown | armLeft,
	'┬': armLeft | armRight | armDown,
	'┴': armLeft | armRight | armUp,
	'┼': armUp | armDown | armLeft | armRight,
	'╴': armLeft,
	'╵': armUp,
	'╶': armRight,
	'╷': armDown,
}

type fusePair struct {
	existing rune
	incoming rune
}

// fusionTable maps every pair of junction glyphs to the glyph drawing both.
var fusionTable = buildFusionTable()

func buildFusionTable() map[fusePair]rune {
	byArms := make(map[arm]rune, len(junctionArms))
	for r, a := range junctionArms {
		byArms[a] = r
	}

	table := make(map[fusePair]rune, len(junctionArms)*len(junctionArms))
	for existing, a := range junctionArms {
		for incoming, b := range junctionArms {
			table[fusePair{existing, incoming}] = byArms[a|b]
		}
	}
	return table
}

// IsJunction reports whether r belongs to the fusible glyph set.
func IsJunction(r rune) bool {
	_, ok := junctionArms[r]
	return ok
}

// Fuse combines two overlapping junction glyphs. A horizontal line merged with a
// vertical one yields a cross, two corners meeting yield a tee or a cross. When
// either rune is not a junction glyph the incoming rune wins.
func Fuse(existing, incoming rune) rune {
	if fused, ok := fusionTable[fusePair{existing, incoming}]; ok {
		return fused
	}
	return incoming
}
