package compatibility

import "strings"

type FormFactor int

const (
	MiniITX FormFactor = iota
	MicroATX
	ATX
	EATX
)

func (f FormFactor) String() string {
	switch f {
	case MiniITX:
		return "mini-itx"
	case MicroATX:
		return "micro-atx"
	case ATX:
		return "atx"
	case EATX:
		return "e-atx"
	}
	return "unknown"
}

var caseClasses = map[FormFactor][]FormFactor{
	EATX:     {MiniITX, MicroATX, ATX, EATX},
	ATX:      {MiniITX, MicroATX, ATX},
	MicroATX: {MiniITX, MicroATX},
	MiniITX:  {MiniITX},
}

func squash(text string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "", "µ", "m").Replace(strings.ToLower(text))
}

// NormalizeBoard maps motherboard form factor text onto one of the four classes.
func NormalizeBoard(text string) (FormFactor, bool) {
	s := squash(text)
	switch {
	case strings.Contains(s, "eatx") || strings.Contains(s, "extendedatx"):
		return EATX, true
	case strings.Contains(s, "microatx") || strings.Contains(s, "matx"):
		return MicroATX, true
	case strings.Contains(s, "itx"):
		return MiniITX, true
	case strings.Contains(s, "atx"):
		return ATX, true
	}
	return 0, false
}

// caseClass maps case size text onto the largest board class it takes.
func caseClass(text string) (FormFactor, bool) {
	s := squash(text)
	switch {
	case strings.Contains(s, "fulltower") || strings.Contains(s, "eatx") || strings.Contains(s, "extendedatx"):
		return EATX, true
	case strings.Contains(s, "microatx") || strings.Contains(s, "matx"):
		return MicroATX, true
	case strings.Contains(s, "itx"):
		return MiniITX, true
	case strings.Contains(s, "midtower") || strings.Contains(s, "atx"):
		return ATX, true
	}
	return 0, false
}

// CaseFits reports whether a motherboard fits a case. Case text that matches
// no known class is treated as fitting everything; board text that matches
// no class cannot be judged and also fits.
func CaseFits(caseText, boardText string) bool {
	class, ok := caseClass(caseText)
	if !ok {
		return true
	}
	board, ok := NormalizeBoard(boardText)
	if !ok {
		return true
	}
	for _, accepted := range caseClasses[class] {
		if accepted == board {
			return true
		}
	}
	return false
}
