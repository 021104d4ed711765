package engine

import (
	"strings"
	"unicode"
)

// stopWords: lista de stop-words en inglés usada por el tokenizador
// (subconjunto estándar; es configuración del pipeline, documentada aquí).
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a about above after again against all am an and any are as at
		be because been before being below between both but by
		can cannot could did do does doing down during
		each few for from further had has have having he her here hers
		herself him himself his how i if in into is it its itself
		just me more most my myself no nor not now of off on once only
		or other our ours ourselves out over own
		same she should so some such than that the their theirs them
		themselves then there these they this those through to too
		under until up very was we were what when where which while who
		whom why will with would you your yours yourself yourselves
	`) {
		stopWords[w] = struct{}{}
	}
}

// Tokenize parte un texto en tokens: minúsculas, solo letras y dígitos,
// sin stop-words ni tokens de un solo carácter. Determinista.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	out := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len([]rune(tok)) < 2 {
			continue
		}
		if _, skip := stopWords[tok]; skip {
			continue
		}
		out = append(out, tok)
	}
	return out
}
