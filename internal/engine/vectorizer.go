package engine

import (
	"math"
	"sort"
)

// Vocabulary mapea token -> columna. Se congela al construir el snapshot;
// consultar con tokens fuera del vocabulario aporta peso cero, nunca error.
type Vocabulary map[string]int

// termWeight es una entrada de un vector disperso (columna, peso).
type termWeight struct {
	term int
	w    float64
}

// docVector es la fila TF-IDF de un documento, dispersa y ordenada por
// columna (el orden fijo hace determinista el producto punto).
type docVector []termWeight

// fitTFIDF construye el vocabulario y las filas TF-IDF L2-normalizadas del
// corpus. IDF suavizado: idf(t) = ln((1+N)/(1+df(t))) + 1. Sin piso de
// frecuencia documental: cualquier token que aparezca entra al vocabulario.
// Devuelve ErrEmptyCorpus si todos los documentos quedaron sin tokens.
func fitTFIDF(docs [][]string) (Vocabulary, []docVector, error) {
	vocab := make(Vocabulary)
	df := make([]int, 0)

	// vocabulario en orden de primera aparición + document frequency
	for _, doc := range docs {
		seen := make(map[int]struct{}, len(doc))
		for _, tok := range doc {
			col, ok := vocab[tok]
			if !ok {
				col = len(vocab)
				vocab[tok] = col
				df = append(df, 0)
			}
			if _, dup := seen[col]; !dup {
				df[col]++
				seen[col] = struct{}{}
			}
		}
	}

	if len(vocab) == 0 {
		return nil, nil, ErrEmptyCorpus
	}

	n := float64(len(docs))
	idf := make([]float64, len(df))
	for col, d := range df {
		idf[col] = math.Log((1+n)/(1+float64(d))) + 1
	}

	rows := make([]docVector, len(docs))
	for i, doc := range docs {
		tf := make(map[int]float64, len(doc))
		for _, tok := range doc {
			tf[vocab[tok]]++
		}

		vec := make(docVector, 0, len(tf))
		for col, count := range tf {
			vec = append(vec, termWeight{term: col, w: count * idf[col]})
		}
		sort.Slice(vec, func(a, b int) bool { return vec[a].term < vec[b].term })

		rows[i] = l2Normalize(vec)
	}

	return vocab, rows, nil
}

func l2Normalize(vec docVector) docVector {
	var sum float64
	for _, tw := range vec {
		sum += tw.w * tw.w
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i].w /= norm
	}
	return vec
}

// dot: producto punto de dos filas dispersas ordenadas. Como las filas ya
// están L2-normalizadas, esto es directamente la similitud coseno.
func dot(a, b docVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].term < b[j].term:
			i++
		case a[i].term > b[j].term:
			j++
		default:
			sum += a[i].w * b[j].w
			i++
			j++
		}
	}
	return sum
}
