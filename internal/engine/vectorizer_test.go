package engine

import (
	"errors"
	"math"
	"testing"
)

func TestFitTFIDFEmptyCorpus(t *testing.T) {
	for _, docs := range [][][]string{
		{},
		{{}, {}, {}},
	} {
		if _, _, err := fitTFIDF(docs); !errors.Is(err, ErrEmptyCorpus) {
			t.Errorf("fitTFIDF(%v) error = %v, want ErrEmptyCorpus", docs, err)
		}
	}
}

func TestFitTFIDFRowsAreUnitNorm(t *testing.T) {
	docs := [][]string{
		{"space", "opera", "space"},
		{"romantic", "drama"},
		{"space", "drama"},
	}

	_, rows, err := fitTFIDF(docs)
	if err != nil {
		t.Fatalf("fitTFIDF() error = %v", err)
	}

	for i, row := range rows {
		var sum float64
		for _, tw := range row {
			sum += tw.w * tw.w
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("fila %d: ||v||² = %v, want 1", i, sum)
		}
	}
}

func TestFitTFIDFVocabulary(t *testing.T) {
	docs := [][]string{
		{"alpha", "beta"},
		{"beta", "gamma"},
	}

	vocab, _, err := fitTFIDF(docs)
	if err != nil {
		t.Fatalf("fitTFIDF() error = %v", err)
	}
	if len(vocab) != 3 {
		t.Fatalf("|vocab| = %d, want 3", len(vocab))
	}

	// columnas en orden de primera aparición (determinista)
	want := map[string]int{"alpha": 0, "beta": 1, "gamma": 2}
	for tok, col := range want {
		if vocab[tok] != col {
			t.Errorf("vocab[%q] = %d, want %d", tok, vocab[tok], col)
		}
	}
}

func TestFitTFIDFSmoothedIDF(t *testing.T) {
	// "common" aparece en los 3 documentos, "rare" en uno solo: el peso
	// TF-IDF de rare tiene que superar al de common dentro del doc 0
	docs := [][]string{
		{"common", "rare"},
		{"common"},
		{"common"},
	}

	vocab, rows, err := fitTFIDF(docs)
	if err != nil {
		t.Fatalf("fitTFIDF() error = %v", err)
	}

	var wCommon, wRare float64
	for _, tw := range rows[0] {
		switch tw.term {
		case vocab["common"]:
			wCommon = tw.w
		case vocab["rare"]:
			wRare = tw.w
		}
	}
	if wRare <= wCommon {
		t.Errorf("peso rare = %v <= peso common = %v; IDF no está descontando", wRare, wCommon)
	}

	// idf(t) = ln((1+N)/(1+df)) + 1, con N=3: df=3 -> 1.0, df=1 -> ln(2)+1
	ratio := wRare / wCommon
	wantRatio := (math.Log(2) + 1) / 1.0
	if math.Abs(ratio-wantRatio) > 1e-12 {
		t.Errorf("ratio rare/common = %v, want %v", ratio, wantRatio)
	}
}

func TestDotIdenticalRowsIsOne(t *testing.T) {
	docs := [][]string{
		{"space", "opera"},
		{"space", "opera"},
	}

	_, rows, err := fitTFIDF(docs)
	if err != nil {
		t.Fatalf("fitTFIDF() error = %v", err)
	}
	if got := dot(rows[0], rows[1]); math.Abs(got-1) > 1e-12 {
		t.Errorf("dot(iguales) = %v, want 1", got)
	}
}

func TestDotDisjointRowsIsZero(t *testing.T) {
	docs := [][]string{
		{"space", "opera"},
		{"romantic", "drama"},
	}

	_, rows, err := fitTFIDF(docs)
	if err != nil {
		t.Fatalf("fitTFIDF() error = %v", err)
	}
	if got := dot(rows[0], rows[1]); got != 0 {
		t.Errorf("dot(disjuntos) = %v, want 0", got)
	}
}
