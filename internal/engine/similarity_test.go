package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func buildTestMatrix(t *testing.T, docs [][]string) *Matrix {
	t.Helper()
	_, rows, err := fitTFIDF(docs)
	if err != nil {
		t.Fatalf("fitTFIDF() error = %v", err)
	}
	m, err := buildMatrix(context.Background(), rows)
	if err != nil {
		t.Fatalf("buildMatrix() error = %v", err)
	}
	return m
}

var simDocs = [][]string{
	{"space", "opera", "space"},
	{"space", "opera", "sequel"},
	{"romantic", "drama"},
	{"space", "drama", "war"},
}

func TestMatrixSymmetryAndDiagonal(t *testing.T) {
	m := buildTestMatrix(t, simDocs)

	for i := 0; i < m.Len(); i++ {
		if got := m.At(i, i); got != 1 {
			t.Errorf("At(%d,%d) = %v, want 1", i, i, got)
		}
		for j := 0; j < m.Len(); j++ {
			if m.At(i, j) != m.At(j, i) {
				t.Errorf("At(%d,%d) = %v != At(%d,%d) = %v", i, j, m.At(i, j), j, i, m.At(j, i))
			}
			if s := m.At(i, j); s < 0 || s > 1 {
				t.Errorf("At(%d,%d) = %v fuera de [0,1]", i, j, s)
			}
		}
	}
}

func TestMatrixDeterministic(t *testing.T) {
	// dos builds del mismo corpus: matrices idénticas byte a byte
	a := buildTestMatrix(t, simDocs)
	b := buildTestMatrix(t, simDocs)

	if !reflect.DeepEqual(a.vals, b.vals) {
		t.Error("buildMatrix() no es determinista entre builds idénticos")
	}
}

func TestNeighborsOrdering(t *testing.T) {
	m := buildTestMatrix(t, simDocs)

	ns := m.Neighbors(0, m.Len())
	if len(ns) != m.Len()-1 {
		t.Fatalf("len(Neighbors) = %d, want %d", len(ns), m.Len()-1)
	}
	for _, n := range ns {
		if n.Row == 0 {
			t.Fatal("Neighbors incluyó a la fila consultada")
		}
	}
	for i := 1; i < len(ns); i++ {
		if ns[i].Score > ns[i-1].Score {
			t.Fatalf("Neighbors sin ordenar: %v antes de %v", ns[i-1], ns[i])
		}
		if ns[i].Score == ns[i-1].Score && ns[i].Row < ns[i-1].Row {
			t.Fatalf("empate mal resuelto: fila %d antes de %d", ns[i-1].Row, ns[i].Row)
		}
	}

	// el doc 1 comparte space+opera con el 0: tiene que salir primero
	if ns[0].Row != 1 {
		t.Errorf("vecino top de 0 = fila %d, want 1", ns[0].Row)
	}
}

func TestNeighborsTieBreakByRow(t *testing.T) {
	// documentos idénticos: similitud empatada en 1, desempata la fila
	m := buildTestMatrix(t, [][]string{
		{"same", "doc"},
		{"same", "doc"},
		{"same", "doc"},
	})

	ns := m.Neighbors(2, 2)
	want := []Neighbor{{Row: 0, Score: 1}, {Row: 1, Score: 1}}
	if !reflect.DeepEqual(ns, want) {
		t.Errorf("Neighbors(2,2) = %v, want %v", ns, want)
	}
}

func TestNeighborsKOverflow(t *testing.T) {
	m := buildTestMatrix(t, simDocs)

	// k mayor que el catálogo: devuelve lo que hay, sin error
	if got := len(m.Neighbors(0, 1000)); got != m.Len()-1 {
		t.Errorf("len(Neighbors(0,1000)) = %d, want %d", got, m.Len()-1)
	}
}

func TestBuildMatrixCancel(t *testing.T) {
	_, rows, err := fitTFIDF(simDocs)
	if err != nil {
		t.Fatalf("fitTFIDF() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := buildMatrix(ctx, rows); !errors.Is(err, context.Canceled) {
		t.Errorf("buildMatrix(cancelado) error = %v, want context.Canceled", err)
	}
}

func TestMatrixRowRoundTrip(t *testing.T) {
	m := buildTestMatrix(t, simDocs)

	rows := make([][]float64, m.Len())
	for i := range rows {
		rows[i] = m.Row(i)
	}

	restored, err := NewMatrixFromRows(rows)
	if err != nil {
		t.Fatalf("NewMatrixFromRows() error = %v", err)
	}
	if !reflect.DeepEqual(m.vals, restored.vals) {
		t.Error("round-trip por filas no preserva la matriz")
	}
}

func TestNewMatrixFromRowsRagged(t *testing.T) {
	if _, err := NewMatrixFromRows([][]float64{{1, 0}, {0}}); err == nil {
		t.Error("NewMatrixFromRows(filas desparejas) = nil, want error")
	}
}
