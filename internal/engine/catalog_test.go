package engine

import (
	"errors"
	"testing"

	"cinerec/internal/models"
)

func TestNormalizeCoercesMissingValues(t *testing.T) {
	raws := []models.MovieDoc{
		{ID: 7, Title: "  Sin Datos  "},
	}

	cat, err := Normalize(raws)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cat.Len())
	}

	m := cat.Movies[0]
	if m.Title != "Sin Datos" {
		t.Errorf("Title = %q, want %q", m.Title, "Sin Datos")
	}
	if m.Overview != "" {
		t.Errorf("Overview = %q, want vacío", m.Overview)
	}
	if m.Genres == nil || len(m.Genres) != 0 {
		t.Errorf("Genres = %v, want lista vacía no-nil", m.Genres)
	}
	if m.Keywords == nil || len(m.Keywords) != 0 {
		t.Errorf("Keywords = %v, want lista vacía no-nil", m.Keywords)
	}
	if m.VoteAverage != 0 || m.VoteCount != 0 || m.Popularity != 0 {
		t.Errorf("numéricos = (%v, %v, %v), want todos 0", m.VoteAverage, m.VoteCount, m.Popularity)
	}
	if m.Year != 0 {
		t.Errorf("Year = %d, want 0 (desconocido)", m.Year)
	}
}

func TestNormalizeDuplicatesLastWriteWins(t *testing.T) {
	raws := []models.MovieDoc{
		{ID: 1, Title: "Primera"},
		{ID: 2, Title: "Otra"},
		{ID: 1, Title: "Segunda", VoteCount: 10},
	}

	cat, err := Normalize(raws)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}

	// el registro posterior gana, conservando la fila original
	row, ok := cat.RowOf(1)
	if !ok || row != 0 {
		t.Fatalf("RowOf(1) = (%d, %v), want (0, true)", row, ok)
	}
	if got := cat.Movies[row].Title; got != "Segunda" {
		t.Errorf("Title = %q, want %q (last-write-wins)", got, "Segunda")
	}
	if got := cat.Movies[row].VoteCount; got != 10 {
		t.Errorf("VoteCount = %d, want 10", got)
	}
}

func TestNormalizeDiscardsUnparseableIDs(t *testing.T) {
	raws := []models.MovieDoc{
		{ID: "no-numérico", Title: "Descartada"},
		{ID: nil, Title: "Sin id"},
		{ID: 3.5, Title: "Float no entero"},
		{ID: "42", Title: "String numérico"},
		{ID: float64(9), Title: "Float entero"},
	}

	cat, err := Normalize(raws)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}
	if _, ok := cat.RowOf(42); !ok {
		t.Error("RowOf(42): el id string numérico debería parsearse")
	}
	if _, ok := cat.RowOf(9); !ok {
		t.Error("RowOf(9): el id float entero debería parsearse")
	}
}

func TestNormalizeEmptyIsError(t *testing.T) {
	for _, raws := range [][]models.MovieDoc{
		nil,
		{{ID: "x", Title: "inválida"}},
	} {
		if _, err := Normalize(raws); !errors.Is(err, ErrNoValidRecords) {
			t.Errorf("Normalize(%v) error = %v, want ErrNoValidRecords", raws, err)
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2009-12-10", 2009},
		{"1977-05-25", 1977},
		{"10/12/2009", 2009},
		{"", 0},
		{"desconocida", 0},
		{"0000-01-01", 0},
		{"December 2009", 2009},
	}

	for _, tt := range tests {
		if got := parseYear(tt.date); got != tt.want {
			t.Errorf("parseYear(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}
