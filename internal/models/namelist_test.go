package models

import (
	"encoding/json"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNameListUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want NameList
	}{
		{
			name: "lista nativa",
			in:   `["Action", "Adventure"]`,
			want: NameList{"Action", "Adventure"},
		},
		{
			name: "lista de objetos",
			in:   `[{"id": 28, "name": "Action"}, {"id": 12, "name": "Adventure"}]`,
			want: NameList{"Action", "Adventure"},
		},
		{
			name: "repr de Python como string",
			in:   `"[{'id': 28, 'name': 'Action'}, {'id': 12, 'name': 'Adventure'}]"`,
			want: NameList{"Action", "Adventure"},
		},
		{
			name: "lista JSON dentro de un string",
			in:   `"[\"Action\", \"Adventure\"]"`,
			want: NameList{"Action", "Adventure"},
		},
		{
			name: "pipes",
			in:   `"Action|Adventure|Sci-Fi"`,
			want: NameList{"Action", "Adventure", "Sci-Fi"},
		},
		{
			name: "comas",
			in:   `"Action, Adventure"`,
			want: NameList{"Action", "Adventure"},
		},
		{
			name: "null",
			in:   `null`,
			want: nil,
		},
		{
			name: "string vacío",
			in:   `""`,
			want: nil,
		},
		{
			name: "elementos en blanco filtrados",
			in:   `["Action", "  ", ""]`,
			want: NameList{"Action"},
		},
		{
			name: "tipo inesperado sin error",
			in:   `42`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got NameList
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNameListUnmarshalBSON(t *testing.T) {
	type doc struct {
		Genres NameList `bson:"genres"`
	}

	tests := []struct {
		name string
		in   any
		want NameList
	}{
		{
			name: "array nativo",
			in:   bson.M{"genres": bson.A{"Action", "Adventure"}},
			want: NameList{"Action", "Adventure"},
		},
		{
			name: "array de subdocumentos",
			in:   bson.M{"genres": bson.A{bson.M{"id": 28, "name": "Action"}}},
			want: NameList{"Action"},
		},
		{
			name: "string codificado",
			in:   bson.M{"genres": "[{'id': 28, 'name': 'Action'}]"},
			want: NameList{"Action"},
		},
		{
			name: "null",
			in:   bson.M{"genres": nil},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			var got doc
			if err := bson.Unmarshal(raw, &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !reflect.DeepEqual(got.Genres, tt.want) {
				t.Errorf("Genres = %v, want %v", got.Genres, tt.want)
			}
		})
	}
}

func TestNameListMarshalRoundTrip(t *testing.T) {
	// una vez decodificada se serializa como lista plana
	l := NameList{"Action", "Adventure"}
	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got := string(data); got != `["Action","Adventure"]` {
		t.Errorf("Marshal() = %s, want lista plana", got)
	}
}
