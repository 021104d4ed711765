package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoredMovie es la forma persistida de un registro normalizado del
// catálogo. Round-trip sin pérdida de todos los campos del modelo.
type StoredMovie struct {
	MovieID     int      `bson:"movieId" json:"movieId"`
	Title       string   `bson:"title" json:"title"`
	Overview    string   `bson:"overview" json:"overview"`
	Genres      []string `bson:"genres" json:"genres"`
	Keywords    []string `bson:"keywords" json:"keywords"`
	Year        int      `bson:"year" json:"year"` // 0 = desconocido
	VoteAverage float64  `bson:"voteAverage" json:"voteAverage"`
	VoteCount   int      `bson:"voteCount" json:"voteCount"`
	Popularity  float64  `bson:"popularity" json:"popularity"`
}

// SnapshotMeta es el documento cabecera de un snapshot persistido
// (colección `snapshots`). Las filas de la matriz van aparte en
// `snapshot_rows` para no chocar con el límite de tamaño de documento.
type SnapshotMeta struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FormatVersion int                `bson:"formatVersion" json:"formatVersion"`
	BuiltAt       time.Time          `bson:"builtAt" json:"builtAt"`
	Movies        []StoredMovie      `bson:"movies" json:"movies"`
	Vocabulary    map[string]int     `bson:"vocabulary" json:"vocabulary"`
}

// SnapshotRow es una fila de la matriz de similitud persistida.
type SnapshotRow struct {
	SnapshotID primitive.ObjectID `bson:"snapshotId" json:"snapshotId"`
	Row        int                `bson:"row" json:"row"`
	Sims       []float64          `bson:"sims" json:"sims"`
}

// SnapshotSummary es lo que devuelve GET /admin/snapshot.
type SnapshotSummary struct {
	Ready      bool      `json:"ready"`
	BuiltAt    time.Time `json:"builtAt,omitempty"`
	Movies     int       `json:"movies"`
	Vocabulary int       `json:"vocabulary"`
	Stale      bool      `json:"stale"`
	Rebuilding bool      `json:"rebuilding"`
}
