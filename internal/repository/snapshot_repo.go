package repository

import (
	"context"
	"fmt"

	"cinerec/internal/db"
	"cinerec/internal/engine"
	"cinerec/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SnapshotFormatVersion se sube cada vez que cambia la forma persistida.
// Un snapshot con otra versión se rechaza en la carga en vez de leerse
// mal en silencio.
const SnapshotFormatVersion = 1

// filas por InsertMany, para no armar batches gigantes
const rowBatchSize = 200

// SnapshotRepository persiste snapshots del engine: un documento cabecera
// en `snapshots` (catálogo + vocabulario) y una fila de la matriz por
// documento en `snapshot_rows`.
type SnapshotRepository struct {
	metas *mongo.Collection
	rows  *mongo.Collection
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{
		metas: db.DB().Collection("snapshots"),
		rows:  db.DB().Collection("snapshot_rows"),
	}
}

// Save persiste un snapshot completo y devuelve su id.
func (r *SnapshotRepository) Save(ctx context.Context, snap *engine.Snapshot) (primitive.ObjectID, error) {
	n := snap.Catalog.Len()

	stored := make([]models.StoredMovie, n)
	for i, m := range snap.Catalog.Movies {
		stored[i] = models.StoredMovie{
			MovieID:     m.ID,
			Title:       m.Title,
			Overview:    m.Overview,
			Genres:      m.Genres,
			Keywords:    m.Keywords,
			Year:        m.Year,
			VoteAverage: m.VoteAverage,
			VoteCount:   m.VoteCount,
			Popularity:  m.Popularity,
		}
	}

	meta := models.SnapshotMeta{
		FormatVersion: SnapshotFormatVersion,
		BuiltAt:       snap.BuiltAt,
		Movies:        stored,
		Vocabulary:    map[string]int(snap.Vocab),
	}

	res, err := r.metas.InsertOne(ctx, meta)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)

	batch := make([]any, 0, rowBatchSize)
	for i := 0; i < n; i++ {
		batch = append(batch, models.SnapshotRow{
			SnapshotID: id,
			Row:        i,
			Sims:       snap.Sim.Row(i),
		})
		if len(batch) == rowBatchSize || i == n-1 {
			if _, err := r.rows.InsertMany(ctx, batch); err != nil {
				// no dejamos una cabecera apuntando a filas incompletas
				_, _ = r.metas.DeleteOne(ctx, bson.M{"_id": id})
				_, _ = r.rows.DeleteMany(ctx, bson.M{"snapshotId": id})
				return primitive.NilObjectID, err
			}
			batch = batch[:0]
		}
	}

	return id, nil
}

// LoadLatest carga el snapshot persistido más reciente, o (nil, nil) si no
// hay ninguno. Una versión de formato incompatible es error, no lectura
// silenciosa.
func (r *SnapshotRepository) LoadLatest(ctx context.Context, policy engine.Policy) (*engine.Snapshot, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "builtAt", Value: -1}})

	var meta models.SnapshotMeta
	err := r.metas.FindOne(ctx, bson.M{}, opts).Decode(&meta)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if meta.FormatVersion != SnapshotFormatVersion {
		return nil, fmt.Errorf("snapshot incompatible: formatVersion=%d, se esperaba %d",
			meta.FormatVersion, SnapshotFormatVersion)
	}

	n := len(meta.Movies)
	simRows := make([][]float64, n)

	rowOpts := options.Find().SetSort(bson.D{{Key: "row", Value: 1}})
	cur, err := r.rows.Find(ctx, bson.M{"snapshotId": meta.ID}, rowOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	loaded := 0
	for cur.Next(ctx) {
		var row models.SnapshotRow
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if row.Row < 0 || row.Row >= n || simRows[row.Row] != nil {
			return nil, fmt.Errorf("snapshot corrupto: fila %d fuera de rango o repetida", row.Row)
		}
		simRows[row.Row] = row.Sims
		loaded++
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	if loaded != n {
		return nil, fmt.Errorf("snapshot corrupto: %d filas, se esperaban %d", loaded, n)
	}

	sim, err := engine.NewMatrixFromRows(simRows)
	if err != nil {
		return nil, fmt.Errorf("snapshot corrupto: %w", err)
	}

	movies := make([]engine.Movie, n)
	for i, m := range meta.Movies {
		movies[i] = engine.Movie{
			ID:          m.MovieID,
			Title:       m.Title,
			Overview:    m.Overview,
			Genres:      m.Genres,
			Keywords:    m.Keywords,
			Year:        m.Year,
			VoteAverage: m.VoteAverage,
			VoteCount:   m.VoteCount,
			Popularity:  m.Popularity,
		}
		if movies[i].Genres == nil {
			movies[i].Genres = []string{}
		}
		if movies[i].Keywords == nil {
			movies[i].Keywords = []string{}
		}
	}

	return engine.NewSnapshot(movies, engine.Vocabulary(meta.Vocabulary), sim, meta.BuiltAt, policy), nil
}

// PurgeOlder borra los snapshots superados (todo menos `keep`).
func (r *SnapshotRepository) PurgeOlder(ctx context.Context, keep primitive.ObjectID) error {
	cur, err := r.metas.Find(ctx, bson.M{"_id": bson.M{"$ne": keep}})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var meta models.SnapshotMeta
		if err := cur.Decode(&meta); err != nil {
			return err
		}
		if _, err := r.rows.DeleteMany(ctx, bson.M{"snapshotId": meta.ID}); err != nil {
			return err
		}
		if _, err := r.metas.DeleteOne(ctx, bson.M{"_id": meta.ID}); err != nil {
			return err
		}
	}
	return cur.Err()
}
