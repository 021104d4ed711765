package models

// MovieDoc es el documento crudo de la colección `movies`, tal como llega
// del colaborador de carga (CSV aplanado importado a Mongo, o el body del
// endpoint admin). El ID queda como `any` porque los datasets aplanados a
// veces traen el id como string o como float; el normalizador del engine
// decide si es usable o se descarta.
type MovieDoc struct {
	ID          any      `json:"id" bson:"movieId"`
	Title       string   `json:"title" bson:"title"`
	Overview    string   `json:"overview" bson:"overview"`
	Genres      NameList `json:"genres" bson:"genres"`
	Keywords    NameList `json:"keywords" bson:"keywords"`
	ReleaseDate string   `json:"release_date" bson:"releaseDate"`
	VoteAverage float64  `json:"vote_average" bson:"voteAverage"`
	VoteCount   float64  `json:"vote_count" bson:"voteCount"`
	Popularity  float64  `json:"popularity" bson:"popularity"`
}

// MovieCreateRequest es el body de POST /admin/movies.
type MovieCreateRequest struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	Genres      NameList `json:"genres"`
	Keywords    NameList `json:"keywords"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage float64  `json:"vote_average"`
	VoteCount   float64  `json:"vote_count"`
	Popularity  float64  `json:"popularity"`
}

// MovieUpdateRequest: campos opcionales para PUT /admin/movies/{id}.
type MovieUpdateRequest struct {
	Title       *string   `json:"title"`
	Overview    *string   `json:"overview"`
	Genres      *NameList `json:"genres"`
	Keywords    *NameList `json:"keywords"`
	ReleaseDate *string   `json:"release_date"`
	VoteAverage *float64  `json:"vote_average"`
	VoteCount   *float64  `json:"vote_count"`
	Popularity  *float64  `json:"popularity"`
}
