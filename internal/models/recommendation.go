package models

// RecItem es una fila de resultado de cualquiera de las estrategias.
// El significado de Score depende de la estrategia:
//   - content:    similitud coseno en [0,1]
//   - popular:    weighted rating en la escala del catálogo (0-10)
//   - hybrid:     mezcla normalizada en [0,1]
//   - preference: suma de similitudes (comparable, sin cota superior)
type RecItem struct {
	MovieID int     `json:"movieId" bson:"movieId"`
	Title   string  `json:"title" bson:"title"`
	Score   float64 `json:"score" bson:"score"`
}

// Preferences son las preferencias explícitas de un usuario para la
// estrategia preference-based. Se arman por request; el engine no guarda
// estado por usuario.
type Preferences struct {
	Favorites      []int    `json:"favorites"`
	FavoriteGenres []string `json:"favoriteGenres"`
}
