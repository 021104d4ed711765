package models

type UserDoc struct {
	UserID       int    `json:"userId" bson:"userId"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	Role         string `json:"role" bson:"role"` // user | admin
	Username     string `json:"username,omitempty" bson:"username,omitempty"`

	// Géneros favoritos del perfil: se usan como default de
	// Preferences.FavoriteGenres cuando el body no trae ninguno.
	PreferredGenres []string `json:"preferredGenres,omitempty" bson:"preferredGenres,omitempty"`

	CreatedAt string `json:"createdAt" bson:"createdAt"`
	UpdatedAt string `json:"updatedAt" bson:"updatedAt"`
}
