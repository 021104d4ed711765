package engine

// Policy reúne las constantes de ranking que son política afinable, no
// números mágicos: los multiplicadores taxonómicos del composer, el alpha
// por defecto del híbrido, el boost por género de preference-based y el
// piso de votos por defecto de popularity-based.
type Policy struct {
	// GenreWeight / KeywordWeight: cuántas veces se repiten los tokens de
	// género y keyword respecto a los del overview, para sesgar la
	// similitud hacia la señal taxonómica.
	GenreWeight   int
	KeywordWeight int

	// DefaultAlpha: peso contenido vs popularidad del híbrido cuando el
	// request no manda alpha.
	DefaultAlpha float64

	// GenreBoost: multiplicador para candidatos cuyo género intersecta los
	// géneros favoritos del usuario.
	GenreBoost float64

	// DefaultMinVotes: piso de votos usado por popularity-based cuando no
	// se pide otro, por el componente de popularidad del híbrido y por el
	// fallback de preference-based con favoritos vacíos.
	DefaultMinVotes int

	// DefaultK: cantidad de resultados cuando el request no manda k.
	DefaultK int
}

// DefaultPolicy son los valores documentados por defecto.
func DefaultPolicy() Policy {
	return Policy{
		GenreWeight:     3,
		KeywordWeight:   3,
		DefaultAlpha:    0.7,
		GenreBoost:      1.2,
		DefaultMinVotes: 50,
		DefaultK:        10,
	}
}
