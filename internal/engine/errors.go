package engine

import "errors"

var (
	// ErrNoValidRecords: el catálogo quedó vacío después de la limpieza.
	// Fatal para ese intento de build; el snapshot anterior se conserva.
	ErrNoValidRecords = errors.New("no quedan registros válidos tras la limpieza")

	// ErrEmptyCorpus: ningún documento produjo tokens (catálogo degenerado).
	ErrEmptyCorpus = errors.New("corpus vacío: ningún documento tiene tokens")

	// ErrMovieNotFound: el movieId consultado no existe en el snapshot.
	// Local al request, nunca afecta el snapshot compartido.
	ErrMovieNotFound = errors.New("película no encontrada en el catálogo")

	// ErrNoSnapshot: todavía no hay ningún snapshot construido.
	ErrNoSnapshot = errors.New("índice no construido todavía")
)
