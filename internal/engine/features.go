package engine

// Compose arma el "documento de features" de una película: los tokens del
// overview más los de géneros y keywords, estos últimos repetidos según
// los multiplicadores de la política para sesgar la similitud hacia la
// señal taxonómica por sobre el texto libre. Pura y determinista.
func Compose(m *Movie, p Policy) []string {
	doc := Tokenize(m.Overview)

	doc = appendWeighted(doc, m.Genres, p.GenreWeight)
	doc = appendWeighted(doc, m.Keywords, p.KeywordWeight)

	return doc
}

func appendWeighted(doc []string, names []string, weight int) []string {
	if weight < 1 {
		weight = 1
	}
	for _, name := range names {
		toks := Tokenize(name)
		for i := 0; i < weight; i++ {
			doc = append(doc, toks...)
		}
	}
	return doc
}
