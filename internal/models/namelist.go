package models

import (
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// NameList es una lista de nombres (géneros, keywords) que tolera las
// distintas formas en las que llegan en datasets tabulares aplanados:
//
//   - lista nativa de strings:            ["Action", "Adventure"]
//   - lista de objetos con name:          [{"id": 28, "name": "Action"}]
//   - string con la lista codificada:     "[{'id': 28, 'name': 'Action'}]"
//   - string separado por pipes o comas:  "Action|Adventure"
//
// Siempre se normaliza a []string. Una vez decodificada se serializa como
// lista plana de strings.
type NameList []string

func (l *NameList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*l = nil
		return nil
	}

	// lista nativa de strings
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*l = cleanNames(plain)
		return nil
	}

	// lista de objetos {name: ...}
	var objs []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &objs); err == nil {
		out := make([]string, 0, len(objs))
		for _, o := range objs {
			out = append(out, o.Name)
		}
		*l = cleanNames(out)
		return nil
	}

	// string con la lista codificada dentro
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = parseEncodedNames(s)
		return nil
	}

	// cualquier otra cosa (número, objeto suelto) se ignora sin error:
	// la calidad del metadata es responsabilidad del caller
	*l = nil
	return nil
}

func (l *NameList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*l = nil
		return nil

	case bsontype.String:
		var s string
		if err := bson.UnmarshalValue(t, data, &s); err != nil {
			return err
		}
		*l = parseEncodedNames(s)
		return nil

	case bsontype.Array:
		var plain []string
		if err := bson.UnmarshalValue(t, data, &plain); err == nil {
			*l = cleanNames(plain)
			return nil
		}
		var objs []struct {
			Name string `bson:"name"`
		}
		if err := bson.UnmarshalValue(t, data, &objs); err != nil {
			return err
		}
		out := make([]string, 0, len(objs))
		for _, o := range objs {
			out = append(out, o.Name)
		}
		*l = cleanNames(out)
		return nil
	}

	*l = nil
	return nil
}

// parseEncodedNames interpreta un string que trae una lista codificada.
func parseEncodedNames(s string) NameList {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") {
		// los CSV de TMDB traen repr de Python: comillas simples
		js := strings.ReplaceAll(s, "'", `"`)

		var plain []string
		if err := json.Unmarshal([]byte(js), &plain); err == nil {
			return cleanNames(plain)
		}

		var objs []struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal([]byte(js), &objs); err == nil {
			out := make([]string, 0, len(objs))
			for _, o := range objs {
				out = append(out, o.Name)
			}
			return cleanNames(out)
		}

		// último recurso: pelar corchetes/comillas y separar por comas
		s = strings.Trim(s, "[]")
		s = strings.ReplaceAll(s, `"`, "")
		return cleanNames(strings.Split(s, ","))
	}

	if strings.Contains(s, "|") {
		return cleanNames(strings.Split(s, "|"))
	}
	return cleanNames(strings.Split(s, ","))
}

func cleanNames(in []string) NameList {
	out := make(NameList, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
