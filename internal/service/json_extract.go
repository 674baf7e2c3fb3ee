package service

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSONObject = errors.New("no json object in model output")

// maxJSONCandidates acota cuantas '{' se prueban como inicio de objeto.
const maxJSONCandidates = 32

// ExtractJSONObject devuelve el objeto JSON embebido en texto libre del modelo.
// Recorre cada '{' buscando un objeto balanceado valido y, si no hay, prueba el
// corte entre la primera '{' y la ultima '}'.
func ExtractJSONObject(raw string) (string, error) {
	cleaned := cleanLLMJSONResponse(raw)
	if cleaned == "" {
		return "", ErrNoJSONObject
	}

	for offset, tried := 0, 0; offset < len(cleaned) && tried < maxJSONCandidates; tried++ {
		idx := strings.IndexByte(cleaned[offset:], '{')
		if idx == -1 {
			break
		}
		start := offset + idx
		if obj := extractFirstJSONObject(cleaned[start:]); obj != "" && json.Valid([]byte(obj)) {
			return obj, nil
		}
		offset = start + 1
	}
	if obj := sliceOuterBraces(cleaned); obj != "" && json.Valid([]byte(obj)) {
		return obj, nil
	}
	return "", ErrNoJSONObject
}

func sliceOuterBraces(input string) string {
	start := strings.IndexByte(input, '{')
	end := strings.LastIndexByte(input, '}')
	if start == -1 || end <= start {
		return ""
	}
	return input[start : end+1]
}

func extractFirstJSONObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return ""
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}
