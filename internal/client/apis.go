package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// validate instância compartilhada pelas APIs de entidade.
var validate = validator.New()

// decodeAll desserializa todos os registros de uma store para o tipo da entidade.
func decodeAll[T any](records []Record) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var v T
		if err := json.Unmarshal(rec.Data, &v); err != nil {
			return nil, fmt.Errorf("decodificar registro %q: %w", rec.Key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeOne desserializa um registro; devolve nil se rec for nil.
func decodeOne[T any](rec *Record) (*T, error) {
	if rec == nil {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(rec.Data, &v); err != nil {
		return nil, fmt.Errorf("decodificar registro %q: %w", rec.Key, err)
	}
	return &v, nil
}

// normalizeSearch remove acentos e baixa a caixa para busca tolerante
// ("João" casa com "joao").
func normalizeSearch(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // marca de combinação (acento)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// matches informa se algum dos campos contém o termo normalizado.
func matches(term string, fields ...string) bool {
	q := normalizeSearch(strings.TrimSpace(term))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(normalizeSearch(f), q) {
			return true
		}
	}
	return false
}
