package avatar

import "strings"

// Normalizer rewrites relative avatar paths to absolute URLs against a
// configured base. Absolute URLs and empty values pass through untouched.
type Normalizer struct {
	base string
}

func NewNormalizer(base string) *Normalizer {
	return &Normalizer{base: strings.TrimRight(base, "/")}
}

func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if n.base == "" {
		return raw
	}
	return n.base + "/" + strings.TrimLeft(raw, "/")
}
