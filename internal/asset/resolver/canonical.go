package resolver

import (
	"errors"
	"strings"
)

var (
	errEmptyIdentifier     = errors.New("empty identifier")
	errMalformedIdentifier = errors.New("identifier must have the form <id> or <id>[<n>]")
)

// CanonicalAssetID strips a trailing output-index suffix, so "<id>[<n>]" becomes "<id>".
func CanonicalAssetID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	open := strings.IndexByte(id, '[')
	if open < 0 {
		if strings.IndexByte(id, ']') >= 0 {
			return "", errMalformedIdentifier
		}
		if id == "" {
			return "", errEmptyIdentifier
		}
		return id, nil
	}

	suffix := id[open:]
	if len(suffix) < 3 || suffix[len(suffix)-1] != ']' {
		return "", errMalformedIdentifier
	}
	for _, r := range suffix[1 : len(suffix)-1] {
		if r < '0' || r > '9' {
			return "", errMalformedIdentifier
		}
	}

	id = strings.TrimSpace(id[:open])
	if id == "" {
		return "", errEmptyIdentifier
	}
	if strings.ContainsAny(id, "[]") {
		return "", errMalformedIdentifier
	}
	return id, nil
}
