// Package photoref transforma la URL completa de una foto en el fragmento de ruta
// que espera el gateway de mensajería en sus variables de plantilla.
package photoref

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultMarker es el prefijo de ruta de los objetos públicos del storage.
const DefaultMarker = "/storage/v1/object/public/"

var ErrMalformedURL = errors.New("malformed photo url")

// GatewayPath devuelve lo que sigue a marker en la ruta, más la query string si existe.
//
//	https://x.supabase.co/storage/v1/object/public/pets/a.jpg?token=t -> pets/a.jpg?token=t
func GatewayPath(rawURL, marker string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("%w: empty", ErrMalformedURL)
	}
	if strings.TrimSpace(marker) == "" {
		marker = DefaultMarker
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: expected absolute http(s) url", ErrMalformedURL)
	}

	p := u.EscapedPath()
	idx := strings.Index(p, marker)
	if idx < 0 {
		return "", fmt.Errorf("%w: marker %q not found", ErrMalformedURL, marker)
	}

	suffix := strings.TrimLeft(p[idx+len(marker):], "/")
	if suffix == "" {
		return "", fmt.Errorf("%w: empty object path", ErrMalformedURL)
	}
	if u.RawQuery != "" {
		suffix += "?" + u.RawQuery
	}
	return suffix, nil
}
