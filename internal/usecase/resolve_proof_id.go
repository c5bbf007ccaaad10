package usecase

import (
	"net/url"
	"strings"

	"realz/internal/domain"
)

// Location is the part of a page URL the resolver looks at. Path is the raw,
// still percent-encoded path.
type Location struct {
	Path     string
	RawQuery string
}

func LocationFromURL(u *url.URL) Location {
	if u == nil {
		return Location{}
	}
	return Location{Path: u.EscapedPath(), RawQuery: u.RawQuery}
}

// ParseLocation accepts either a full URL or a bare path with an optional
// query, as typed on a command line.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, err
	}
	return LocationFromURL(u), nil
}

// ResolveProofID extracts the proof identifier from /v/{id}. A non-empty p
// query parameter carries the original path after a not-found redirect and
// takes precedence over the request path.
func ResolveProofID(loc Location) (domain.ProofID, error) {
	id, ok := proofIDFromPath(requestedPath(loc))
	if !ok {
		return "", domain.ErrMalformedLink
	}
	return id, nil
}

func requestedPath(loc Location) string {
	// ParseQuery keeps the values it could decode even when it reports an error.
	values, _ := url.ParseQuery(loc.RawQuery)
	p := values.Get("p")
	if p == "" {
		return loc.Path
	}
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	if u, err := url.Parse(p); err == nil {
		return u.EscapedPath()
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return p
}

func proofIDFromPath(path string) (domain.ProofID, bool) {
	parts := make([]string, 0, 2)
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		parts = append(parts, part)
		if len(parts) > 2 {
			return "", false
		}
	}
	if len(parts) != 2 || parts[0] != "v" {
		return "", false
	}
	return domain.ProofID(parts[1]), true
}
