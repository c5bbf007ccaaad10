package usecase

import (
	"net/url"
	"testing"

	"realz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProofIDAcceptsVPath(t *testing.T) {
	cases := map[string]string{
		"/v/abc123":     "abc123",
		"/v/abc123/":    "abc123",
		"//v//abc123//": "abc123",
		"/v/a%20b":      "a%20b",
		"v/xyz":         "xyz",
	}
	for path, want := range cases {
		id, err := ResolveProofID(Location{Path: path})
		require.NoError(t, err, path)
		assert.Equal(t, domain.ProofID(want), id, path)
	}
}

func TestResolveProofIDRejectsOtherShapes(t *testing.T) {
	for _, path := range []string{"", "/", "/nope", "/v", "/v/", "/x/abc", "/v/abc/extra", "/a/v/abc", "/V/abc"} {
		_, err := ResolveProofID(Location{Path: path})
		assert.ErrorIs(t, err, domain.ErrMalformedLink, path)
	}
}

func TestResolveProofIDPrefersRedirectCarrier(t *testing.T) {
	query := url.Values{"p": {"/v/from-query"}}.Encode()
	id, err := ResolveProofID(Location{Path: "/", RawQuery: query})
	require.NoError(t, err)
	assert.Equal(t, domain.ProofID("from-query"), id)

	id, err = ResolveProofID(Location{Path: "/v/from-path", RawQuery: query})
	require.NoError(t, err)
	assert.Equal(t, domain.ProofID("from-query"), id)
}

func TestResolveProofIDRedirectCarrierDecoding(t *testing.T) {
	// Double-encoded carrier is decoded twice.
	id, err := ResolveProofID(Location{Path: "/", RawQuery: "p=%252Fv%252Fdouble"})
	require.NoError(t, err)
	assert.Equal(t, domain.ProofID("double"), id)

	// Query and fragment inside the carried path are not part of the id.
	id, err = ResolveProofID(Location{Path: "/", RawQuery: "p=" + url.QueryEscape("/v/abc?utm=1#top")})
	require.NoError(t, err)
	assert.Equal(t, domain.ProofID("abc"), id)

	_, err = ResolveProofID(Location{Path: "/", RawQuery: "p=" + url.QueryEscape("/v/abc/def")})
	assert.ErrorIs(t, err, domain.ErrMalformedLink)
}

func TestResolveProofIDEmptyCarrierFallsBackToPath(t *testing.T) {
	id, err := ResolveProofID(Location{Path: "/v/pathid", RawQuery: "p="})
	require.NoError(t, err)
	assert.Equal(t, domain.ProofID("pathid"), id)
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("https://realz.example/?p=%2Fv%2Fabc")
	require.NoError(t, err)
	assert.Equal(t, "/", loc.Path)
	id, err := ResolveProofID(loc)
	require.NoError(t, err)
	assert.Equal(t, domain.ProofID("abc"), id)

	loc, err = ParseLocation(" /v/xyz ")
	require.NoError(t, err)
	assert.Equal(t, "/v/xyz", loc.Path)
}
