package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"realz/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	for _, key := range []string{"VERIFY_ENDPOINT_URL", "SUPABASE_URL", "CONFIG_FILE", "DISPLAY_TIMEZONE", "LOG_LEVEL", "VERIFY_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}
}

func upstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerifyCommandVerified(t *testing.T) {
	isolateEnv(t)
	srv := upstream(t, http.StatusOK, `{"trust":"verified","captured_at_utc":"2024-01-01T00:00:00Z","thumb":{"url":"https://x/y.jpg"}}`)
	var stdout, stderr bytes.Buffer

	code := run([]string{"verify", "--endpoint", srv.URL, "https://realz.example/v/abc123"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "badge=VERIFIED\n")
	assert.Contains(t, out, "subtitle="+usecase.SubtitleVerified+"\n")
	assert.Contains(t, out, "captured_at=Jan 01, 2024, 00:00 UTC\n")
	assert.Contains(t, out, "thumbnail=https://x/y.jpg overlay=VERIFIED\n")
}

func TestVerifyCommandNotVerifiedJSON(t *testing.T) {
	isolateEnv(t)
	srv := upstream(t, http.StatusOK, `{"reason_code":"SIGNATURE_INVALID"}`)
	var stdout, stderr bytes.Buffer

	code := run([]string{"verify", "--json", "--endpoint", srv.URL, "/v/abc123"}, &stdout, &stderr)

	require.Equal(t, exitNotVerified, code)
	var vm usecase.ViewModel
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &vm))
	assert.Equal(t, "NOT VERIFIED", vm.Badge)
	assert.Equal(t, "The proof signature didn't verify.", vm.Subtitle)
}

func TestVerifyCommandInvalidLink(t *testing.T) {
	isolateEnv(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"verify", "--endpoint", "https://unused.example/verify", "/nope"}, &stdout, &stderr)

	require.Equal(t, exitNotVerified, code)
	assert.Contains(t, stdout.String(), "badge=INVALID\n")
	assert.NotContains(t, stdout.String(), "raw:")
}

func TestVerifyCommandRequiresEndpoint(t *testing.T) {
	isolateEnv(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"verify", "/v/abc"}, &stdout, &stderr)

	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "VERIFY_ENDPOINT_URL")
}

func TestVerifyCommandRequiresArgument(t *testing.T) {
	isolateEnv(t)
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitUsage, run([]string{"verify"}, &stdout, &stderr))
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
