package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/gtfsrt-to-json/tests/helpers"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"URL", "OUTPUT", "TIMEOUT_MS", "LOG_LEVEL"} {
		t.Setenv("GTFSRT_JSON_"+k, "")
	}
}

func TestRun_Success(t *testing.T) {
	clearEnv(t)
	body := helpers.Marshal(t, helpers.SampleTripUpdateFeed())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("GTFSRT_JSON_URL", srv.URL+"/nyct%2Fgtfs-jz")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d; stderr:\n%s", code, stderr.String())
	}

	onDisk, err := os.ReadFile(filepath.Join(dir, "gtfs_output.json"))
	if err != nil {
		t.Fatalf("default output file missing: %v", err)
	}
	if !bytes.Equal(onDisk, stdout.Bytes()) {
		t.Error("stdout should carry exactly the JSON written to file")
	}
	if !strings.Contains(stdout.String(), `"tripId": "T1"`) {
		t.Errorf("unexpected stdout:\n%s", stdout.String())
	}
}

func TestRun_ConfigFileAndFeed(t *testing.T) {
	clearEnv(t)
	body := helpers.Marshal(t, helpers.MixedFeed())
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	out := filepath.Join(dir, "jz.json")
	cfgPath := filepath.Join(dir, "custom.yml")
	content := "output: " + out + "\nfeeds:\n  - name: jz\n    url: " + srv.URL + "\n    headers:\n      x-api-key: k1\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--config", cfgPath, "--feed", "jz"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d; stderr:\n%s", code, stderr.String())
	}
	if gotKey != "k1" {
		t.Errorf("feed headers should be sent, got %q", gotKey)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("configured output missing: %v", err)
	}
}

func TestRun_TransportFailure(t *testing.T) {
	clearEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("GTFSRT_JSON_URL", srv.URL)

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Error fetching GTFS data") {
		t.Errorf("expected transport message, got:\n%s", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty on failure, got %q", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "gtfs_output.json")); !os.IsNotExist(err) {
		t.Error("no output file should be written")
	}
}

func TestRun_DecodeFailure(t *testing.T) {
	clearEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not a protobuf"))
	}))
	defer srv.Close()

	chdir(t, t.TempDir())
	t.Setenv("GTFSRT_JSON_URL", srv.URL)

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
	if !strings.Contains(stderr.String(), "An error occurred while processing the feed") {
		t.Errorf("expected processing message, got:\n%s", stderr.String())
	}
}

func TestRun_BadConfigAndArgs(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	tests := []struct {
		name string
		args []string
		env  string
	}{
		{name: "positional arg", args: []string{"extra"}},
		{name: "unknown flag", args: []string{"--nope"}},
		{name: "missing config", args: []string{"--config", "missing.yml"}},
		{name: "unknown feed", args: []string{"--feed", "ace"}},
		{name: "invalid env url", env: "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GTFSRT_JSON_URL", tt.env)
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), tt.args, &stdout, &stderr); code != 1 {
				t.Errorf("expected exit 1, got %d", code)
			}
			if stderr.Len() == 0 {
				t.Error("expected an explanatory message on stderr")
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"--version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "gtfsrt-to-json dev") {
		t.Errorf("unexpected version output %q", stdout.String())
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory %s: %v", prev, err)
		}
	})
}
