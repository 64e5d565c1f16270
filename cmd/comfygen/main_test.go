package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cliTemplate = `{
  "1": {"inputs": {"text": ""}},
  "2": {"inputs": {"width": 1, "height": 1}},
  "3": {"inputs": {"frames": 1}},
  "4": {"inputs": {}}
}`

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"COMFYUI_HOST", "COMFYUI_WORKFLOW_PATH", "COMFYUI_FIELD_MAP_PATH", "COMFYUI_TIMEOUT_SECONDS", "COMFYUI_POLL_INTERVAL_MS"} {
		t.Setenv(key, "")
	}
}

func newCLIServer(t *testing.T, frames *float64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/queue", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Prompt map[string]map[string]map[string]any `json:"prompt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if v, ok := body.Prompt["3"]["inputs"]["frames"].(float64); ok {
			*frames = v
		}
		_, _ = io.WriteString(w, `{"prompt_id":"cli-1","number":1}`)
	})
	mux.HandleFunc("/api/history/cli-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"cli-1":{"outputs":{"4":{"images":[{"filename":"cli.mp4","subfolder":"","type":"output"}]}},"status":{"status_str":"success"}}}`)
	})
	mux.HandleFunc("/api/view", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "video-bytes")
	})
	mux.HandleFunc("/api/system_stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeCLITemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wf.json")
	if err := os.WriteFile(path, []byte(cliTemplate), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func TestGenerateCommandWritesArtifact(t *testing.T) {
	isolateEnv(t)
	var frames float64
	srv := newCLIServer(t, &frames)
	outDir := filepath.Join(t.TempDir(), "out")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"generate", "--host", srv.URL, "--workflow", writeCLITemplate(t),
		"--prompt", "tide pools", "--aspect", "square", "--frames", "12",
		"--out", outDir, "--poll", "100ms", "--timeout", "5s",
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	want := filepath.Join(outDir, "cli.mp4")
	if strings.TrimSpace(stdout.String()) != want {
		t.Fatalf("stdout = %q, want %q", stdout.String(), want)
	}
	data, err := os.ReadFile(want)
	if err != nil || string(data) != "video-bytes" {
		t.Fatalf("artifact = %q, err = %v", data, err)
	}
	if frames != 12 {
		t.Fatalf("queued frames = %v, want 12", frames)
	}
}

func TestGenerateCommandWithoutOutPrintsHandle(t *testing.T) {
	isolateEnv(t)
	var frames float64
	srv := newCLIServer(t, &frames)

	var stdout, stderr bytes.Buffer
	code := run([]string{"generate", "--host", srv.URL, "--workflow", writeCLITemplate(t), "-p", "x"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != "cli-1\tcli.mp4" {
		t.Fatalf("stdout = %q", got)
	}
	if frames != 24 {
		t.Fatalf("queued frames = %v, want default 24", frames)
	}
}

func TestGenerateCommandReportsErrorKind(t *testing.T) {
	isolateEnv(t)
	var frames float64
	srv := newCLIServer(t, &frames)

	var stdout, stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing.json")
	code := run([]string{"generate", "--host", srv.URL, "--workflow", missing, "-p", "x"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "(template_load)") {
		t.Fatalf("stderr should name the error kind: %q", stderr.String())
	}
}

func TestGenerateCommandValidatesInput(t *testing.T) {
	isolateEnv(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"generate"}, &stdout, &stderr); code != 1 {
		t.Fatalf("missing prompt exit code = %d", code)
	}
	stderr.Reset()
	if code := run([]string{"generate", "-p", "x", "--aspect", "4:3"}, &stdout, &stderr); code != 1 {
		t.Fatalf("bad aspect exit code = %d", code)
	}
	if !strings.Contains(stderr.String(), "invalid aspect ratio") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestPingCommand(t *testing.T) {
	isolateEnv(t)
	var frames float64
	srv := newCLIServer(t, &frames)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"ping", "--host", srv.URL}, &stdout, &stderr); code != 0 {
		t.Fatalf("ping exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.HasSuffix(strings.TrimSpace(stdout.String()), "ok") {
		t.Fatalf("stdout = %q", stdout.String())
	}

	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()
	stderr.Reset()
	if code := run([]string{"ping", "--host", downURL}, &stdout, &stderr); code != 1 {
		t.Fatalf("ping down exit code = %d", code)
	}
	if !strings.Contains(stderr.String(), "unreachable") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestAspectsCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"aspects"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	out := stdout.String()
	for _, want := range []string{"16:9", "landscape", "1920x1080", "9:16", "1080x1920", "1:1", "1080x1080"} {
		if !strings.Contains(out, want) {
			t.Fatalf("aspects output missing %q:\n%s", want, out)
		}
	}
}
