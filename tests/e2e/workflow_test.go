package e2e

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	TEST_SERVER_TIMEOUT = 15 * time.Second
)

type harness struct {
	cliPath string
	env     []string
	dir     string
}

func newHarness(t *testing.T) *harness {
	// Allow overriding bin dir via env var, default to ../../bin (relative to tests/e2e)
	binDir := os.Getenv("DAYPILOT_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join("..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	t.Logf("Using bin dir: %s", binDir)

	cliPath := filepath.Join(binDir, "daypilot")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it first with: go build -o bin/daypilot ./cmd/daypilot", cliPath)
	}

	// Create temp home for isolation
	tempDir := t.TempDir()
	t.Logf("Running test in temp dir: %s", tempDir)

	var cleanEnv []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "DAYPILOT_") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") {
			continue
		}
		cleanEnv = append(cleanEnv, e)
	}
	cleanEnv = append(cleanEnv,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", tempDir),
		fmt.Sprintf("DAYPILOT_CONFIG=%s", filepath.Join(tempDir, "daypilot", "config.yaml")),
		fmt.Sprintf("DAYPILOT_DB=%s", filepath.Join(tempDir, "daypilot", "daypilot.db")),
	)

	return &harness{cliPath: cliPath, env: cleanEnv, dir: tempDir}
}

func (h *harness) withDB(path string) *harness {
	env := make([]string, 0, len(h.env))
	for _, e := range h.env {
		if !strings.HasPrefix(e, "DAYPILOT_DB=") {
			env = append(env, e)
		}
	}
	env = append(env, "DAYPILOT_DB="+path)
	return &harness{cliPath: h.cliPath, env: env, dir: h.dir}
}

func TestEndToEndWorkflow(t *testing.T) {
	h := newHarness(t)

	// 1. Initialize storage
	t.Log("Initializing CLI...")
	runCmd(t, h, "init")

	// 2. Configure display
	runCmd(t, h, "settings", "--time-format", "24h", "--date-format", "yyyy-MM-dd")
	out := runCmd(t, h, "settings", "--list")
	expectContains(t, out, "24h")

	// 3. Add events
	runCmd(t, h, "add", "Standup", "-d", "2024-03-05", "-t", "09:00", "-c", "work")
	runCmd(t, h, "add", "Dentist", "-d", "2024-03-05", "-t", "09:15", "-c", "health", "-m", "checkup")
	runCmd(t, h, "add", "Lunch", "-d", "2024-03-06", "-t", "12:00")

	out = runCmd(t, h, "list")
	expectContains(t, out, "Standup", "Dentist", "Lunch", "2024-03-05")

	out = runCmd(t, h, "day", "2024-03-05")
	expectContains(t, out, "Standup", "Dentist")
	if strings.Contains(out, "Lunch") {
		t.Errorf("day view should only list the 5th:\n%s", out)
	}

	out = runCmd(t, h, "month", "2024-03")
	expectContains(t, out, "March 2024")

	// 4. Conflicts
	out = runCmd(t, h, "validate")
	expectContains(t, out, "Events overlap")

	// 5. Export and re-import into a fresh database
	icsPath := filepath.Join(h.dir, "events.ics")
	runCmd(t, h, "export", "-f", "ics", "-o", icsPath)
	data, err := os.ReadFile(icsPath)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	expectContains(t, string(data), "BEGIN:VEVENT", "SUMMARY:Standup")

	other := h.withDB(filepath.Join(h.dir, "daypilot", "other.db"))
	runCmd(t, other, "init")
	runCmd(t, other, "import", icsPath)
	out = runCmd(t, other, "list")
	expectContains(t, out, "Standup", "Dentist", "Lunch")

	// 6. Backups
	out = runCmd(t, h, "backup", "create")
	expectContains(t, out, "Backup created")
	out = runCmd(t, h, "backup", "list")
	expectContains(t, out, "daypilot-")

	// 7. Health checks
	runCmd(t, h, "doctor")
}

func TestServeWorkflow(t *testing.T) {
	h := newHarness(t)
	runCmd(t, h, "init")
	runCmd(t, h, "add", "Standup", "-d", "2024-03-05", "-t", "09:00")

	addr := freeAddr(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveCmd := exec.CommandContext(ctx, h.cliPath, "serve", "--listen", addr)
	serveCmd.Env = h.env
	var logs strings.Builder
	serveCmd.Stdout = &logs
	serveCmd.Stderr = &logs
	if err := serveCmd.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	defer func() {
		cancel()
		_ = serveCmd.Wait()
		if t.Failed() {
			t.Logf("Server output: %s", logs.String())
		}
	}()

	base := "http://" + addr
	waitForHTTP(t, base+"/health", TEST_SERVER_TIMEOUT)

	body := get(t, base+"/api/events")
	expectContains(t, body, "Standup", "2024-03-05")

	resp, err := http.Post(base+"/api/events", "application/json",
		strings.NewReader(`{"title":"Review","date":"2024-03-07","time":"15:00","category":"work"}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	body = get(t, base+"/api/events")
	expectContains(t, body, "Review")

	resp, err = http.Get(base + "/api/events/does-not-exist")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown id, got %d", resp.StatusCode)
	}
}

func runCmd(t *testing.T, h *harness, args ...string) string {
	t.Helper()
	cmd := exec.Command(h.cliPath, args...)
	cmd.Env = h.env
	cmd.Stdin = strings.NewReader("y\n")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", h.cliPath, args, err, out)
	}
	return string(out)
}

func expectContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("Expected output to contain %q:\n%s", w, out)
		}
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find a free port: %v", err)
	}
	addr := l.Addr().String()
	l.Close()
	return addr
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s returned %d: %s", url, resp.StatusCode, body)
	}
	return string(body)
}

func waitForHTTP(t *testing.T, url string, timeout time.Duration) {
	t.Helper()
	start := time.Now()
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		if time.Since(start) > timeout {
			t.Fatalf("Timed out waiting for server at %s", url)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
