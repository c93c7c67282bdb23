package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
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
	TEST_LOCKFILE_TIMEOUT = 30 * time.Second
	TEST_JWT_SECRET       = "e2e-secret"
)

func TestEndToEndWorkflow(t *testing.T) {
	// 1. Setup Environment
	// Allow overriding bin dir via env var, default to ../../bin (relative to tests/e2e)
	binDir := os.Getenv("STUDYLIT_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join("..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	t.Logf("Using bin dir: %s", binDir)

	cliPath := filepath.Join(binDir, "studylit")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Fatalf("CLI binary not found at %s. Please build it first.", cliPath)
	}

	// Create temp home for isolation
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "studylit")
	t.Logf("Running test in temp dir: %s", tempDir)

	port := freePort(t)
	var cleanEnv []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "STUDYLIT_") {
			cleanEnv = append(cleanEnv, e)
		}
	}
	cleanEnv = append(cleanEnv,
		fmt.Sprintf("HOME=%s", tempDir),
		"STUDYLIT_ENV=local",
		fmt.Sprintf("STUDYLIT_HTTP_PORT=%d", port),
		fmt.Sprintf("STUDYLIT_JWT_SECRET=%s", TEST_JWT_SECRET),
	)
	globalArgs := []string{
		"--config", filepath.Join(configDir, "config.toml"),
		"--db", filepath.Join(configDir, "studylit.db"),
	}
	run := func(args ...string) string {
		return runCmd(t, cliPath, cleanEnv, append(append([]string{}, globalArgs...), args...)...)
	}

	// 2. Initialize CLI and seed one template per day type
	t.Log("Initializing CLI...")
	run("init")
	run("template", "add", "Read", "--repeat", "weekday")
	run("template", "add", "Hike", "--repeat", "weekend")

	// 3. Today's list holds exactly one of them; complete it
	out := run("today")
	if !strings.Contains(out, "(0/1 done)") {
		t.Fatalf("unexpected today output:\n%s", out)
	}
	out = run("toggle", "1")
	if !strings.Contains(out, "marked done") {
		t.Fatalf("unexpected toggle output:\n%s", out)
	}

	out = run("history", "export", "--format", "json")
	var records []struct {
		IsDone bool `json:"is_done"`
	}
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("history export is not JSON: %v\n%s", err, out)
	}
	if len(records) != 1 || !records[0].IsDone {
		t.Fatalf("unexpected history: %s", out)
	}

	// 4. Start the API server (Background)
	token := strings.TrimSpace(run("serve", "--issue-token"))

	serveCmd := exec.Command(cliPath, append(append([]string{}, globalArgs...), "serve")...)
	serveCmd.Env = cleanEnv
	var serveOut bytes.Buffer
	serveCmd.Stdout = &serveOut
	serveCmd.Stderr = &serveOut
	if err := serveCmd.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	t.Log("Server started")
	defer func() {
		if serveCmd.ProcessState == nil {
			_ = serveCmd.Process.Kill()
			_ = serveCmd.Wait()
		}
		if t.Failed() {
			t.Logf("Server output: %s", serveOut.String())
		}
	}()

	lockfilePath := filepath.Join(configDir, "studylit-server.lock")
	t.Logf("Waiting for lockfile at %s", lockfilePath)
	waitForFile(t, lockfilePath, TEST_LOCKFILE_TIMEOUT)

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	waitForHTTP(t, base+"/healthz", TEST_LOCKFILE_TIMEOUT)

	// 5. The API sees the CLI's data for the same user
	req, _ := http.NewRequest(http.MethodGet, base+"/api/v1/todos/today", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /todos/today failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /todos/today status = %d", resp.StatusCode)
	}
	var today struct {
		Todos []struct {
			IsDone bool `json:"is_done"`
		} `json:"todos"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&today); err != nil {
		t.Fatal(err)
	}
	if len(today.Todos) != 1 || !today.Todos[0].IsDone {
		t.Fatalf("unexpected API today list: %+v", today)
	}

	// 6. A second server against the same config dir refuses to start
	second := exec.Command(cliPath, append(append([]string{}, globalArgs...), "serve")...)
	second.Env = cleanEnv
	if out, err := second.CombinedOutput(); err == nil || !strings.Contains(string(out), "already running") {
		t.Fatalf("second server should refuse to start: %v\n%s", err, out)
	}

	// 7. Graceful shutdown removes the lockfile
	if err := serveCmd.Process.Signal(os.Interrupt); err != nil {
		t.Fatalf("Failed to signal server: %v", err)
	}
	if err := serveCmd.Wait(); err != nil {
		t.Fatalf("Server exited with error: %v", err)
	}
	if _, err := os.Stat(lockfilePath); !os.IsNotExist(err) {
		t.Errorf("lockfile still present after shutdown")
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	cmd := exec.Command(path, args...)
	cmd.Env = env
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s%s", path, args, err, stdout.String(), stderr.String())
	}
	return stdout.String()
}

func freePort(t *testing.T) int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find a free port: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func waitForFile(t *testing.T, path string, timeout time.Duration) {
	start := time.Now()
	for {
		if _, err := os.Stat(path); err == nil {
			return
		}
		if time.Since(start) > timeout {
			t.Fatalf("Timed out waiting for file: %s", path)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func waitForHTTP(t *testing.T, url string, timeout time.Duration) {
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
			t.Fatalf("Timed out waiting for %s", url)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
