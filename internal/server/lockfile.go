package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/logger"
)

var findProcessFunc = ps.FindProcess

// Lockfile records the address and pid of a running server so a second
// `studylit serve` against the same config directory refuses to start.
type Lockfile struct {
	path string
}

// AcquireLockfile writes "addr|pid" into dir. A lockfile left by a process
// that is no longer running is replaced.
func AcquireLockfile(dir, addr string) (*Lockfile, error) {
	path := filepath.Join(dir, constants.ServerLockfileName)

	if holder, pid, err := readLockfile(path); err == nil {
		process, err := findProcessFunc(pid)
		if err == nil && process != nil {
			return nil, fmt.Errorf("server already running on %s (pid %d)", holder, pid)
		}
		logger.Warn("Removing stale server lockfile", "path", path, "pid", pid)
	} else if !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Ignoring unreadable server lockfile", "path", path, "error", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lockfile directory: %w", err)
	}
	content := fmt.Sprintf("%s|%d", addr, os.Getpid())
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lockfile{path: path}, nil
}

func readLockfile(path string) (string, int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return "", 0, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, errors.New("invalid process ID in lockfile")
	}
	return parts[0], pid, nil
}

func (l *Lockfile) Path() string {
	return l.path
}

// Release removes the lockfile.
func (l *Lockfile) Release() error {
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
