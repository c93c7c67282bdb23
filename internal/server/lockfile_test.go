package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/studylit/internal/constants"
)

type mockProcess struct {
	pid int
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return "studylit" }

func stubFindProcess(t *testing.T, fn func(int) (ps.Process, error)) {
	t.Helper()
	orig := findProcessFunc
	findProcessFunc = fn
	t.Cleanup(func() { findProcessFunc = orig })
}

func TestAcquireLockfile(t *testing.T) {
	dir := t.TempDir()

	lock, err := AcquireLockfile(dir, "127.0.0.1:8080")
	require.NoError(t, err)

	content, err := os.ReadFile(lock.Path())
	require.NoError(t, err)
	addr, pid, err := readLockfile(lock.Path())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", addr)
	assert.Equal(t, os.Getpid(), pid, string(content))

	require.NoError(t, lock.Release())
	_, err = os.Stat(lock.Path())
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, lock.Release())
}

func TestAcquireLockfileRunningServer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, constants.ServerLockfileName)
	require.NoError(t, os.WriteFile(path, []byte("127.0.0.1:9000|4242"), 0o600))

	stubFindProcess(t, func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid}, nil
	})
	_, err := AcquireLockfile(dir, "127.0.0.1:8080")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:9000")
}

func TestAcquireLockfileStale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, constants.ServerLockfileName)
	require.NoError(t, os.WriteFile(path, []byte("127.0.0.1:9000|4242"), 0o600))

	stubFindProcess(t, func(int) (ps.Process, error) {
		return nil, nil
	})
	lock, err := AcquireLockfile(dir, "127.0.0.1:8080")
	require.NoError(t, err)
	defer lock.Release()

	addr, _, err := readLockfile(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", addr)
}

func TestReadLockfileMalformed(t *testing.T) {
	dir := t.TempDir()
	for _, content := range []string{"", "only-one-part", "addr|notapid", "a|1|extra"} {
		path := filepath.Join(dir, "lock")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		_, _, err := readLockfile(path)
		assert.Error(t, err, "content %q", content)
	}
}
