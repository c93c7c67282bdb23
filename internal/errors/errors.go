package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/studylit/internal/keyring"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/storage/postgres"
	"github.com/julianstephens/studylit/internal/todo"
)

// hints are appended to the message of any error wrapping the sentinel.
var hints = []struct {
	target error
	hint   string
}{
	{todo.ErrStaleEntry, "run `studylit rollover` and try again"},
	{storage.ErrNotFound, "check the id with a `list` command or `today --show-ids`"},
	{keyring.ErrNotFound, "store one with `studylit keyring set`"},
	{postgres.ErrEmbeddedCredentials, "keep the password in the keyring, STUDYLIT_DB_CONNECTION or ~/.pgpass"},
}

// Hint returns the follow-up advice for err, or "" when there is none.
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format renders err for the terminal, adding a hint line for known failures.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

func Formatf(format string, args ...any) string {
	return Format(fmt.Errorf(format, args...))
}

// Fatal logs err and exits with status 1.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}

func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
