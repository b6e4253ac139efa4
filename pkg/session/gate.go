// Package session records whether the local user has logged in.
//
// Two records are kept. The persistent one lives in the XDG state directory
// and survives reboots ("remember me"). The ephemeral one lives in the
// runtime directory and lasts for the login session. The user counts as
// authenticated when either record says so. Credentials are never checked.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/folio/pkg/config"
	"github.com/vanderheijden86/folio/pkg/debug"
)

const recordName = "session.json"

// ErrEmptyUser is returned by Login for a blank user name.
var ErrEmptyUser = errors.New("user name is required")

// Record is the on-disk session record.
type Record struct {
	Authenticated bool      `json:"authenticated"`
	User          string    `json:"user"`
	Since         time.Time `json:"since"`
}

// Gate reads and writes the two session records.
type Gate struct {
	persistent string
	ephemeral  string
	now        func() time.Time
}

// NewGate returns a gate over the given record paths.
func NewGate(persistent, ephemeral string) *Gate {
	return &Gate{persistent: persistent, ephemeral: ephemeral, now: time.Now}
}

// DefaultGate uses <state dir>/session.json and a per-user file in the
// runtime directory.
func DefaultGate() *Gate {
	return NewGate(filepath.Join(config.StateDir(), recordName), filepath.Join(runtimeDir(), recordName))
}

func runtimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "folio")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("folio-%d", os.Getuid()))
}

// SetClock replaces the clock used for Record.Since.
func (g *Gate) SetClock(now func() time.Time) { g.now = now }

// Paths returns the persistent and ephemeral record paths.
func (g *Gate) Paths() (persistent, ephemeral string) {
	return g.persistent, g.ephemeral
}

// Authenticated reports whether either record marks the user as logged in.
func (g *Gate) Authenticated() bool {
	_, ok := g.current()
	return ok
}

// User returns the logged-in user name, or "" when logged out.
func (g *Gate) User() string {
	r, _ := g.current()
	return r.User
}

// current returns the first authenticated record, ephemeral first.
func (g *Gate) current() (Record, bool) {
	for _, path := range []string{g.ephemeral, g.persistent} {
		r, err := readRecord(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				debug.Log("session: ignoring %s: %v", path, err)
			}
			continue
		}
		if r.Authenticated {
			return r, true
		}
	}
	return Record{}, false
}

// Login writes an authenticated record for user: the persistent record
// when remember is set, otherwise the ephemeral one.
func (g *Gate) Login(user string, remember bool) error {
	user = strings.TrimSpace(user)
	if user == "" {
		return ErrEmptyUser
	}
	path := g.ephemeral
	if remember {
		path = g.persistent
	}
	r := Record{Authenticated: true, User: user, Since: g.now().UTC()}
	if err := writeRecord(path, r); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	debug.Log("session: %s logged in (remember=%v)", user, remember)
	return nil
}

// Logout removes both records. Missing records are not an error.
func (g *Gate) Logout() error {
	var errs []error
	for _, path := range []string{g.persistent, g.ephemeral} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	debug.Log("session: logged out")
	return nil
}

func readRecord(path string) (Record, error) {
	var r Record
	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("parsing session record: %w", err)
	}
	return r, nil
}

func writeRecord(path string, r Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing session record: %w", err)
	}
	return nil
}
