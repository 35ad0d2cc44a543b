// Package folio is the client SDK for the webfolio API. It holds the
// login session, mirrors the server's route protection rules for
// navigation, and wraps the REST endpoints.
package folio

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Session holds the current auth token in a durable file and exposes a
// derived logged-in flag. The flag only reflects token presence; it
// says nothing about whether the token is still valid server-side.
type Session struct {
	mu    sync.Mutex
	path  string
	token string
	subs  map[int]func(bool)
	next  int
}

type sessionFile struct {
	Token string `json:"token"`
}

// NewSession loads any previously stored token from path. A missing
// file is not an error; it means logged out.
func NewSession(path string) (*Session, error) {
	if path == "" {
		return nil, errors.New("session path is required")
	}

	s := &Session{
		path: path,
		subs: make(map[int]func(bool)),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	var stored sessionFile
	if err := json.Unmarshal(data, &stored); err != nil {
		// A corrupt session file means logged out, not failure.
		return s, nil
	}
	s.token = stored.Token
	return s, nil
}

// SetToken stores a freshly issued token and notifies subscribers.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()

	data, err := json.Marshal(sessionFile{Token: token})
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.mu.Unlock()
		return err
	}

	s.token = token
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, token != "")
	return nil
}

// Token returns the stored token, empty when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Clear drops the stored token and notifies subscribers. Called on
// logout and whenever the server rejects the token.
func (s *Session) Clear() error {
	s.mu.Lock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.mu.Unlock()
		return err
	}
	s.token = ""
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, false)
	return nil
}

// Authenticated reports whether a token is currently held.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Subscribe registers fn to run on every token change with the new
// logged-in state. Callbacks run outside the session's lock, so they
// may call back into the Session. The returned function unsubscribes.
func (s *Session) Subscribe(fn func(authenticated bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) subscribersLocked() []func(bool) {
	subs := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(bool), authenticated bool) {
	for _, fn := range subs {
		fn(authenticated)
	}
}
