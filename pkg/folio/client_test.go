package folio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/webfolio/apiserver/types"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	session, err := NewSession(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return session
}

func TestClientLoginStoresToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode login body: %v", err)
		}
		if body.Username != "admin" {
			t.Errorf("username = %q, want admin", body.Username)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-abc"})
	}))
	defer server.Close()

	session := newTestSession(t)
	client := NewClient(server.URL, session)

	if err := client.Login(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.Token() != "tok-abc" {
		t.Fatalf("session token = %q, want tok-abc", session.Token())
	}
}

func TestClientAttachesTokenHeader(t *testing.T) {
	t.Parallel()

	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(TokenHeader)
		json.NewEncoder(w).Encode([]types.DashboardEntry{{Section: "about", Label: "Name", Value: "Jane"}})
	}))
	defer server.Close()

	session := newTestSession(t)
	if err := session.SetToken("tok-abc"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	client := NewClient(server.URL, session)

	entries, err := client.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if gotToken != "tok-abc" {
		t.Fatalf("request token header = %q, want tok-abc", gotToken)
	}
	if len(entries) != 1 || entries[0].Section != "about" {
		t.Fatalf("unexpected dashboard entries: %+v", entries)
	}
}

func TestClientUnauthorizedForcesLogout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"msg": "Token is not valid"})
	}))
	defer server.Close()

	session := newTestSession(t)
	if err := session.SetToken("tok-stale"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	client := NewClient(server.URL, session)

	_, err := client.Dashboard(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Msg != "Token is not valid" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
	if session.Authenticated() {
		t.Fatal("session should be cleared after a 401")
	}
}

func TestClientAPIErrorDecoding(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"msg": "Invalid Credentials"})
	}))
	defer server.Close()

	session := newTestSession(t)
	client := NewClient(server.URL, session)

	err := client.Login(context.Background(), "admin", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Msg != "Invalid Credentials" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
	// A 400 is not a token rejection and must not touch the session.
	if session.Token() != "" {
		t.Fatalf("session token = %q, want empty", session.Token())
	}
}

func TestClientDeleteProject(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/projects/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"msg": "Project deleted successfully", "id": 7})
	}))
	defer server.Close()

	session := newTestSession(t)
	if err := session.SetToken("tok-abc"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	client := NewClient(server.URL, session)

	if err := client.DeleteProject(context.Background(), 7); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
}
