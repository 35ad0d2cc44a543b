package folio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/webfolio/apiserver/types"
)

// TokenHeader is the request header carrying the auth token.
const TokenHeader = "x-auth-token"

// APIError is a non-2xx response from the server.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Msg)
}

// Client calls the webfolio REST API. When the session holds a token
// it is attached to every request; any 401/403 response clears the
// session before the error is returned, forcing a logout.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// NewClient constructs a Client for the API at baseURL.
func NewClient(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
}

// Login exchanges credentials for a token and stores it in the session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return err
	}
	return c.session.SetToken(resp.Token)
}

// Logout discards the stored token.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// Dashboard fetches the gated aggregate dashboard rows.
func (c *Client) Dashboard(ctx context.Context) ([]types.DashboardEntry, error) {
	var entries []types.DashboardEntry
	err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &entries)
	return entries, err
}

// About fetches the about-me record.
func (c *Client) About(ctx context.Context) (types.About, error) {
	var about types.About
	err := c.do(ctx, http.MethodGet, "/api/about", nil, &about)
	return about, err
}

// Education fetches all education entries.
func (c *Client) Education(ctx context.Context) ([]types.Education, error) {
	var entries []types.Education
	err := c.do(ctx, http.MethodGet, "/api/education", nil, &entries)
	return entries, err
}

// CreateEducation adds an education entry (requires login).
func (c *Client) CreateEducation(ctx context.Context, entry types.Education) (types.Education, error) {
	var created types.Education
	err := c.do(ctx, http.MethodPost, "/api/education", entry, &created)
	return created, err
}

// SkillItem is a skill as returned inside a category group.
type SkillItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Skills fetches all skills grouped by category name.
func (c *Client) Skills(ctx context.Context) (map[string][]SkillItem, error) {
	var grouped map[string][]SkillItem
	err := c.do(ctx, http.MethodGet, "/api/skills", nil, &grouped)
	return grouped, err
}

// Experience fetches all work history entries.
func (c *Client) Experience(ctx context.Context) ([]types.Experience, error) {
	var entries []types.Experience
	err := c.do(ctx, http.MethodGet, "/api/experience", nil, &entries)
	return entries, err
}

// Projects fetches all portfolio projects.
func (c *Client) Projects(ctx context.Context) ([]types.Project, error) {
	var projects []types.Project
	err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects)
	return projects, err
}

// CreateProject adds a project (requires login).
func (c *Client) CreateProject(ctx context.Context, project types.Project) (types.Project, error) {
	var created types.Project
	err := c.do(ctx, http.MethodPost, "/api/projects", project, &created)
	return created, err
}

// DeleteProject removes a project by id (requires login).
func (c *Client) DeleteProject(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil, nil)
}

// ContactInfo fetches all contact channels.
func (c *Client) ContactInfo(ctx context.Context) ([]types.ContactInfo, error) {
	var entries []types.ContactInfo
	err := c.do(ctx, http.MethodGet, "/api/contact", nil, &entries)
	return entries, err
}

// SubmitContactMessage sends a visitor message.
func (c *Client) SubmitContactMessage(ctx context.Context, msg types.ContactMessage) (types.ContactMessage, error) {
	var created types.ContactMessage
	err := c.do(ctx, http.MethodPost, "/api/contact/messages", msg, &created)
	return created, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set(TokenHeader, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// The server no longer trusts the token; treat it as a forced
		// logout regardless of which endpoint rejected it.
		_ = c.session.Clear()
	}

	if resp.StatusCode >= 400 {
		var payload struct {
			Msg string `json:"msg"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Msg: payload.Msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
