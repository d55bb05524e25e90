// Package client is a Go client for the staffdesk HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Employee as returned by the API
type Employee struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	Salary    float64   `json:"salary"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmployeeRequest is the payload for create and update
type EmployeeRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Position string  `json:"position"`
	Salary   float64 `json:"salary"`
	Status   string  `json:"status"`
}

// Client talks to one API base URL, e.g. http://localhost:8000/api
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a new session
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, nil, http.MethodPost, "/login", body, &out); err != nil {
		return nil, err
	}
	return &Session{token: out.Token, user: out.User}, nil
}

// Restore checks a stored token against the API and returns a live session
func (c *Client) Restore(ctx context.Context, token string) (*Session, error) {
	s := NewSession(token)
	if _, err := c.CurrentUser(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Logout revokes the session's token on the server. The session is cleared
// whatever the outcome; the returned error is informational.
func (c *Client) Logout(ctx context.Context, s *Session) error {
	defer s.Clear()

	if !s.Authenticated() {
		return nil
	}
	return c.do(ctx, s, http.MethodPost, "/logout", nil, nil)
}

// CurrentUser returns the owner of the session's token
func (c *Client) CurrentUser(ctx context.Context, s *Session) (*User, error) {
	var user User
	if err := c.authed(ctx, s, http.MethodGet, "/user", nil, &user); err != nil {
		return nil, err
	}
	s.user = &user
	return &user, nil
}

// ListEmployees returns every employee
func (c *Client) ListEmployees(ctx context.Context, s *Session) ([]Employee, error) {
	var out struct {
		Data []Employee `json:"data"`
	}
	if err := c.authed(ctx, s, http.MethodGet, "/employees", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetEmployee returns one employee
func (c *Client) GetEmployee(ctx context.Context, s *Session, id uint) (*Employee, error) {
	var out struct {
		Data Employee `json:"data"`
	}
	if err := c.authed(ctx, s, http.MethodGet, employeePath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateEmployee stores a new employee
func (c *Client) CreateEmployee(ctx context.Context, s *Session, req EmployeeRequest) (*Employee, error) {
	var out struct {
		Data Employee `json:"data"`
	}
	if err := c.authed(ctx, s, http.MethodPost, "/employees", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateEmployee replaces every editable field of an employee
func (c *Client) UpdateEmployee(ctx context.Context, s *Session, id uint, req EmployeeRequest) (*Employee, error) {
	var out struct {
		Data Employee `json:"data"`
	}
	if err := c.authed(ctx, s, http.MethodPut, employeePath(id), req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteEmployee removes an employee
func (c *Client) DeleteEmployee(ctx context.Context, s *Session, id uint) error {
	return c.authed(ctx, s, http.MethodDelete, employeePath(id), nil, nil)
}

func employeePath(id uint) string {
	return "/employees/" + strconv.FormatUint(uint64(id), 10)
}

// authed runs a protected call and clears the session on 401
func (c *Client) authed(ctx context.Context, s *Session, method, path string, in, out any) error {
	if !s.Authenticated() {
		return ErrNoSession
	}

	err := c.do(ctx, s, method, path, in, out)
	if IsUnauthorized(err) {
		s.Clear()
	}
	return err
}

func (c *Client) do(ctx context.Context, s *Session, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+s.Token())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		// Body may be empty or not JSON; the status alone is enough then
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
