package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validToken = "tok_valid"

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	authorized := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == "Bearer "+validToken
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "password" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"token": validToken,
			"user":  map[string]any{"id": 1, "name": "Admin", "email": in["email"]},
		})
	})
	mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "name": "Admin", "email": "admin@company.com"})
	})
	mux.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server Error"})
	})
	mux.HandleFunc("/api/employees", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
			return
		}
		if r.Method == http.MethodPost {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "The email has already been taken.",
				"errors":  map[string][]string{"email": {"The email has already been taken."}},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{
			{"id": 1, "name": "Alice Johnson", "salary": 85000, "status": "active"},
		}})
	})
	mux.HandleFunc("/api/employees/7", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoginAndList(t *testing.T) {
	srv := newTestAPI(t)
	c := New(srv.URL + "/api/")
	ctx := context.Background()

	s, err := c.Login(ctx, "admin@company.com", "password")
	require.NoError(t, err)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "Admin", s.User().Name)

	employees, err := c.ListEmployees(ctx, s)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, 85000.0, employees[0].Salary)
}

func TestClient_LoginRejected(t *testing.T) {
	srv := newTestAPI(t)
	c := New(srv.URL + "/api")

	s, err := c.Login(context.Background(), "admin@company.com", "wrong")
	assert.Nil(t, s)
	assert.True(t, IsUnauthorized(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	srv := newTestAPI(t)
	c := New(srv.URL + "/api")

	s := NewSession("revoked")
	_, err := c.ListEmployees(context.Background(), s)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, s.Authenticated())

	_, err = c.ListEmployees(context.Background(), s)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClient_LogoutClearsEvenOnError(t *testing.T) {
	srv := newTestAPI(t)
	c := New(srv.URL + "/api")

	s := NewSession(validToken)
	err := c.Logout(context.Background(), s)
	assert.Error(t, err)
	assert.False(t, s.Authenticated())

	// Nothing to revoke
	assert.NoError(t, c.Logout(context.Background(), s))
}

func TestClient_Restore(t *testing.T) {
	srv := newTestAPI(t)
	c := New(srv.URL + "/api")

	s, err := c.Restore(context.Background(), validToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@company.com", s.User().Email)

	_, err = c.Restore(context.Background(), "stale")
	assert.True(t, IsUnauthorized(err))
}

func TestClient_ErrorKinds(t *testing.T) {
	srv := newTestAPI(t)
	c := New(srv.URL + "/api")
	ctx := context.Background()
	s := NewSession(validToken)

	_, err := c.CreateEmployee(ctx, s, EmployeeRequest{Name: "Alice Johnson"})
	assert.True(t, IsValidation(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"The email has already been taken."}, apiErr.Errors["email"])

	_, err = c.GetEmployee(ctx, s, 7)
	assert.True(t, IsNotFound(err))

	assert.NoError(t, c.DeleteEmployee(ctx, s, 7))
	assert.True(t, s.Authenticated())
}
