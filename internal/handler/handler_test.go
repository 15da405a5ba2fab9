package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/msomdec/spartan-directory/internal/directory"
	"github.com/msomdec/spartan-directory/internal/domain"
	"github.com/msomdec/spartan-directory/internal/handler"
	"github.com/msomdec/spartan-directory/internal/repository/sqlite"
	"github.com/msomdec/spartan-directory/internal/service"
)

func testDataset() []domain.Spartan {
	return []domain.Spartan{
		{ID: "1", Name: "Priya Rai", Designation: "Admin", College: "IIT Delhi", DateJoined: "23/1/23", ApprovedBy: "Sahil Mehra - Central Admin", Status: domain.StatusAvailable},
		{ID: "2", Name: "Nikhil Das", Designation: "City Lead", College: "VIT, Chennai", DateJoined: "14/2/23", ApprovedBy: "Sahil Mehra - Central Admin", Status: domain.StatusUnavailable},
		{ID: "3", Name: "Kavya Iyer", Designation: "Campus Admin", College: "Christ, Bangalore", DateJoined: "05/3/23", ApprovedBy: "Sahil Mehra - Central Admin", Status: domain.StatusAvailable},
	}
}

func newTestServices(t *testing.T) (*service.AuthService, *service.DirectoryService) {
	t.Helper()
	return newTestServicesWithSource(t, directory.StaticSource(testDataset()))
}

func newTestServicesWithSource(t *testing.T, source directory.Source) (*service.AuthService, *service.DirectoryService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sessions := service.NewSessionStore(db.KV())
	// Cost 4 and zero delays for fast tests.
	auth := service.NewAuthService(db.Accounts(), sessions, 4, 0)
	dir := service.NewDirectoryService(directory.NewFetcher(source, 0))
	return auth, dir
}

func newTestMux(t *testing.T) (*http.ServeMux, *service.AuthService) {
	t.Helper()
	auth, dir := newTestServices(t)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, dir, nil, false)
	return mux, auth
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, body io.Reader, dst any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// signup creates an account through the API and returns the session cookie.
func signup(t *testing.T, mux *http.ServeMux, email string) *http.Cookie {
	t.Helper()
	rec := postJSON(t, mux, "/api/auth/signup", map[string]string{
		"name":            "Priya Rai",
		"email":           email,
		"password":        "password123",
		"confirmPassword": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	t.Fatal("signup did not set auth_token cookie")
	return nil
}
