package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/docorator/internal/api"
	"github.com/jonathan/docorator/internal/config"
	"github.com/jonathan/docorator/internal/session"
	"github.com/jonathan/docorator/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// fakeService is an in-memory document service.
type fakeService struct {
	mu        sync.Mutex
	token     string
	payloads  []types.Payload
	records   map[string]types.DocumentRecord
	deleted   []string
	downloads []string
}

func newFakeService(t *testing.T) (*fakeService, *httptest.Server) {
	t.Helper()
	s := &fakeService{token: signedToken(t, time.Now().Add(time.Hour)), records: map[string]types.DocumentRecord{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("username") != "ada@example.com" || r.FormValue("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Incorrect email or password"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(types.LoginResponse{AccessToken: s.token, TokenType: "bearer"})
	})
	mux.HandleFunc("GET /auth/me", s.authed(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(types.UserProfile{ID: "u1", Email: "ada@example.com", FullName: "Ada Lovelace"})
	}))
	mux.HandleFunc("POST /generate", s.authed(func(w http.ResponseWriter, r *http.Request) {
		var p types.Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		s.mu.Lock()
		s.payloads = append(s.payloads, p)
		s.mu.Unlock()
		w.Header().Set("Content-Type", api.ContentTypePDF)
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	mux.HandleFunc("GET /dashboard/documents", s.authed(func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]types.DocumentRecord, 0, len(s.records))
		for _, rec := range s.records {
			out = append(out, rec)
		}
		_ = json.NewEncoder(w).Encode(out)
	}))
	mux.HandleFunc("GET /dashboard/doc/{id}", s.authed(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		rec, ok := s.records[r.PathValue("id")]
		s.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Document not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(rec)
	}))
	mux.HandleFunc("DELETE /dashboard/delete/{id}", s.authed(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.deleted = append(s.deleted, r.PathValue("id"))
		_, _ = w.Write([]byte(`{"message":"deleted"}`))
	}))
	mux.HandleFunc("GET /dashboard/download/{id}", s.authed(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.downloads = append(s.downloads, r.PathValue("id")+"."+r.URL.Query().Get("format"))
		s.mu.Unlock()
		w.Header().Set("Content-Type", api.ContentTypePDF)
		_, _ = fmt.Fprintf(w, "doc %s", r.PathValue("id"))
	}))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return s, server
}

func (s *fakeService) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
			return
		}
		h(w, r)
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ada@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

// cliEnv points the CLI at server with a fresh config directory.
func cliEnv(t *testing.T, server *httptest.Server) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfigDir, dir)
	t.Setenv(config.EnvAPIBaseURL, server.URL)
	t.Setenv(config.EnvArtifactDir, filepath.Join(dir, "out"))
	t.Setenv(config.EnvHTTPTimeout, "")
	return dir
}

func storeToken(t *testing.T, dir, token string) {
	t.Helper()
	require.NoError(t, session.NewFileStore(dir).Save(token))
}

// resetFlags restores every flag to its default so in-process runs do not
// see values or required-flag state from earlier runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command in-process and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
