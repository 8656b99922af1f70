package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/foodcart/config"
	"github.com/target/foodcart/internal/adapters/demoauth"
	"github.com/target/foodcart/internal/adapters/filestore"
	domainauth "github.com/target/foodcart/internal/domain/auth"
)

func demoConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := &config.AppConfig{
		Auth: config.AuthConfig{Mode: config.AuthModeDemo},
		Client: config.ClientConfig{
			TokenStore: config.TokenStoreFile,
			TokenFile:  filepath.Join(t.TempDir(), "session.json"),
		},
	}
	cfg.Sanitize()
	return cfg
}

func runCmd(t *testing.T, cfg *config.AppConfig, name string, args ...string) (string, error) {
	t.Helper()
	cmd, ok := commands()[name]
	require.True(t, ok, "command %q not registered", name)
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := run(context.Background(), cmd, args, cfg, logger, &out)
	return out.String(), err
}

func TestCommands_Registered(t *testing.T) {
	cmds := commands()
	for _, name := range []string{"login", "signup", "logout", "status", "whoami", "get", "strength"} {
		cmd, ok := cmds[name]
		require.True(t, ok, name)
		assert.Equal(t, name, cmd.name)
		assert.NotEmpty(t, cmd.description)
		assert.NotNil(t, cmd.run)
	}
}

func TestPrintUsage(t *testing.T) {
	var out bytes.Buffer
	printUsage(&out)
	usage := out.String()
	assert.Contains(t, usage, "Usage: foodcart-auth <command>")
	assert.Less(t, strings.Index(usage, "login"), strings.Index(usage, "whoami"))
}

func TestLoginThenWhoami(t *testing.T) {
	cfg := demoConfig(t)

	out, err := runCmd(t, cfg, "whoami")
	require.ErrorIs(t, err, errNotAuthenticated)
	assert.Equal(t, "Not logged in\n", out)

	out, err = runCmd(t, cfg, "login", "-email", "me@example.com", "-password", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as me@example.com\n", out)

	// Token persisted on disk; a fresh process verifies it.
	out, err = runCmd(t, cfg, "whoami")
	require.NoError(t, err)
	assert.Equal(t, demoauth.DefaultEmail+"\n", out)

	out, err = runCmd(t, cfg, "status")
	require.NoError(t, err)
	var st statusOutput
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, domainauth.PhaseAuthenticated, st.Phase)
	assert.True(t, st.IsAuthenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, demoauth.DefaultEmail, st.User.Email)

	out, err = runCmd(t, cfg, "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", out)

	_, err = runCmd(t, cfg, "whoami")
	require.ErrorIs(t, err, errNotAuthenticated)
}

func TestLogin_InvalidFormNeverCallsGateway(t *testing.T) {
	cfg := demoConfig(t)

	out, err := runCmd(t, cfg, "login", "-email", "not-an-email", "-password", "123")
	require.ErrorIs(t, err, errValidation)
	assert.Contains(t, out, "email: Please enter a valid email address")
	assert.Contains(t, out, "password: Password must be at least 6 characters long")

	_, err = runCmd(t, cfg, "whoami")
	require.ErrorIs(t, err, errNotAuthenticated)
}

func TestSignup(t *testing.T) {
	cfg := demoConfig(t)

	out, err := runCmd(t, cfg, "signup", "-email", "new@example.com", "-password", "secret1", "-confirm", "other")
	require.ErrorIs(t, err, errValidation)
	assert.Equal(t, "  confirmPassword: Passwords do not match\n", out)

	out, err = runCmd(t, cfg, "signup", "-email", "new@example.com", "-password", "secret1", "-confirm", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Demo signup successful\n", out)

	// Signup never establishes a session.
	_, err = runCmd(t, cfg, "whoami")
	require.ErrorIs(t, err, errNotAuthenticated)
}

func TestStatus_LoggedOut(t *testing.T) {
	out, err := runCmd(t, demoConfig(t), "status")
	require.NoError(t, err)
	var st statusOutput
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, domainauth.PhaseUnauthenticated, st.Phase)
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
}

func TestStrength(t *testing.T) {
	out, err := runCmd(t, demoConfig(t), "strength", "-password", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "0/6 "), out)
}

func TestParseCredentials_UnknownFlag(t *testing.T) {
	_, err := parseCredentials("login", []string{"-confirm", "x"}, false)
	require.Error(t, err)
}

func TestGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid token"}`))
			return
		}
		_, _ = w.Write([]byte(`{"orders":[{"id":"1"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.AppConfig{
		Client: config.ClientConfig{
			APIBaseURL: srv.URL + "/api",
			TokenStore: config.TokenStoreFile,
			TokenFile:  filepath.Join(t.TempDir(), "session.json"),
		},
	}
	cfg.Sanitize()
	require.NoError(t, filestore.NewTokenStore(cfg.Client.TokenFile).Write(context.Background(), "tok123"))

	out, err := runCmd(t, cfg, "get", "-path", "orders")
	require.NoError(t, err)
	assert.JSONEq(t, `{"orders":[{"id":"1"}]}`, out)

	require.NoError(t, filestore.NewTokenStore(cfg.Client.TokenFile).Write(context.Background(), "old"))
	out, err = runCmd(t, cfg, "get", "-path", "/orders")
	require.ErrorIs(t, err, errRejected)
	assert.Contains(t, out, "Invalid token")

	// the rejected token was dropped
	tok, err := filestore.NewTokenStore(cfg.Client.TokenFile).Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestGet_DemoModeUnsupported(t *testing.T) {
	_, err := runCmd(t, demoConfig(t), "get", "-path", "/orders")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errRejected)
}
