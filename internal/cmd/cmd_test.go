package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// setupTestEnvironment points the config and data directories at temp dirs
// and the client at the given backend URL.
func setupTestEnvironment(t *testing.T, serverURL string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("GESTAO_SERVER_URL", serverURL)
	t.Setenv("GESTAO_LOGGING_ENABLED", "false")
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "gestao" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "gestao")
	}

	expectedCmds := []string{
		"login", "logout", "tui", "tv", "watch",
		"tickets", "assets", "users", "categories",
		"settings", "audit", "reports", "import", "profile",
	}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestLoginCommand_PersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "jwt-123",
			"user":  map[string]any{"id": 1, "username": "maria", "role": "Tech"},
		})
	}))
	defer server.Close()
	setupTestEnvironment(t, server.URL)

	output, err := executeCommand(rootCmd, "login", "-u", "maria", "-p", "secret")
	if err != nil {
		t.Fatalf("login failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "maria") {
		t.Errorf("login output should greet the user, got %q", output)
	}

	sessionFile := filepath.Join(os.Getenv("XDG_DATA_HOME"), "gestao", "session.json")
	if _, err := os.Stat(sessionFile); err != nil {
		t.Errorf("session file should exist after login: %v", err)
	}
}

func TestLogoutCommand_ClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"token": "jwt-123",
			"user":  map[string]any{"id": 1, "username": "maria", "role": "Tech"},
		})
	}))
	defer server.Close()
	setupTestEnvironment(t, server.URL)

	if _, err := executeCommand(rootCmd, "login", "-u", "maria", "-p", "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := executeCommand(rootCmd, "logout"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	sessionFile := filepath.Join(os.Getenv("XDG_DATA_HOME"), "gestao", "session.json")
	if _, err := os.Stat(sessionFile); !os.IsNotExist(err) {
		t.Error("session file should be gone after logout")
	}
}

func TestTicketsCreate_RejectsAccentedPriority(t *testing.T) {
	setupTestEnvironment(t, "http://localhost:1")

	_, err := executeCommand(rootCmd, "tickets", "create", "--title", "Sem rede", "--priority", "Média")
	if err == nil {
		t.Fatal("the accented priority spelling should be rejected before any request")
	}
	if !strings.Contains(err.Error(), "Média") {
		t.Errorf("error should name the rejected value, got %v", err)
	}
}

func TestTicketsList_RequiresLogin(t *testing.T) {
	setupTestEnvironment(t, "http://localhost:1")

	_, err := executeCommand(rootCmd, "tickets", "list")
	if err == nil {
		t.Fatal("tickets list without a session should fail")
	}
	if !strings.Contains(err.Error(), "not logged in") {
		t.Errorf("error should point at login, got %v", err)
	}
}
