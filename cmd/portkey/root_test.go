package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/portkeyhq/portkey/internal/prompt"
)

// run executes one CLI invocation against a test vault, feeding prompts from
// the static source, and returns captured command output.
func run(t *testing.T, vaultPath string, src *prompt.Static, args ...string) (string, error) {
	t.Helper()

	source = src
	defer func() { source = prompt.NewTerminal() }()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--vault", vaultPath))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitAddList(t *testing.T) {
	vaultPath := filepath.Join(t.TempDir(), "vault.dat")

	_, err := run(t, vaultPath, &prompt.Static{
		Passwords: []string{"correct horse battery", "correct horse battery"},
	}, "init")
	if err != nil {
		t.Fatalf("init error = %v", err)
	}

	_, err = run(t, vaultPath, &prompt.Static{
		Lines:     []string{"web.example.com", "deploy"},
		Passwords: []string{"serverpw", "correct horse battery"},
	}, "add", "web-prod")
	if err != nil {
		t.Fatalf("add error = %v", err)
	}

	out, err := run(t, vaultPath, &prompt.Static{
		Passwords: []string{"correct horse battery"},
	}, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "web-prod") || !strings.Contains(out, "web.example.com") {
		t.Errorf("list output missing record:\n%s", out)
	}
	if strings.Contains(out, "serverpw") {
		t.Errorf("list output leaks a password:\n%s", out)
	}
}

func TestInitPasswordMismatch(t *testing.T) {
	vaultPath := filepath.Join(t.TempDir(), "vault.dat")

	_, err := run(t, vaultPath, &prompt.Static{
		Passwords: []string{"first password", "second password"},
	}, "init")
	if err == nil {
		t.Fatal("init with mismatched passwords succeeded")
	}
}

func TestListWrongPassword(t *testing.T) {
	vaultPath := filepath.Join(t.TempDir(), "vault.dat")

	if _, err := run(t, vaultPath, &prompt.Static{
		Passwords: []string{"correct horse battery", "correct horse battery"},
	}, "init"); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, vaultPath, &prompt.Static{
		Passwords: []string{"wrong password!"},
	}, "list")
	if err == nil {
		t.Fatal("list with the wrong password succeeded")
	}
}

func TestRemoveForce(t *testing.T) {
	vaultPath := filepath.Join(t.TempDir(), "vault.dat")
	master := "correct horse battery"

	if _, err := run(t, vaultPath, &prompt.Static{
		Passwords: []string{master, master},
	}, "init"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, vaultPath, &prompt.Static{
		Lines:     []string{"db.example.com", "admin"},
		Passwords: []string{"dbpw", master},
	}, "add", "db-prod"); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, vaultPath, &prompt.Static{
		Passwords: []string{master},
	}, "remove", "--force", "db-prod"); err != nil {
		t.Fatalf("remove error = %v", err)
	}

	out, err := run(t, vaultPath, &prompt.Static{
		Passwords: []string{master},
	}, "list")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "db-prod") {
		t.Errorf("removed server still listed:\n%s", out)
	}
}
