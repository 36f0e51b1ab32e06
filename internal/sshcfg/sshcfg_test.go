package sshcfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/portkeyhq/portkey/pkg/vault"
)

func testRecords() []vault.CredentialRecord {
	return []vault.CredentialRecord{
		vault.NewRecord("web-prod", "web.example.com", 2222, "deploy", []byte("secret1"), ""),
		vault.NewRecord("db-prod", "db.example.com", 0, "admin", []byte("secret2"), ""),
	}
}

func TestRender(t *testing.T) {
	out := Render(testRecords())

	if !strings.Contains(out, "Host web-prod\n") {
		t.Errorf("missing Host block:\n%s", out)
	}
	if !strings.Contains(out, "HostName web.example.com") {
		t.Errorf("missing HostName:\n%s", out)
	}
	if !strings.Contains(out, "Port 2222") {
		t.Errorf("missing non-default port:\n%s", out)
	}
	// Default port 22 is omitted.
	if strings.Contains(out, "Port 22\n") {
		t.Errorf("default port should be omitted:\n%s", out)
	}
	if strings.Contains(out, "secret1") || strings.Contains(out, "secret2") {
		t.Errorf("rendered config contains a password:\n%s", out)
	}
}

func TestAppendNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if err := Append(path, testRecords()); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), Marker) {
		t.Error("managed marker missing")
	}
	if !strings.Contains(string(content), "Host db-prod") {
		t.Error("record missing")
	}
}

func TestAppendPreservesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	manual := "Host personal\n    HostName home.example.net\n"
	if err := os.WriteFile(path, []byte(manual), 0600); err != nil {
		t.Fatal(err)
	}

	if err := Append(path, testRecords()); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "Host personal") {
		t.Error("manual entry lost")
	}
	if !strings.Contains(string(content), "Host web-prod") {
		t.Error("managed entry missing")
	}
}

func TestAppendReplacesManagedSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if err := Append(path, testRecords()); err != nil {
		t.Fatal(err)
	}
	// Second write with a different record set replaces, not duplicates.
	if err := Append(path, testRecords()[:1]); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(content), Marker); n != 1 {
		t.Errorf("marker appears %d times, want 1", n)
	}
	if strings.Contains(string(content), "Host db-prod") {
		t.Error("stale managed entry survived rewrite")
	}
}
