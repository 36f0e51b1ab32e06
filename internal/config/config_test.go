package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.VaultPath != "" || cfg.SSH.StrictHostKeyChecking || cfg.History.Disabled {
		t.Errorf("Load() on missing file = %+v, want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
vault_path: /tmp/custom/vault.dat
ssh:
  strict_host_key_checking: true
  extra_args: ["-o", "ServerAliveInterval=30"]
history:
  disabled: true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.VaultPath != "/tmp/custom/vault.dat" {
		t.Errorf("VaultPath = %q", cfg.VaultPath)
	}
	if !cfg.SSH.StrictHostKeyChecking {
		t.Error("StrictHostKeyChecking = false, want true")
	}
	if len(cfg.SSH.ExtraArgs) != 2 || cfg.SSH.ExtraArgs[0] != "-o" {
		t.Errorf("ExtraArgs = %v", cfg.SSH.ExtraArgs)
	}
	if !cfg.History.Disabled {
		t.Error("History.Disabled = false, want true")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("vault_path: [broken"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() on invalid YAML returned nil error")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/vault.dat"); got != filepath.Join(home, "vault.dat") {
		t.Errorf("expandHome() = %q", got)
	}
	if got := expandHome("/abs/vault.dat"); got != "/abs/vault.dat" {
		t.Errorf("expandHome() = %q, want unchanged", got)
	}
}
