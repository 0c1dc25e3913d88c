package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
	if cfg.DefaultSlot != "quicksave" {
		t.Errorf("DefaultSlot = %q", cfg.DefaultSlot)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "save_dir: /tmp/saves\npassphrase: hush\nplain: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SaveDir != "/tmp/saves" || cfg.Passphrase != "hush" || !cfg.Plain {
		t.Errorf("Load() = %+v", cfg)
	}
	// Unset fields keep their defaults.
	if cfg.DefaultSlot != "quicksave" {
		t.Errorf("DefaultSlot = %q, want quicksave", cfg.DefaultSlot)
	}
}

func TestLoadBackfillsEmptyDefaultSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_slot: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultSlot != "quicksave" {
		t.Errorf("DefaultSlot = %q, want quicksave", cfg.DefaultSlot)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("save_dir: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml accepted")
	}
}
