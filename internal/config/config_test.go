package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("LOOKUP_IGNORE_CASE", "")
	t.Setenv("CSV_DELIMITER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.LookupIgnoreCase || !cfg.LookupWarnOnMissing {
		t.Fatalf("lookup defaults should be on: %+v", cfg)
	}
	if cfg.CSVDelimiter != ',' {
		t.Fatalf("delimiter=%q", cfg.CSVDelimiter)
	}
	if err := cfg.Require("DB_PATH", cfg.DBPath); err == nil {
		t.Fatal("empty DB_PATH should fail Require")
	}
}

func TestLoadOverrides(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "x.db")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("LOOKUP_IGNORE_CASE", "off")
	t.Setenv("LOOKUP_WARN_MISSING", "0")
	t.Setenv("CSV_DELIMITER", `\t`)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != dbPath {
		t.Fatalf("dbPath=%s", cfg.DBPath)
	}
	if cfg.LookupIgnoreCase || cfg.LookupWarnOnMissing {
		t.Fatalf("lookup flags not applied: %+v", cfg)
	}
	if cfg.CSVDelimiter != '\t' {
		t.Fatalf("delimiter=%q", cfg.CSVDelimiter)
	}
}

func TestLoadBadDelimiter(t *testing.T) {
	t.Setenv("CSV_DELIMITER", ";;")
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}
