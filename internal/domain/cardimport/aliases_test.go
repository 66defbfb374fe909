package cardimport

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAliasTableLookup(t *testing.T) {
	table := AliasTable{"Green Achers": "GreenAchers"}

	if got, ok := table.Lookup("Green Achers"); !ok || got != "GreenAchers" {
		t.Fatalf("exact lookup failed: (%q, %v)", got, ok)
	}
	if got, ok := table.Lookup("GREEN ACHERS"); !ok || got != "GreenAchers" {
		t.Fatalf("case-insensitive lookup failed: (%q, %v)", got, ok)
	}
	if _, ok := table.Lookup("Unknown FC"); ok {
		t.Fatalf("unknown key must not resolve")
	}
}

func TestAliasTableValidate(t *testing.T) {
	if err := (AliasTable{"A": "X", "B": "Y"}).Validate(); err != nil {
		t.Fatalf("valid table rejected: %v", err)
	}

	conflicting := AliasTable{"Green Achers": "GreenAchers", "green achers": "Green Achers FC"}
	if err := conflicting.Validate(); err == nil {
		t.Fatalf("expected conflict between case-insensitive duplicate variants")
	}

	if err := (AliasTable{" ": "X"}).Validate(); err == nil {
		t.Fatalf("expected error for blank variant key")
	}
}

func TestLoadAliasFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teams.yaml")
	content := "\"Green Achers\": \"GreenAchers\"\n\"Stingrays ReUtd\": \"Stingrays ReUnited\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write alias file: %v", err)
	}

	table, err := LoadAliasFile(path)
	if err != nil {
		t.Fatalf("load alias file: %v", err)
	}
	if got, ok := table.Lookup("Stingrays ReUtd"); !ok || got != "Stingrays ReUnited" {
		t.Fatalf("unexpected lookup result: (%q, %v)", got, ok)
	}

	if _, err := LoadAliasFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaultTablesAreValid(t *testing.T) {
	if err := DefaultTeamAliases().Validate(); err != nil {
		t.Fatalf("default team aliases invalid: %v", err)
	}
	if err := DefaultReasonAliases().Validate(); err != nil {
		t.Fatalf("default reason aliases invalid: %v", err)
	}
}
