package config

import (
	"path/filepath"
	"testing"
)

func TestCaseStore(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("GIGSHIELD_CONFIG", filepath.Join(tmpDir, "config.yaml"))

	store, err := LoadCaseStore()
	if err != nil {
		t.Fatalf("LoadCaseStore failed: %v", err)
	}

	if store.Version != "1.0" {
		t.Errorf("expected version 1.0, got %s", store.Version)
	}

	store.Track("appeal-1", "DoorDash", "generated")
	store.Track("appeal-2", "Uber", "generated")

	entry, ok := store.Get("appeal-1")
	if !ok {
		t.Fatal("expected to get appeal-1")
	}
	if entry.Platform != "DoorDash" {
		t.Errorf("expected platform DoorDash, got %s", entry.Platform)
	}
	if entry.LastStatus != "generated" {
		t.Errorf("expected status generated, got %s", entry.LastStatus)
	}
	if entry.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}

	if changed := store.SetStatus("appeal-1", "approved"); !changed {
		t.Error("expected status change to be reported")
	}
	if changed := store.SetStatus("appeal-1", "approved"); changed {
		t.Error("expected unchanged status to not be reported")
	}
	if changed := store.SetStatus("appeal-9", "approved"); changed {
		t.Error("expected untracked id to not report a change")
	}

	store.SetNotes("appeal-2", "called support on Monday")
	store.MarkCopied("appeal-2")

	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	store2, err := LoadCaseStore()
	if err != nil {
		t.Fatalf("LoadCaseStore after save failed: %v", err)
	}

	entry2, ok := store2.Get("appeal-1")
	if !ok {
		t.Fatal("expected appeal-1 after reload")
	}
	if entry2.LastStatus != "approved" {
		t.Errorf("expected status approved after reload, got %s", entry2.LastStatus)
	}

	entry2, _ = store2.Get("appeal-2")
	if entry2.Notes != "called support on Monday" {
		t.Errorf("expected notes to survive reload, got %q", entry2.Notes)
	}
	if entry2.LetterCopiedAt == "" {
		t.Error("expected letter_copied_at after reload")
	}

	store2.Remove("appeal-1")
	if _, ok := store2.Get("appeal-1"); ok {
		t.Error("expected appeal-1 to be removed")
	}
}

func TestCaseStoreEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("GIGSHIELD_CONFIG", filepath.Join(tmpDir, "config.yaml"))

	store, err := LoadCaseStore()
	if err != nil {
		t.Fatalf("LoadCaseStore failed: %v", err)
	}

	if _, ok := store.Get("anything"); ok {
		t.Error("expected empty store to have no cases")
	}
	if store.SetStatus("anything", "approved") {
		t.Error("expected no status change on empty store")
	}
}
