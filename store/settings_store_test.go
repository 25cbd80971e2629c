package store

import (
	"testing"

	"cristalclean/api/storage"
)

func TestSettingsStoreDefaultsAndUpdate(t *testing.T) {
	files, err := storage.NewClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ss := NewSettingsStore(files)
	ss.Load()

	if ss.Get().CompanyName == "" {
		t.Fatal("expected default settings when no file exists")
	}

	in := ss.Get()
	in.Phone = "+41 21 555 11 22"
	in.HeroTitle = "Propreté garantie"
	updated, err := ss.Update(in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.UpdatedAt.IsZero() {
		t.Fatal("UpdatedAt not stamped")
	}

	fresh := NewSettingsStore(files)
	fresh.Load()
	got := fresh.Get()
	if got.Phone != "+41 21 555 11 22" || got.HeroTitle != "Propreté garantie" {
		t.Fatalf("settings not persisted: %+v", got)
	}
}

func TestSettingsStoreIgnoresCorruptFile(t *testing.T) {
	files, err := storage.NewClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := files.WriteJSON(settingsFile, []int{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	ss := NewSettingsStore(files)
	ss.Load()
	if ss.Get().CompanyName == "" {
		t.Fatal("defaults not kept after corrupt settings file")
	}
}
