package storage

import (
	"os"
	"path/filepath"
	"testing"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestReadWriteRoundTrip(t *testing.T) {
	c, err := NewClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	in := testDoc{Name: "hello", Count: 3}
	if err := c.WriteJSON("doc.json", in); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var out testDoc
	if !c.ReadJSON("doc.json", &out) {
		t.Fatal("ReadJSON returned false for existing document")
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestReadMissingFile(t *testing.T) {
	c, err := NewClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var out testDoc
	if c.ReadJSON("absent.json", &out) {
		t.Fatal("ReadJSON reported success for missing file")
	}
}

func TestReadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	c, err := NewClient(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{truncated"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out testDoc
	if c.ReadJSON("bad.json", &out) {
		t.Fatal("ReadJSON reported success for corrupt file")
	}
}

func TestWriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	c, err := NewClient(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.WriteJSON("doc.json", testDoc{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "doc.json.tmp")); !os.IsNotExist(err) {
		t.Fatal("temp file left behind")
	}
}

func TestNewClientCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewClient(dir); err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("data dir not created: %v", err)
	}
}
