package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestNormalizeKeys(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"nihc", "nihc"},
		{"ｎｉｈｃ", "nihc"},
		{"ＮＩ１", "NI1"},
		{"ni　hc", "ni hc"},
		{"你好", "你好"},
	}
	for _, tc := range testCases {
		if got := NormalizeKeys(tc.input); got != tc.expected {
			t.Errorf("NormalizeKeys(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestTOMLHelpers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.toml")
	type section struct {
		Name  string `toml:"name"`
		Count int    `toml:"count"`
		On    bool   `toml:"on"`
	}
	in := struct {
		S section `toml:"s"`
	}{section{"bolt", 3, true}}
	if err := SaveTOMLFile(in, path); err != nil {
		t.Fatalf("SaveTOMLFile: %v", err)
	}

	data, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatalf("ParseTOMLWithRecovery: %v", err)
	}
	s, ok := ExtractSection(data, "s")
	if !ok {
		t.Fatal("section missing")
	}
	if v, ok := ExtractString(s, "name"); !ok || v != "bolt" {
		t.Errorf("ExtractString = %q, %v", v, ok)
	}
	if v, ok := ExtractInt64(s, "count"); !ok || v != 3 {
		t.Errorf("ExtractInt64 = %d, %v", v, ok)
	}
	if v, ok := ExtractBool(s, "on"); !ok || !v {
		t.Errorf("ExtractBool = %v, %v", v, ok)
	}
	if _, ok := ExtractInt64(s, "name"); ok {
		t.Error("ExtractInt64 accepted a string")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "helpcode.txt"), []byte("你=rx\n"), 0644); err != nil {
		t.Fatal(err)
	}
	pr, err := NewPathResolver(dir)
	if err != nil {
		t.Fatalf("NewPathResolver: %v", err)
	}
	if got := pr.Resolve("helpcode.txt"); got != filepath.Join(dir, "helpcode.txt") {
		t.Errorf("Resolve = %s", got)
	}
	if got := pr.Resolve("/abs/file"); got != "/abs/file" {
		t.Errorf("absolute path changed: %s", got)
	}
	if got := pr.Resolve("missing.db"); got != filepath.Join(dir, "missing.db") {
		t.Errorf("missing file should resolve into the config dir, got %s", got)
	}
	if !CheckDirStatus(filepath.Join(dir, "sub")).Writable {
		t.Error("temp dir should be writable")
	}
}
