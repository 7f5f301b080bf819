package utils

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
		{-4096, "-4,096"},
	}
	for _, tc := range testCases {
		if got := FormatWithCommas(tc.input); got != tc.expected {
			t.Errorf("Input '%d': expected '%s', got '%s'", tc.input, tc.expected, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	testCases := []struct {
		input    string
		width    int
		expected string
	}{
		{"strings.to_lower", 0, "strings.to_lower"},
		{"strings.to_lower", 20, "strings.to_lower"},
		{"strings.to_lower", 8, "strings…"},
		{"abc", 1, "…"},
	}
	for _, tc := range testCases {
		if got := Truncate(tc.input, tc.width); got != tc.expected {
			t.Errorf("Input '%s'/%d: expected '%s', got '%s'", tc.input, tc.width, tc.expected, got)
		}
	}
}

func TestCreateRankList(t *testing.T) {
	got := CreateRankList([]int{300, 300, 150, 90, 90, 12})
	want := []uint32{1, 1, 3, 4, 4, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if len(CreateRankList(nil)) != 0 {
		t.Error("expected empty ranks")
	}
}

func TestCreateRankListLarge(t *testing.T) {
	// uncapped inline pages may exceed 16 bit ranks
	scores := make([]int, 70000)
	for i := range scores {
		scores[i] = len(scores) - i
	}
	ranks := CreateRankList(scores)
	if last := ranks[len(ranks)-1]; last != 70000 {
		t.Errorf("expected last rank 70000, got %d", last)
	}
}

func TestPartialTOMLHelpers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	content := "[search]\nmax_results = 12\ninline = true\nmode = \"package\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	raw, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	section, ok := ExtractSection(raw, "search")
	if !ok {
		t.Fatal("expected search section")
	}

	limit, inline, mode := 0, false, ""
	ApplyInt(section, "max_results", &limit)
	ApplyBool(section, "inline", &inline)
	ApplyString(section, "mode", &mode)
	ApplyInt(section, "missing", &limit)

	if limit != 12 || !inline || mode != "package" {
		t.Errorf("unexpected values: %d %v %q", limit, inline, mode)
	}
}

func TestSaveTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	in := struct {
		Name string `toml:"name"`
	}{Name: "symserve"}

	if err := SaveTOMLFile(in, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out struct {
		Name string `toml:"name"`
	}
	if err := LoadTOMLFile(path, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "symserve" {
		t.Errorf("expected 'symserve', got '%s'", out.Name)
	}
}

func TestResolveDataFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pkg.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	pr := &PathResolver{workDir: dir, executableDir: t.TempDir(), dataDir: t.TempDir()}
	got, err := pr.ResolveDataFile("pkg.json")
	if err != nil || got != path {
		t.Errorf("expected %s, got %s (%v)", path, got, err)
	}
	if _, err := pr.ResolveDataFile("missing.json"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
