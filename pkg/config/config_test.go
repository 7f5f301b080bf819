package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/symserve/pkg/match"
	"github.com/bastiangx/symserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if c.Limit() != suggest.GlobalLimit {
		t.Errorf("expected limit %d, got %d", suggest.GlobalLimit, c.Limit())
	}
	if c.Scoring != match.DefaultWeights() {
		t.Errorf("expected default weights, got %+v", c.Scoring)
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	c, err := InitConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *loaded != *c {
		t.Errorf("expected %+v, got %+v", c, loaded)
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// max_results has the wrong type, so typed decoding fails
	content := `[search]
mode = "package"
package = "fmt"
max_results = "many"
inline = true

[scoring]
seen_dot_bonus = 10

[server]
max_sessions = 4
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Search.Mode != ModePackage || c.Search.Package != "fmt" || !c.Search.Inline {
		t.Errorf("search section not recovered: %+v", c.Search)
	}
	if c.Search.MaxResults != suggest.GlobalLimit {
		t.Errorf("invalid value should keep default, got %d", c.Search.MaxResults)
	}
	if c.Scoring.SeenDotBonus != 10 || c.Scoring.SubstringBonus != 50 {
		t.Errorf("scoring not recovered: %+v", c.Scoring)
	}
	if c.Server.MaxSessions != 4 || c.Server.MaxQueryLength != 60 {
		t.Errorf("server not recovered: %+v", c.Server)
	}
	if c.Limit() != suggest.NoLimit {
		t.Errorf("inline mode should disable the limit, got %d", c.Limit())
	}
}

func TestLoadConfigGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[[[ not toml"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *c != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", c)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		mutate      func(*Config)
		valid       bool
		description string
	}{
		{func(c *Config) {}, true, "defaults"},
		{func(c *Config) { c.Search.Mode = ModePackage }, false, "package mode without package"},
		{func(c *Config) { c.Search.Mode = ModePackage; c.Search.Package = "fmt" }, true, "package mode"},
		{func(c *Config) { c.Search.Mode = "fuzzy" }, false, "unknown mode"},
		{func(c *Config) { c.Search.MaxResults = -1 }, false, "negative limit"},
		{func(c *Config) { c.Server.MaxQueryLength = 0 }, false, "zero query length"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			c := DefaultConfig()
			tc.mutate(c)
			if err := c.Validate(); (err == nil) != tc.valid {
				t.Errorf("expected valid=%v, got %v", tc.valid, err)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	c := DefaultConfig()

	limit := 64
	if err := c.Update(path, &limit, nil, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Search.MaxResults != 64 {
		t.Errorf("expected 64, got %d", loaded.Search.MaxResults)
	}

	mode := ModePackage
	if err := c.Update(path, nil, nil, &mode, nil); err == nil {
		t.Error("expected validation error for package mode without package")
	}
}
