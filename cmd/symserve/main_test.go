package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/symserve/pkg/config"
	"github.com/bastiangx/symserve/pkg/corpus"
	"github.com/bastiangx/symserve/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func flagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	fs := cmd.Flags()
	fs.StringVarP(&pkgFlag, "package", "p", "", "")
	fs.IntVarP(&limitFlag, "limit", "l", 0, "")
	fs.BoolVar(&inlineFlag, "inline", false, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestApplyFlags(t *testing.T) {
	c := config.DefaultConfig()
	applyFlags(flagCommand(t, "--package", "fmt", "--limit", "5", "--inline"), c)
	assert.Equal(t, config.ModePackage, c.Search.Mode)
	assert.Equal(t, "fmt", c.Search.Package)
	assert.Equal(t, 5, c.Search.MaxResults)
	assert.True(t, c.Search.Inline)
	assert.Equal(t, "fmt", scopeOf(c))

	applyFlags(flagCommand(t, "--package", ""), c)
	assert.Equal(t, config.ModeGlobal, c.Search.Mode)
	assert.Equal(t, "", scopeOf(c))
}

func TestApplyFlagsKeepsConfigWhenUnset(t *testing.T) {
	c := config.DefaultConfig()
	c.Search.MaxResults = 12
	applyFlags(flagCommand(t), c)
	assert.Equal(t, 12, c.Search.MaxResults)
	assert.Equal(t, config.ModeGlobal, c.Search.Mode)
}

func TestLoadCorpusMergesFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.yaml")
	require.NoError(t, dictionary.Save(&corpus.Data{Packages: map[string]corpus.Package{
		"fmt": {Path: "/core/fmt", Entities: []corpus.RawEntity{{Name: "println", Kind: "p"}}},
	}}, first))
	require.NoError(t, dictionary.Save(&corpus.Data{Packages: map[string]corpus.Package{
		"strings": {Path: "/core/strings", Entities: []corpus.RawEntity{{Name: "to_lower", Kind: "p"}}},
	}}, second))

	saved := dataFiles
	t.Cleanup(func() { dataFiles = saved })
	dataFiles = []string{first, second}

	data, err := loadCorpus()
	require.NoError(t, err)
	assert.Len(t, data.Packages, 2)
	assert.Equal(t, []string{first, second}, resolvedFiles)

	dataFiles = []string{filepath.Join(dir, "missing.json")}
	_, err = loadCorpus()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
