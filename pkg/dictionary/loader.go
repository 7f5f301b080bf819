/*
Package dictionary loads and saves symbol corpus files.

A corpus file describes packages and their entities in one of several
encodings, chosen by file extension: JSON, JSON assigned to a JavaScript
variable (as emitted by documentation generators), YAML, TOML, MessagePack
or a SQLite database. Every format decodes into corpus.Data.

	data, err := dictionary.Load("pkg-data.js")
	c, err := corpus.Build(data, corpus.Options{})

Several files may be merged with a Loader; later files override packages of
the same name.
*/
package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/symserve/pkg/corpus"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Loader merges corpus files in the order they are added
type Loader struct {
	paths []string
	stats LoaderStats
}

// LoaderStats provides statistics about the loading process
type LoaderStats struct {
	Files    int
	Packages int
	Entities int
	Builtins int
	Elapsed  time.Duration
}

// NewLoader creates a loader for paths
func NewLoader(paths ...string) *Loader {
	return &Loader{paths: paths}
}

// Load reads every file and merges them
func (l *Loader) Load() (*corpus.Data, error) {
	start := time.Now()
	merged := &corpus.Data{Packages: make(map[string]corpus.Package)}

	for _, path := range l.paths {
		data, err := Load(path)
		if err != nil {
			return nil, err
		}
		for name, pkg := range data.Packages {
			if _, exists := merged.Packages[name]; exists {
				log.Warnf("Package %q from %s overrides an earlier definition", name, path)
			}
			merged.Packages[name] = pkg
		}
	}

	l.stats = statsFor(merged)
	l.stats.Files = len(l.paths)
	l.stats.Elapsed = time.Since(start)
	log.Debugf("Loaded %d files: %d packages, %d entities in %v",
		l.stats.Files, l.stats.Packages, l.stats.Entities, l.stats.Elapsed)
	return merged, nil
}

// GetStats returns the statistics of the last Load
func (l *Loader) GetStats() LoaderStats {
	return l.stats
}

func statsFor(data *corpus.Data) LoaderStats {
	s := LoaderStats{Packages: len(data.Packages)}
	for _, pkg := range data.Packages {
		s.Entities += len(pkg.Entities)
		for _, e := range pkg.Entities {
			if e.Builtin {
				s.Builtins++
			}
		}
	}
	return s
}

// Load decodes one corpus file, choosing the decoder by extension
func Load(path string) (*corpus.Data, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateFileFormat(path, format); err != nil {
		return nil, err
	}

	if format == FormatSQLite {
		return loadSQLite(path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}
	data, err := Decode(raw, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode corpus %s: %w", path, err)
	}
	return data, nil
}

// Decode parses raw bytes of a non-database format
func Decode(raw []byte, format FileFormat) (*corpus.Data, error) {
	data := &corpus.Data{}
	var err error

	switch format {
	case FormatJSON:
		err = json.Unmarshal(raw, data)
	case FormatScript:
		err = json.Unmarshal(stripAssignment(raw), data)
	case FormatYAML:
		err = yaml.Unmarshal(raw, data)
	case FormatTOML:
		_, err = toml.Decode(string(raw), data)
	case FormatMsgpack:
		err = msgpack.Unmarshal(raw, data)
	default:
		return nil, fmt.Errorf("format %v cannot be decoded from bytes", format)
	}
	if err != nil {
		return nil, err
	}
	fillNames(data)
	return data, nil
}

// stripAssignment turns `var x = {...};` into `{...}`.
func stripAssignment(raw []byte) []byte {
	raw = bytes.TrimSpace(raw)
	if i := bytes.IndexByte(raw, '='); i >= 0 && !bytes.HasPrefix(raw, []byte("{")) {
		raw = bytes.TrimSpace(raw[i+1:])
	}
	return bytes.TrimSuffix(raw, []byte(";"))
}

func fillNames(data *corpus.Data) {
	if data.Packages == nil {
		data.Packages = make(map[string]corpus.Package)
	}
	for name, pkg := range data.Packages {
		if pkg.Name == "" {
			pkg.Name = name
			data.Packages[name] = pkg
		}
	}
}

// Save encodes data into path, choosing the encoder by extension
func Save(data *corpus.Data, path string) error {
	format, err := DetectFileFormat(path)
	if err != nil {
		return err
	}
	if format == FormatSQLite {
		return saveSQLite(data, path)
	}

	var out []byte
	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "\t")
	case FormatScript:
		out, err = json.Marshal(data)
		if err == nil {
			out = append(append([]byte("var odin_pkg_data = "), out...), ';', '\n')
		}
	case FormatYAML:
		out, err = yaml.Marshal(data)
	case FormatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(data)
		out = buf.Bytes()
	case FormatMsgpack:
		out, err = msgpack.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("failed to encode corpus as %v: %w", format, err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write corpus %s: %w", path, err)
	}
	return nil
}

// sortedNames returns package names in a stable order for writers
func sortedNames(data *corpus.Data) []string {
	names := make([]string, 0, len(data.Packages))
	for name := range data.Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
