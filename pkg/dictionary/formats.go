package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the supported corpus file encodings
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON
	FormatScript // JSON assigned to a JS variable
	FormatYAML
	FormatTOML
	FormatMsgpack
	FormatSQLite
)

// FormatInfo contains metadata about a corpus file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatJSON: {
		Format:      FormatJSON,
		Description: "JSON Corpus",
		Extensions:  []string{".json"},
		MinSize:     2, // {}
	},
	FormatScript: {
		Format:      FormatScript,
		Description: "JavaScript Corpus",
		Extensions:  []string{".js"},
		MinSize:     2,
	},
	FormatYAML: {
		Format:      FormatYAML,
		Description: "YAML Corpus",
		Extensions:  []string{".yaml", ".yml"},
		MinSize:     1,
	},
	FormatTOML: {
		Format:      FormatTOML,
		Description: "TOML Corpus",
		Extensions:  []string{".toml"},
		MinSize:     1,
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Description: "MessagePack Corpus",
		Extensions:  []string{".msgpack", ".mpk"},
		MinSize:     1, // fixmap header
	},
	FormatSQLite: {
		Format:      FormatSQLite,
		Description: "SQLite Corpus",
		Extensions:  []string{".db", ".sqlite", ".sqlite3"},
		MinSize:     100, // sqlite header
	},
}

// String returns the description of f.
func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// DetectFileFormat maps a file name to its format by extension
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext {
				return format, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// ValidateFileFormat checks that a file exists and is large enough for format
func ValidateFileFormat(filename string, format FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}

	formatInfo, exists := supportedFormats[format]
	if !exists {
		return fmt.Errorf("unknown format: %v", format)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	log.Debugf("Corpus file %s validated as %s (%d bytes)", filename, formatInfo.Description, fileInfo.Size())
	return nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
