package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// FileFormat represents different word list file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // One word per line, optional tab separated detail
	FormatTOML               // words = [...] and/or [[entry]] tables
	FormatMsgpack            // Array of strings or {w, d} maps
)

// FormatInfo contains metadata about a word list file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt", ".lst"},
		MinSize:     1,
	},
	FormatTOML: {
		Format:      FormatTOML,
		Description: "TOML Word List",
		Extensions:  []string{".toml"},
		MinSize:     1,
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Description: "MessagePack Word List",
		Extensions:  []string{".msgpack", ".mpk"},
		MinSize:     1, // fixarray header
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			return nil
		}
	}
	return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
		filename, ext, formatInfo.Description, formatInfo.Extensions)
}

// DetectFileFormat picks the format from the file extension and validates it
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e != ext {
				continue
			}
			if err := ValidateFileFormat(filename, format); err != nil {
				return FormatUnknown, err
			}
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// LoadFile reads a word list in any supported format.
func LoadFile(filename string) ([]Entry, error) {
	format, err := DetectFileFormat(filename)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var entries []Entry
	switch format {
	case FormatText:
		entries, err = ReadText(file)
	case FormatTOML:
		entries, err = ReadTOML(file)
	case FormatMsgpack:
		entries, err = ReadMsgpack(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s word list %s: %w", format, filename, err)
	}

	log.Debugf("Loaded %d words from %s (%s)", len(entries), filename, format)
	return entries, nil
}

// ReadText parses one word per line. A tab separates the word from its
// detail text; blank lines and lines starting with '#' are ignored.
func ReadText(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, detail, _ := strings.Cut(line, "\t")
		entries = append(entries, Entry{
			Word:   strings.TrimSpace(word),
			Detail: strings.TrimSpace(detail),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

type tomlWordList struct {
	Words   []string `toml:"words"`
	Entries []Entry  `toml:"entry"`
}

// ReadTOML parses a `words` array followed by any `[[entry]]` tables.
func ReadTOML(r io.Reader) ([]Entry, error) {
	var list tomlWordList
	if _, err := toml.NewDecoder(r).Decode(&list); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(list.Words)+len(list.Entries))
	for _, w := range list.Words {
		entries = append(entries, Entry{Word: w})
	}
	return append(entries, list.Entries...), nil
}

// ReadMsgpack parses an array whose items are plain strings or {w, d} maps.
func ReadMsgpack(r io.Reader) ([]Entry, error) {
	var raw []msgpack.RawMessage
	if err := msgpack.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw))
	for i, item := range raw {
		var word string
		if err := msgpack.Unmarshal(item, &word); err == nil {
			entries = append(entries, Entry{Word: word})
			continue
		}
		var e Entry
		if err := msgpack.Unmarshal(item, &e); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Truncate keeps the first limit entries. A limit below 1 keeps everything.
func Truncate(entries []Entry, limit int) []Entry {
	if limit < 1 || len(entries) <= limit {
		return entries
	}
	log.Debugf("Truncating word list from %d to %d entries", len(entries), limit)
	return entries[:limit]
}
