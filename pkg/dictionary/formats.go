package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileFormat represents the dictionary file formats levserve reads.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatChunk              // Chunked binary format
	FormatText               // Plain text format, one term per line
)

// DetectFileFormat attempts to detect the format of a file from its
// name and header.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	basename := strings.ToLower(filepath.Base(filename))

	if strings.HasPrefix(basename, "dict_") && ext == ".bin" {
		if err := ValidateChunkFile(filename, 0); err == nil {
			return FormatChunk, nil
		}
	}
	if ext == ".txt" {
		return FormatText, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// ValidateChunkFile checks the binary header of a chunk file before
// loading. maxWordCount of 0 uses no upper sanity bound.
func ValidateChunkFile(filename string, maxWordCount int) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	// At least the int32 word count header.
	if fileInfo.Size() < 4 {
		return fmt.Errorf("file %s is too small (%d bytes) for a chunk file", filename, fileInfo.Size())
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 {
		return fmt.Errorf("invalid word count in %s: %d (negative)", filename, wordCount)
	}
	if maxWordCount > 0 && int(wordCount) > maxWordCount {
		return fmt.Errorf("suspicious word count in %s: %d (too large)", filename, wordCount)
	}
	return nil
}
