package dictionary

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestVocabularyDeduplicates(t *testing.T) {
	vocab := NewVocabulary()
	if !vocab.Add("cat") {
		t.Error("first Add(cat) should report new")
	}
	if vocab.Add("cat") {
		t.Error("second Add(cat) should report duplicate")
	}
	vocab.Add("cats")
	vocab.Add("bat")

	if vocab.Len() != 3 {
		t.Errorf("Len = %d, want 3", vocab.Len())
	}
	if !vocab.Has("cat") || vocab.Has("dog") {
		t.Error("Has gave wrong membership")
	}

	terms := vocab.Terms()
	if len(terms) != 3 {
		t.Fatalf("Terms returned %d entries, want 3", len(terms))
	}
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		seen[term] = true
	}
	for _, want := range []string{"cat", "cats", "bat"} {
		if !seen[want] {
			t.Errorf("Terms missing %q", want)
		}
	}
}

func TestLoadTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "cat\ncats\n# a comment\n\nbat 42\ncat\ndog\t7\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	vocab := NewVocabulary()
	added, err := LoadTextFile(path, vocab, 0)
	if err != nil {
		t.Fatalf("LoadTextFile: %v", err)
	}
	if added != 4 {
		t.Errorf("added = %d, want 4 (duplicate and comment skipped)", added)
	}
	for _, want := range []string{"cat", "cats", "bat", "dog"} {
		if !vocab.Has(want) {
			t.Errorf("vocabulary missing %q", want)
		}
	}
}

func TestLoadTextFileMaxWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("a\nb\nc\nd\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	vocab := NewVocabulary()
	added, err := LoadTextFile(path, vocab, 2)
	if err != nil {
		t.Fatalf("LoadTextFile: %v", err)
	}
	if added != 2 || vocab.Len() != 2 {
		t.Errorf("added = %d, Len = %d, want 2 and 2", added, vocab.Len())
	}
}

// writeChunk emits the binary chunk format: int32 count, then for each
// term a uint16 length, the bytes, and a uint16 rank.
func writeChunk(t *testing.T, path string, terms []string) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer file.Close()

	if err := binary.Write(file, binary.LittleEndian, int32(len(terms))); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, term := range terms {
		if err := binary.Write(file, binary.LittleEndian, uint16(len(term))); err != nil {
			t.Fatalf("write length: %v", err)
		}
		if _, err := file.Write([]byte(term)); err != nil {
			t.Fatalf("write term: %v", err)
		}
		if err := binary.Write(file, binary.LittleEndian, uint16(i+1)); err != nil {
			t.Fatalf("write rank: %v", err)
		}
	}
}

func TestLoadChunkDir(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, filepath.Join(dir, "dict_0001.bin"), []string{"cat", "cats"})
	writeChunk(t, filepath.Join(dir, "dict_0002.bin"), []string{"bat", "cat"})

	vocab := NewVocabulary()
	added, err := LoadChunkDir(dir, vocab, 0, 0)
	if err != nil {
		t.Fatalf("LoadChunkDir: %v", err)
	}
	if added != 3 {
		t.Errorf("added = %d, want 3 (cat deduplicated across chunks)", added)
	}
	for _, want := range []string{"cat", "cats", "bat"} {
		if !vocab.Has(want) {
			t.Errorf("vocabulary missing %q", want)
		}
	}
}

func TestLoadChunkDirSkipsInvalidChunk(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, filepath.Join(dir, "dict_0001.bin"), []string{"cat", "cats"})
	if err := os.WriteFile(filepath.Join(dir, "dict_0002.bin"), []byte{0x01}, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	vocab := NewVocabulary()
	added, err := LoadChunkDir(dir, vocab, 0, 0)
	if err != nil {
		t.Fatalf("LoadChunkDir: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2 (truncated chunk skipped)", added)
	}
}

func TestLoadChunkDirEmpty(t *testing.T) {
	vocab := NewVocabulary()
	if _, err := LoadChunkDir(t.TempDir(), vocab, 0, 0); err == nil {
		t.Error("expected an error for a directory without chunk files")
	}
}

func TestGetAvailableChunksSorted(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, filepath.Join(dir, "dict_0003.bin"), []string{"c"})
	writeChunk(t, filepath.Join(dir, "dict_0001.bin"), []string{"a"})
	writeChunk(t, filepath.Join(dir, "dict_0002.bin"), []string{"b"})

	chunks, err := GetAvailableChunks(dir)
	if err != nil {
		t.Fatalf("GetAvailableChunks: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("found %d chunks, want 3", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.ChunkID != i+1 {
			t.Errorf("chunks[%d].ChunkID = %d, want %d", i, chunk.ChunkID, i+1)
		}
		if chunk.WordCount != 1 {
			t.Errorf("chunks[%d].WordCount = %d, want 1", i, chunk.WordCount)
		}
	}
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()

	chunkPath := filepath.Join(dir, "dict_0001.bin")
	writeChunk(t, chunkPath, []string{"cat"})
	if format, err := DetectFileFormat(chunkPath); err != nil || format != FormatChunk {
		t.Errorf("DetectFileFormat(chunk) = %v, %v, want FormatChunk", format, err)
	}

	textPath := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(textPath, []byte("cat\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if format, err := DetectFileFormat(textPath); err != nil || format != FormatText {
		t.Errorf("DetectFileFormat(text) = %v, %v, want FormatText", format, err)
	}

	if _, err := DetectFileFormat(filepath.Join(dir, "mystery.dat")); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestValidateChunkFileRejectsTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict_0001.bin")
	if err := os.WriteFile(path, []byte{0x01}, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := ValidateChunkFile(path, 0); err == nil {
		t.Error("expected an error for a truncated chunk file")
	}
}
