package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// LoadTextFile reads one term per line into the vocabulary. Lines of the
// form "term count" are accepted too; the count is ignored since the
// index is unweighted. maxWords of 0 means no limit.
func LoadTextFile(path string, vocab *Vocabulary, maxWords int) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open dictionary file %s: %w", path, err)
	}
	defer file.Close()

	added := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if maxWords > 0 && added >= maxWords {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		term := line
		if fields := strings.Fields(line); len(fields) > 1 {
			term = fields[0]
		}
		if vocab.Add(term) {
			added++
		}
	}
	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("failed to read dictionary file %s: %w", path, err)
	}
	log.Debugf("Loaded %d terms from %s", added, path)
	return added, nil
}

// GetAvailableChunks scans a directory for dict_NNNN.bin chunk files and
// returns them sorted by chunk ID.
func GetAvailableChunks(dirPath string) ([]ChunkInfo, error) {
	pattern := filepath.Join(dirPath, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		basename := filepath.Base(file)
		idStr := strings.TrimSuffix(strings.TrimPrefix(basename, "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{
			ChunkID:   chunkID,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// LoadChunkDir loads every chunk file in the directory into the
// vocabulary, lowest chunk ID first, until maxWords terms are stored
// (0 for all). Chunks whose header fails validation against
// maxWordCount are skipped, not fatal.
func LoadChunkDir(dirPath string, vocab *Vocabulary, maxWords, maxWordCount int) (int, error) {
	chunks, err := GetAvailableChunks(dirPath)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no chunk files found in %s", dirPath)
	}

	added := 0
	loaded := 0
	for _, chunk := range chunks {
		if maxWords > 0 && added >= maxWords {
			break
		}
		if err := ValidateChunkFile(chunk.Filename, maxWordCount); err != nil {
			log.Warnf("Skipping invalid chunk %s: %v", chunk.Filename, err)
			continue
		}
		limit := 0
		if maxWords > 0 {
			limit = maxWords - added
		}
		n, err := loadChunk(chunk.Filename, vocab, limit)
		if err != nil {
			return added, err
		}
		added += n
		loaded++
	}
	log.Debugf("Loaded %d terms from %d chunks in %s", added, loaded, dirPath)
	return added, nil
}

// loadChunk reads one binary chunk: an int32 entry count followed by
// records of uint16 term length, the term bytes, and a uint16 rank.
// Ranks order words by frequency in the source corpus; the vocabulary
// only needs the terms.
func loadChunk(filename string, vocab *Vocabulary, maxWords int) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return 0, fmt.Errorf("failed to read chunk header: %w", err)
	}

	added := 0
	for count := 0; count < int(totalEntries); count++ {
		if maxWords > 0 && added >= maxWords {
			break
		}

		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				break
			}
			return added, fmt.Errorf("failed to read term length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return added, fmt.Errorf("failed to read term: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return added, fmt.Errorf("failed to read rank: %w", err)
		}

		if vocab.Add(string(wordBytes)) {
			added++
		}
	}
	log.Debugf("Chunk %s loaded: %d terms", filename, added)
	return added, nil
}
