// Package cli handles cmd line input for DBG and testing similarity queries interactively
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bizzyvinci/levserve/internal/utils"
	"github.com/bizzyvinci/levserve/pkg/similarity"
)

// InputHandler processes user input from stdin, printing the most
// similar vocabulary terms for each entered query. Flags control term
// length bounds, result limit, and input filtering.
type InputHandler struct {
	index         *similarity.Index
	minTermLength int
	maxTermLength int
	resultLimit   int
	noFilter      bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(index *similarity.Index, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		index:         index,
		minTermLength: minLength,
		maxTermLength: maxLength,
		resultLimit:   limit,
		noFilter:      noFilter,
	}
}

// Start begins the interface loop. It continuously prompts for input,
// reads a line from stdin, and passes the trimmed term to handleInput.
// Loop terminates if an error occurs while reading from stdin.
func (h *InputHandler) Start() error {
	log.Print("levserve CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a term and press Enter to see similar vocabulary terms (Ctrl+C to exit):")

	for {
		log.Print("> ")
		term, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		h.handleInput(term)
	}
}

// handleInput runs a single similarity query and prints ranked results.
func (h *InputHandler) handleInput(term string) {
	if len(term) < h.minTermLength {
		log.Errorf("Term too short: %s", term)
		return
	}
	if len(term) > h.maxTermLength {
		log.Errorf("Term too long: %s", term)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidInput(term) {
			log.Infof("No results for term: '%s'", term)
			return
		}
	} else {
		log.Debug("Input filtering disabled")
	}

	start := time.Now()
	results, err := h.index.MostSimilar(term, h.resultLimit)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("Query failed for '%s': %v", term, err)
		return
	}
	log.Debugf("Took [ %v ] for term '%s'", elapsed, term)

	if len(results) == 0 {
		log.Warnf("No similar terms found for: '%s'", term)
		return
	}

	log.Printf("Found %d similar terms for '%s':", len(results), term)
	for i, r := range results {
		clTerm := fmt.Sprintf("\033[38;5;75m%s\033[0m", r.Term)
		log.Printf("%2d. %-40s (score: %.4f)", i+1, clTerm, r.Score)
	}
}
