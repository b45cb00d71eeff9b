/*
Package main implements the similarity server and CLI application.

levserve answers "which vocabulary terms look like this one" using a
prefix-tree index intersected with a bounded edit-distance automaton,
scored with the Charlet-Damnati similarity formula. It can operate as a
msgpack IPC server over stdin/stdout for integration with other
processes, or as a CLI for testing and debugging.

# Usage

Start the server against a text dictionary:

	levserve -data words.txt

Use a directory of binary chunk files and enable debug logging:

	levserve -data /path/to/chunks -d

Run in CLI mode for interactive testing:

	levserve -data words.txt -c -limit 10

# Configuration

Runtime configuration is managed through a TOML file:

	[index]
	alpha = 1.8
	beta = 5.0
	threshold = 0.0
	max_distance = 2

	[server]
	max_limit = 64
	min_term = 1
	max_term = 60
	enable_filter = true

The config file is created with defaults if it doesn't exist; the
-alpha, -beta, -threshold and -maxdist flags override it per run.

# IPC Protocol

The server communicates via msgpack over stdin/stdout. A query frame:

	{"id": "req1", "t": "cat", "n": 10}

returns matches ranked by descending similarity:

	{"id": "req1", "m": [{"w": "cats", "s": 0.4271}], "c": 1, "t": 145}
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bizzyvinci/levserve/internal/cli"
	"github.com/bizzyvinci/levserve/internal/logger"
	"github.com/bizzyvinci/levserve/internal/utils"
	"github.com/bizzyvinci/levserve/pkg/config"
	"github.com/bizzyvinci/levserve/pkg/dictionary"
	"github.com/bizzyvinci/levserve/pkg/server"
	"github.com/bizzyvinci/levserve/pkg/similarity"
)

const (
	Version = "0.2.0"
	AppName = "levserve"
	gh      = "https://github.com/bizzyvinci/levserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary, index and the chosen frontend together.
// It does not implement their logic and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Dictionary source: a .txt file or a directory of chunk files")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 10, "Number of similar terms to return in CLI mode")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering (DBG only)")
	wordLimit := flag.Int("words", 0, "Maximum number of terms to load (use 0 for all)")
	alpha := flag.Float64("alpha", -1, "Override scoring factor alpha (negative keeps config value)")
	beta := flag.Float64("beta", -1, "Override scoring factor beta (negative keeps config value)")
	threshold := flag.Float64("threshold", -1, "Override similarity threshold (negative keeps config value)")
	maxDist := flag.Int("maxdist", -1, "Override max edit distance (negative keeps config value)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, _ := config.LoadConfigWithPriority(*configPath)
	log.Debugf("Config loaded from: %s", utils.GetAbsolutePath(activePath))
	applyOverrides(cfg, *alpha, *beta, *threshold, *maxDist)

	vocab := dictionary.NewVocabulary()
	maxWords := *wordLimit
	if maxWords == 0 {
		maxWords = cfg.Dict.MaxWords
	}

	switch {
	case *dataPath == "":
		log.Warn("No dictionary specified, running with empty vocabulary...")
	case utils.IsDir(*dataPath):
		if _, err := dictionary.LoadChunkDir(*dataPath, vocab, maxWords, cfg.Dict.MaxWordCountValidation); err != nil {
			log.Fatalf("Failed to load chunk dir %s: %v", *dataPath, err)
		}
	default:
		if format, err := dictionary.DetectFileFormat(*dataPath); err == nil && format == dictionary.FormatChunk {
			log.Fatalf("%s is a single chunk file; point -data at its directory", *dataPath)
		}
		if _, err := dictionary.LoadTextFile(*dataPath, vocab, maxWords); err != nil {
			log.Fatalf("Failed to load dictionary %s: %v", *dataPath, err)
		}
	}
	log.Debugf("Vocabulary ready: %s terms", utils.FormatWithCommas(vocab.Len()))

	index, err := similarity.NewIndex(vocab, similarity.Options{
		Alpha:       cfg.Index.Alpha,
		Beta:        cfg.Index.Beta,
		Threshold:   cfg.Index.Threshold,
		MaxDistance: cfg.Index.MaxDistance,
	})
	if err != nil {
		log.Fatalf("Failed to build index: %v", err)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(index, cfg.Server.MinTerm, cfg.Server.MaxTerm, *limit, *noFilter)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	srv := server.NewServer(index, cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// applyOverrides folds per-run flag overrides into the loaded config.
func applyOverrides(cfg *config.Config, alpha, beta, threshold float64, maxDist int) {
	if alpha >= 0 {
		cfg.Index.Alpha = alpha
	}
	if beta >= 0 {
		cfg.Index.Beta = beta
	}
	if threshold >= 0 {
		cfg.Index.Threshold = threshold
	}
	if maxDist >= 0 {
		cfg.Index.MaxDistance = maxDist
	}
}

func printVersion() {
	logger := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ levserve ] Fast approximate term matching!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
