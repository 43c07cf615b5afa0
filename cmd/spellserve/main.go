/*
Package main implements the spellserve query server and commandline interface.

spellserve answers approximate dictionary lookups: given a query word and a
maximum Damerau-Levenshtein distance, it returns every dictionary word within
the bound, ranked by distance, frequency and word order. The dictionary is a
compact binary image produced by spellc, memory-mapped at startup and walked
in place for every query.

# Line Mode

The default mode reads whitespace-separated (tag, max_distance, word) triples
from stdin and prints one JSON array per request:

	$ echo "approx 1 chein" | spellserve dict.bin
	[{"word":"chien","freq":100,"distance":1}]

A negative max_distance or an empty word yields an empty array.

# IPC Mode

With -ipc the server speaks msgpack over stdin/stdout for editor/client
integrations; see pkg/server for the protocol.

# Config

Runtime configuration is managed via a config.toml file, which supports
settings for the IPC server, compiler, and CLI. A default configuration is
created automatically if one does not exist.
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

	"github.com/spellserve/spellserve/internal/cli"
	"github.com/spellserve/spellserve/internal/utils"
	"github.com/spellserve/spellserve/pkg/config"
	"github.com/spellserve/spellserve/pkg/dictionary"
	"github.com/spellserve/spellserve/pkg/server"
)

const (
	Version = "0.1.0"
	AppName = "spellserve"
	gh      = "https://github.com/spellserve/spellserve"
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

// main calls other packages to run the query loop or the IPC server.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "", "Path to custom config.toml file")
	debugMode := flag.Bool("v", false, "Toggle verbose mode")
	ipcMode := flag.Bool("ipc", false, "Speak msgpack IPC instead of the line protocol")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <dict.bin>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[SpellServe] Serves ranked approximate word lookups!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use --help to see available options")
		logger.Print("")
		logger.Print("Find out more at", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	dictPath := flag.Arg(0)

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: %s", utils.GetAbsolutePath(configPath))

	img, err := dictionary.Open(dictPath)
	if err != nil {
		log.Fatalf("Failed to open dictionary: %v", err)
	}
	defer img.Close()

	if *ipcMode {
		log.Debug("spawning IPC")
		srv := server.NewServer(img, appConfig, configPath)
		showStartupInfo(dictPath, img.Size())
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	handler := cli.NewInputHandler(img, *debugMode || appConfig.CLI.Debug)
	if err := handler.Start(); err != nil {
		log.Fatalf("Query loop error: %v", err)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dictPath string, size int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("dict: ( %s ) %d bytes mapped", dictPath, size)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
