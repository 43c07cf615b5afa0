/*
Package main implements spellc, the dictionary compiler.

spellc reads a plain text stream of whitespace-separated word/frequency pairs,
builds a radix trie, and writes the compact binary dictionary consumed by
spellserve. The compact image is position-independent and queried in place via
mmap, so compilation happens once and lookups never deserialize.

Usage:

	spellc [flags] <input.txt> <output.bin>

By default the compact image is written. -simple emits the stream form used
for round-trip testing, and -dot dumps the trie as a Graphviz digraph for
inspection.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/spellserve/spellserve/internal/utils"
	"github.com/spellserve/spellserve/pkg/config"
	"github.com/spellserve/spellserve/pkg/dictionary"
	"github.com/spellserve/spellserve/pkg/trie"
)

func main() {
	debugMode := flag.Bool("v", false, "Toggle verbose mode")
	configFile := flag.String("config", "", "Path to custom config.toml file")
	strictMode := flag.Bool("strict", false, "Reject malformed word/frequency pairs instead of skipping them")
	simpleForm := flag.Bool("simple", false, "Write the simple stream form instead of the compact image")
	dotForm := flag.Bool("dot", false, "Write a Graphviz dot dump instead of a binary dictionary")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input.txt> <output.bin>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)
	outputPath := flag.Arg(1)

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: %s", configPath)

	strict := *strictMode || appConfig.Compiler.Strict

	switch {
	case *dotForm:
		err = writeAlternate(inputPath, outputPath, strict, func(t *trie.Trie, w *bufio.Writer) error {
			return t.WriteDot(w)
		})
	case *simpleForm:
		err = writeAlternate(inputPath, outputPath, strict, func(t *trie.Trie, w *bufio.Writer) error {
			return t.Write(w)
		})
	default:
		var count int
		count, err = dictionary.BuildFile(inputPath, outputPath, strict)
		if err == nil {
			log.Debugf("Compiled %s pairs into %s", utils.FormatWithCommas(count), outputPath)
		}
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

// writeAlternate parses the source and hands the trie to an alternate
// output encoder (simple stream form or dot dump).
func writeAlternate(inputPath, outputPath string, strict bool, write func(*trie.Trie, *bufio.Writer) error) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	t := trie.New()
	if _, err := dictionary.LoadText(bufio.NewReader(in), t, strict); err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	if err := write(t, w); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
