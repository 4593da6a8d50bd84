package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/FitrahHaque/huffpack/engine"
	"github.com/FitrahHaque/huffpack/logger"
)

var Commands = [...]string{"compress", "decompress"}

type usageError string

func (e usageError) Error() string {
	return string(e)
}

func main() {
	os.Exit(run(filepath.Base(os.Args[0]), os.Args[1:], color.Error))
}

func run(application string, args []string, stderr io.Writer) int {
	err := execute(application, args, stderr)
	if err == nil {
		return 0
	}
	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(stderr, usage)
		fmt.Fprintf(stderr, "Usage: %s [flags] <%s> <input file> <output file>\n", application, strings.Join(Commands[:], "|"))
		return 1
	}
	if !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(stderr, "%s: %v\n", application, err)
	}
	return 1
}

// isTerminal reports whether w is backed by a terminal. Writers without a
// file descriptor, such as buffers, are not.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func execute(application string, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet(application, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage of %s [flags] <%s> <input file> <output file>\n", application, strings.Join(Commands[:], "|"))
		fmt.Fprintf(stderr, "Flag:\n")
		fs.PrintDefaults()
	}
	defaults := engine.DefaultConfig()
	format := fs.String("format", defaults.Format, fmt.Sprintf("Tree format, choices include: \n\t%s", strings.Join(engine.Engines[:], ", ")))
	dropNewlines := fs.Bool("drop-newlines", false, "Leave '\\n' out of decompressed output")
	progress := fs.Bool("progress", isTerminal(stderr), "Show a progress bar")
	quiet := fs.Bool("quiet", false, "Only report errors")
	verbose := fs.Bool("verbose", false, "Report every pipeline stage")
	noColor := fs.Bool("no-color", false, "Disable coloured output")

	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 3 {
		return usageError(fmt.Sprintf("expected 3 arguments, got %d", len(positional)))
	}
	if *noColor {
		color.NoColor = true
	}

	level := logger.LevelInfo
	if *verbose {
		level = logger.LevelDebug
	}
	cfg := defaults
	cfg.Format = *format
	cfg.DropNewlines = *dropNewlines
	cfg.Progress = *progress && !*quiet
	cfg.ProgressOutput = stderr
	cfg.Logger = logger.New(stderr, level)
	if *quiet {
		cfg.Logger = logger.Nop()
	}

	mode, inputFile, outputFile := positional[0], positional[1], positional[2]
	switch mode {
	case Commands[0]:
		_, err = engine.CompressFile(cfg, inputFile, outputFile)
	case Commands[1]:
		_, err = engine.DecompressFile(cfg, inputFile, outputFile)
	default:
		return usageError(fmt.Sprintf("Invalid mode: %s", mode))
	}
	if errors.Is(err, engine.ErrUnknownFormat) {
		return usageError(err.Error())
	}
	return err
}

// parseInterleaved lets flags appear before, between or after the
// positional arguments.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
