package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	pb "github.com/cheggaaa/pb/v3"

	"github.com/FitrahHaque/huffpack/compressor/huffman"
	"github.com/FitrahHaque/huffpack/logger"
)

var Engines = [...]string{
	"huffman",
	"huffman-legacy",
}

var formats = map[string]huffman.Format{
	"huffman":        huffman.FormatTagged,
	"huffman-legacy": huffman.FormatLegacy,
}

var ErrUnknownFormat = errors.New("unknown format")

type Config struct {
	// Format is one of Engines.
	Format string
	// DropNewlines removes '\n' from decompressed output, as the original
	// tool did.
	DropNewlines bool
	// Progress draws a byte counter on ProgressOutput.
	Progress       bool
	ProgressOutput io.Writer
	Logger         logger.Logger
}

func DefaultConfig() Config {
	return Config{
		Format:         Engines[0],
		ProgressOutput: os.Stderr,
		Logger:         logger.Nop(),
	}
}

type Stats struct {
	InputBytes  int
	OutputBytes int
	Elapsed     time.Duration
}

// Ratio is the output size as a percentage of the input size.
func (s Stats) Ratio() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.OutputBytes) / float64(s.InputBytes) * 100
}

type compressor struct {
	compressionEngine string
	options           []huffman.Option
	content           []byte
}

func lookupFormat(cfg Config) (huffman.Format, error) {
	format, ok := formats[cfg.Format]
	if !ok {
		return 0, fmt.Errorf("%w %q, choices include: %v", ErrUnknownFormat, cfg.Format, Engines)
	}
	return format, nil
}

func newCompressor(cfg Config, total int) (*compressor, func(), error) {
	format, err := lookupFormat(cfg)
	if err != nil {
		return nil, nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	c := &compressor{
		compressionEngine: cfg.Format,
		options: []huffman.Option{
			huffman.WithFormat(format),
			huffman.WithDropNewlines(cfg.DropNewlines),
			huffman.WithStageHook(func(s huffman.Stage) {
				log.Debugf("%s: %s", cfg.Format, s)
			}),
		},
	}
	finish := func() {}
	if cfg.Progress {
		bar := pb.New(total)
		bar.Set(pb.Bytes, true)
		if cfg.ProgressOutput != nil {
			bar.SetWriter(cfg.ProgressOutput)
		}
		bar.Start()
		c.options = append(c.options, huffman.WithProgress(func(n int) {
			bar.Add(n)
		}))
		finish = func() { bar.Finish() }
	}
	return c, finish, nil
}

func (c *compressor) write(content []byte) (int, error) {
	var b bytes.Buffer
	w := huffman.NewCompressionWriter(&b, c.options...)
	if _, err := w.Write(content); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	c.content = b.Bytes()
	return len(c.content), nil
}

func (c *compressor) read(compressed []byte) (int, error) {
	r, w := huffman.NewDecompressionReaderAndWriter(c.options...)
	defer r.Close()
	if _, err := w.Write(compressed); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	c.content = content
	return len(content), nil
}

// Compress runs the configured codec over content held in memory.
func Compress(cfg Config, content []byte) ([]byte, error) {
	c, finish, err := newCompressor(cfg, len(content))
	if err != nil {
		return nil, err
	}
	defer finish()
	if _, err := c.write(content); err != nil {
		return nil, fmt.Errorf("%s: %w", c.compressionEngine, err)
	}
	return c.content, nil
}

// Decompress reverses Compress with the same configuration.
func Decompress(cfg Config, compressed []byte) ([]byte, error) {
	c, finish, err := newCompressor(cfg, len(compressed))
	if err != nil {
		return nil, err
	}
	defer finish()
	if _, err := c.read(compressed); err != nil {
		return nil, fmt.Errorf("%s: %w", c.compressionEngine, err)
	}
	return c.content, nil
}

func CompressFile(cfg Config, filePath, outputFileName string) (Stats, error) {
	return processFile(cfg, filePath, outputFileName, "Compressing", Compress)
}

func DecompressFile(cfg Config, filePath, outputFileName string) (Stats, error) {
	return processFile(cfg, filePath, outputFileName, "Decompressing", Decompress)
}

func processFile(cfg Config, filePath, outputFileName, verb string, run func(Config, []byte) ([]byte, error)) (Stats, error) {
	// fail on a bad format before touching the file system
	if _, err := lookupFormat(cfg); err != nil {
		return Stats{}, err
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	start := time.Now()
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		return Stats{}, fmt.Errorf("read input: %w", err)
	}
	cfg.Logger.Infof("%s %s...", verb, filePath)
	result, err := run(cfg, fileContent)
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w", filePath, err)
	}
	if err = os.WriteFile(outputFileName, result, 0644); err != nil {
		return Stats{}, fmt.Errorf("write output: %w", err)
	}
	stats := Stats{
		InputBytes:  len(fileContent),
		OutputBytes: len(result),
		Elapsed:     time.Since(start),
	}
	cfg.Logger.Infof("Input size (in bytes): %v", stats.InputBytes)
	cfg.Logger.Infof("Output size (in bytes): %v", stats.OutputBytes)
	cfg.Logger.Infof("Ratio: %.2f%% in %v", stats.Ratio(), stats.Elapsed.Round(time.Millisecond))
	return stats, nil
}
