package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/reoring/tableopts"
	"github.com/reoring/tableopts/i18n"
	"github.com/reoring/tableopts/internal/config"
	"github.com/reoring/tableopts/internal/docload"
	"github.com/reoring/tableopts/internal/logging"
	"github.com/reoring/tableopts/internal/web"
	_ "github.com/reoring/tableopts/source" // go-json driver
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// .env is optional; the environment always wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	i18n.SetLanguage(cfg.Logging.Lang)

	sub := os.Args[1]
	switch sub {
	case "decode":
		os.Exit(decodeCmd(cfg, os.Args[2:]))
	case "watch":
		os.Exit(watchCmd(cfg, os.Args[2:]))
	case "dups":
		os.Exit(dupsCmd(cfg, os.Args[2:]))
	case "serve":
		os.Exit(serveCmd(cfg))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `tableopts: decode table reading options

Usage:
  tableopts decode [flags] [file|-]   decode a document and print the options as JSON
  tableopts watch [flags] file        decode again whenever the file changes
  tableopts dups [-max N] [file|-]    list repeated keys in a JSON document
  tableopts serve                     run the HTTP validation API

Flags (decode, watch):
  -format json|yaml      document syntax (default from extension or DECODE_DEFAULT_FORMAT)
  -dup ignore|warn|error duplicate key policy (default DECODE_DUPLICATE_KEYS)
  -max-depth N           nesting limit (default DECODE_MAX_DEPTH)
  -max-bytes N           size limit (default DECODE_MAX_BYTES)
  -fields default|none   field-list decoder; none accepts any array and keeps no fields`)
}

// decodeFlags holds the flags shared by decode and watch.
type decodeFlags struct {
	format   string
	dup      string
	maxDepth int
	maxBytes int64
	fields   string
}

func (f *decodeFlags) register(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&f.format, "format", "", "document syntax: json or yaml")
	fs.StringVar(&f.dup, "dup", cfg.Decode.DuplicateKeys, "duplicate key policy: ignore, warn, error")
	fs.IntVar(&f.maxDepth, "max-depth", cfg.Decode.MaxDepth, "maximum nesting depth (0 = unlimited)")
	fs.Int64Var(&f.maxBytes, "max-bytes", cfg.Decode.MaxBytes, "maximum document size (0 = unlimited)")
	fs.StringVar(&f.fields, "fields", "default", "field-list decoder: default or none")
}

func (f *decodeFlags) parseOpt() (tableopts.ParseOpt, error) {
	sev, ok := tableopts.ParseSeverity(f.dup)
	if !ok {
		return tableopts.ParseOpt{}, fmt.Errorf("invalid -dup %q", f.dup)
	}
	return tableopts.ParseOpt{
		Strictness: tableopts.Strictness{OnDuplicateKey: sev},
		MaxDepth:   f.maxDepth,
		MaxBytes:   f.maxBytes,
	}, nil
}

func (f *decodeFlags) resolveFormat(cfg *config.Config, path string) (docload.Format, error) {
	if f.format != "" {
		return docload.ParseFormat(f.format)
	}
	if ff, ok := docload.FormatFromPath(path); ok {
		return ff, nil
	}
	return docload.ParseFormat(cfg.Decode.DefaultFormat)
}

func (f *decodeFlags) decoder() (*tableopts.Decoder, error) {
	opts := []tableopts.DecoderOption{tableopts.WithLogger(slog.Default())}
	switch f.fields {
	case "default":
	case "none":
		opts = append(opts, tableopts.WithFieldListDecoder(func(tableopts.Node) ([]tableopts.Field, error) {
			return nil, nil
		}))
	default:
		return nil, fmt.Errorf("invalid -fields %q", f.fields)
	}
	return tableopts.NewDecoder(opts...), nil
}

func decodeCmd(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	var df decodeFlags
	df.register(fs, cfg)
	_ = fs.Parse(args)

	path := fs.Arg(0)
	res, err := decodeFile(cfg, &df, path)
	if err != nil {
		printFailure(err)
		return 1
	}
	for _, w := range res.Warnings {
		slog.Warn("options document", "code", w.Code, "path", w.Path, "message", w.Message)
	}
	out, err := json.MarshalIndent(res.Options, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

func decodeFile(cfg *config.Config, df *decodeFlags, path string) (docload.Result, error) {
	opt, err := df.parseOpt()
	if err != nil {
		return docload.Result{}, err
	}
	format, err := df.resolveFormat(cfg, path)
	if err != nil {
		return docload.Result{}, err
	}
	dec, err := df.decoder()
	if err != nil {
		return docload.Result{}, err
	}
	data, err := readInput(path, opt.MaxBytes)
	if err != nil {
		return docload.Result{}, err
	}
	return docload.Decode(dec, data, format, opt)
}

// readInput reads path, or stdin for "" and "-". It reads one byte past
// limit so docload can report oversized input.
func readInput(path string, limit int64) ([]byte, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open options: %w", err)
		}
		defer f.Close()
		r = f
	}
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	return data, nil
}

func dupsCmd(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("dups", flag.ExitOnError)
	limit := fs.Int("max", 0, "stop after N duplicates (0 = all)")
	_ = fs.Parse(args)

	data, err := readInput(fs.Arg(0), cfg.Decode.MaxBytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if cfg.Decode.MaxBytes > 0 && int64(len(data)) > cfg.Decode.MaxBytes {
		fmt.Fprintln(os.Stderr, "error: max bytes exceeded")
		return 1
	}
	iss, err := tableopts.FindDuplicateKeysBytes(data, *limit)
	if err != nil {
		printFailure(err)
		return 1
	}
	for _, is := range iss {
		fmt.Printf("%s\t%s\n", is.Path, is.Message)
	}
	if len(iss) > 0 {
		return 3
	}
	return 0
}

func printFailure(err error) {
	is, ok := tableopts.AsIssue(err)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", i18n.T(is.Code, nil), is.Message)
	if is.Path != "" && is.Path != "/" {
		fmt.Fprintf(os.Stderr, "  at %s\n", is.Path)
	}
}

func serveCmd(cfg *config.Config) int {
	srv := web.NewServer(cfg, tableopts.NewDecoder(tableopts.WithLogger(slog.Default())))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server failed", "error", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("shutdown failed", "error", err)
		return 1
	}
	return 0
}
