package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/reoring/tableopts"
	"github.com/reoring/tableopts/internal/config"
)

func watchCmd(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var df decodeFlags
	df.register(fs, cfg)
	_ = fs.Parse(args)

	path := fs.Arg(0)
	if path == "" || path == "-" {
		fmt.Fprintln(os.Stderr, "watch: a file path is required")
		return 2
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("create watcher", "error", err)
		return 1
	}
	defer watcher.Close()

	// Editors replace files on save, so watch the directory and filter.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		slog.Error("watch directory", "dir", filepath.Dir(abs), "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report(cfg, &df, abs)
	for {
		select {
		case <-ctx.Done():
			return 0
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			report(cfg, &df, abs)
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			slog.Error("watcher", "error", err)
		}
	}
}

func report(cfg *config.Config, df *decodeFlags, path string) {
	res, err := decodeFile(cfg, df, path)
	if err != nil {
		attrs := []any{"file", path, "error", err}
		if is, ok := tableopts.AsIssue(err); ok {
			attrs = append(attrs, "code", is.Code, "path", is.Path)
		}
		slog.Error("options invalid", attrs...)
		return
	}
	for _, w := range res.Warnings {
		slog.Warn("options document", "file", path, "code", w.Code, "path", w.Path, "message", w.Message)
	}
	slog.Info("options decoded",
		"file", path,
		"table", res.Options.QualifiedName(filepath.Base(path)),
		"fields", len(res.Options.Fields),
	)
}
