package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/fieldref/discover"
	"github.com/wippyai/fieldref/internal/config"
	"github.com/wippyai/fieldref/internal/watch"
	"github.com/wippyai/fieldref/resolver"
	"github.com/wippyai/fieldref/structref"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to layout description file (TOML)")
		typeName    = flag.String("type", "", "Layout to report (default: all)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		watchFile   = flag.Bool("watch", false, "Re-render when the file changes")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: fieldref -config <layouts.toml> [-type name] [-watch]")
		fmt.Fprintln(os.Stderr, "       fieldref -config <layouts.toml> -i  (interactive mode)")
		os.Exit(1)
	}

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	resolver.SetLogger(log.Named("resolver"))
	discover.SetLogger(log.Named("discover"))
	structref.SetLogger(log.Named("structref"))

	if *interactive {
		if err := runInteractive(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(os.Stdout, *configFile, *typeName, styled); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !*watchFile {
			os.Exit(1)
		}
	}

	if *watchFile {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := watchLoop(ctx, log, *configFile, *typeName, styled); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func run(w io.Writer, path, typeName string, styled bool) error {
	file, err := config.Load(path)
	if err != nil {
		return err
	}

	layouts := file.Layouts
	if typeName != "" {
		l, ok := file.Lookup(typeName)
		if !ok {
			return fmt.Errorf("layout %q not found in %s", typeName, path)
		}
		layouts = []config.Layout{l}
	}

	for i, l := range layouts {
		r, err := buildReport(l)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		if styled {
			renderStyled(w, r)
		} else {
			renderPlain(w, r)
		}
	}
	return nil
}

func watchLoop(ctx context.Context, log *zap.Logger, path, typeName string, styled bool) error {
	w, err := watch.New(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Close()

	log.Info("watching", zap.String("path", path))
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stdout)
			if err := run(os.Stdout, path, typeName, styled); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		case err := <-w.Errors():
			log.Warn("watch error", zap.Error(err))
		}
	}
}
