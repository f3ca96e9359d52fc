package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/arhrid/agent-translator/config"
	"github.com/arhrid/agent-translator/internal/backend"
	"github.com/arhrid/agent-translator/internal/detect"
	"github.com/arhrid/agent-translator/internal/dispatcher"
	"github.com/arhrid/agent-translator/internal/probe"
	"github.com/arhrid/agent-translator/internal/selector"
	"github.com/arhrid/agent-translator/pkg/logger"
)

type cliFlags struct {
	source         string
	target         string
	apiURL         string
	localURL       string
	noLocalShort   bool
	shortThreshold int
	check          bool
	logLevel       string
	jsonLog        bool
}

func main() {
	flags, fs := parseFlags(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	cfg.Apply(buildOverrides(fs, flags))
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}

	pol, err := cfg.Policy()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, flags.jsonLog)

	if flags.check {
		if ok := runCheck(ctx, log, flags.apiURL, pol); !ok {
			os.Exit(1)
		}
		return
	}

	text, err := readInput(fs.Args(), os.Stdin)
	if err != nil {
		log.Error("failed to read input", slog.Any("err", err))
		os.Exit(1)
	}

	if strings.TrimSpace(text) == "" {
		return
	}

	source, target := resolveLanguages(flags.source, flags.target, text)
	if source != "" && source == target {
		fmt.Print(text)
		return
	}

	candidates := selector.Candidates(text, flags.apiURL, pol)
	log.Debug("selected candidates",
		slog.Any("candidates", candidates),
		slog.Int("words", selector.WordCount(text)))

	d := dispatcher.New(log)
	result, err := d.Dispatch(ctx, dispatcher.Build(candidates, pol), backend.Request{
		Text:   text,
		Source: source,
		Target: target,
		APIKey: pol.APIKey,
	})
	if err != nil {
		log.Error("translation failed", slog.Any("err", err))
		fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
		os.Exit(1)
	}

	if result.DetectedSource != "" {
		log.Debug("backend detected source language",
			slog.String("language", result.DetectedSource),
			slog.String("backend", result.BackendURL))
	}

	fmt.Print(result.Text)
}

func parseFlags(args []string) (cliFlags, *flag.FlagSet) {
	var flags cliFlags

	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	fs.StringVar(&flags.source, "s", "", "source language code (en or es), defaults to auto-detect")
	fs.StringVar(&flags.source, "source", "", "source language code (en or es), defaults to auto-detect")
	fs.StringVar(&flags.target, "t", "", "target language code (en or es), defaults to the opposite of the source")
	fs.StringVar(&flags.target, "target", "", "target language code (en or es), defaults to the opposite of the source")
	fs.StringVar(&flags.apiURL, "u", "", "explicit translation API URL, disables local/remote selection")
	fs.StringVar(&flags.apiURL, "api-url", "", "explicit translation API URL, disables local/remote selection")
	fs.StringVar(&flags.localURL, "local-url", "", "local translation server URL (env LT_LOCAL_URL)")
	fs.BoolVar(&flags.noLocalShort, "no-local-short", false, "do not prefer the local server for short texts (env LT_DISABLE_LOCAL_SHORT)")
	fs.IntVar(&flags.shortThreshold, "short-threshold", 0, "word threshold for using the local server (env LT_LOCAL_SHORT_THRESHOLD)")
	fs.BoolVar(&flags.check, "check", false, "probe candidate backends for reachability and exit")
	fs.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVar(&flags.jsonLog, "json-log", false, "emit logs as JSON lines")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: translate [flags] [text]")
		fmt.Fprintln(fs.Output(), "Translates text between English and Spanish. Reads stdin when no text argument is given.")
		fs.PrintDefaults()
	}

	fs.Parse(args)
	return flags, fs
}

// buildOverrides converts flags the user actually set into config overrides,
// so unset flags never mask environment or file values.
func buildOverrides(fs *flag.FlagSet, flags cliFlags) config.Overrides {
	var o config.Overrides

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "local-url":
			o.LocalURL = &flags.localURL
		case "no-local-short":
			o.DisableLocalShort = &flags.noLocalShort
		case "short-threshold":
			o.LocalShortThreshold = &flags.shortThreshold
		}
	})

	return o
}

// readInput returns the positional text argument, or all of stdin when no
// argument was given.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// resolveLanguages fills in the unspecified languages. The source stays
// empty (backend auto-detect) unless given; a missing target defaults to
// the opposite of the locally detected source language.
func resolveLanguages(source, target, text string) (string, string) {
	if target == "" {
		known := source
		if known == "" {
			known = detect.Guess(text)
		}
		target = detect.Opposite(known)
	}

	return source, target
}

func runCheck(ctx context.Context, log *slog.Logger, overrideURL string, pol config.Policy) bool {
	candidates := selector.Candidates("", overrideURL, pol)

	anyUp := false
	for _, u := range candidates {
		timeout := pol.RemoteTimeout
		if u == pol.LocalURL {
			timeout = pol.LocalTimeout
		}

		if err := probe.Check(ctx, u, timeout); err != nil {
			log.Warn("backend unreachable", slog.String("backend", u), slog.Any("err", err))
			fmt.Printf("%s\tDOWN\n", u)
			continue
		}

		anyUp = true
		fmt.Printf("%s\tUP\n", u)
	}

	return anyUp
}
