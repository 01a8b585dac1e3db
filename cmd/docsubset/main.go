// docsubset - documentation subset server
//
// docsubset derives a reduced, self-consistent site configuration from a
// full navigation-tree configuration so that only a chosen section of the
// documentation corpus is built and served:
//
//	docsubset langgraph            # serve only the LangGraph section
//	docsubset -no-serve -diff core # generate the subset config and show changes
//
// The selected section is located in the nav (breadth-first, so shallow
// sections win over deeper ones sharing a label), every unused top-level
// content directory is excluded via the exclusion plugin, and cross-package
// reference resolution is disabled so the build tool never chases symbols
// from excluded sections. Custom YAML tags in the source configuration
// survive the rewrite unchanged.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"docsubset/internal/document"
	"docsubset/internal/infrastructure/config"
	"docsubset/internal/infrastructure/logging"
	"docsubset/internal/process"
	"docsubset/internal/subset"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) so the serve process
	// is shut down and the generated file removed.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docsubset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		settingsPath string
		configPath   string
		outPath      string
		docsDir      string
		port         int
		clean        bool
		noServe      bool
		showDiff     bool
		showVersion  bool
	)
	fs.StringVar(&settingsPath, "settings", "", "path to an optional docsubset settings file")
	fs.StringVar(&configPath, "config", "", "path to the input site configuration (default mkdocs.yml)")
	fs.StringVar(&outPath, "out", "", "path for the generated subset configuration (default mkdocs.subset.yml)")
	fs.StringVar(&docsDir, "docs-dir", "", "content root to enumerate for exclusions (default docs)")
	fs.IntVar(&port, "port", 0, "port to serve on (default 8000)")
	fs.BoolVar(&clean, "clean", false, "build a clean version (no dirty reload)")
	fs.BoolVar(&noServe, "no-serve", false, "generate the subset configuration without serving it")
	fs.BoolVar(&showDiff, "diff", false, "print a summary of configuration changes to stdout")
	fs.BoolVar(&showVersion, "version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: docsubset [flags] SECTION\n\n")
		fmt.Fprintf(fs.Output(), "SECTION is the nav section to build (e.g. 'LangGraph'), case-insensitive.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showVersion {
		fmt.Printf("docsubset %s (commit %s, built %s)\n", version, commit, date)
		return nil
	}
	section := fs.Arg(0)
	if section == "" {
		fs.Usage()
		return fmt.Errorf("missing SECTION argument")
	}

	log := logging.Default()

	cfg, err := config.Load(settingsPath)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	// Flags override the settings file.
	if configPath != "" {
		cfg.Docs.Config = configPath
	}
	if outPath != "" {
		cfg.Docs.Output = outPath
	}
	if docsDir != "" {
		cfg.Docs.Dir = docsDir
	}
	if port != 0 {
		cfg.Serve.Port = port
	}
	if clean {
		cfg.Serve.Clean = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log = logging.New(cfg.Logging, version)

	target, resolved := cfg.ResolveAlias(section)
	if resolved {
		log.Info("resolved alias", "alias", section, "section", target)
	}

	raw, err := os.ReadFile(cfg.Docs.Config)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.Docs.Config, err)
	}
	codec := document.NewCodec()
	doc, err := codec.Decode(raw)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", cfg.Docs.Config, err)
	}

	result, err := subset.Apply(doc, subset.Options{
		Section:           target,
		AlwaysShownMarker: cfg.Docs.AlwaysShownMarker,
		HomePage:          cfg.Docs.HomePage,
		AlwaysKeep:        cfg.Docs.AlwaysKeep,
		DocsRoots:         listDocsRoots(cfg.Docs.Dir, log),
		ExcludePlugin:     cfg.Docs.ExcludePlugin,
		RefPlugin:         cfg.Docs.RefPlugin,
	})
	if err != nil {
		return err
	}
	log.Info("section matched",
		"section", result.Matched,
		"kept_roots", result.KeptRoots,
	)
	if len(result.Patterns) > 0 {
		log.Info("excluding content", "patterns", result.Patterns)
	}

	out, err := codec.Encode(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Docs.Output, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Docs.Output, err)
	}
	log.Info("generated subset configuration", "path", cfg.Docs.Output)

	if showDiff {
		if summary := subset.Summary(raw, out); summary != "" {
			fmt.Print(summary)
		}
	}

	if noServe {
		return nil
	}
	defer func() {
		if removeErr := os.Remove(cfg.Docs.Output); removeErr != nil {
			log.Warn("could not remove generated configuration", "path", cfg.Docs.Output, "error", removeErr)
		} else {
			log.Info("removed generated configuration", "path", cfg.Docs.Output)
		}
	}()

	return serve(ctx, cfg, result.Matched, log)
}

// serve launches the external build tool against the generated
// configuration and blocks until it exits or ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, section string, log *logging.Logger) error {
	actualPort := cfg.Serve.Port
	if !isPortAvailable(cfg.Serve.Host, actualPort) {
		log.Warn("requested port is in use", "port", actualPort)
		free, err := findAvailablePort(cfg.Serve.Host, actualPort, cfg.Serve.PortAttempts)
		if err != nil {
			return err
		}
		log.Info("using next available port", "port", free)
		actualPort = free
	}
	addr := net.JoinHostPort(cfg.Serve.Host, strconv.Itoa(actualPort))

	toolArgs := append([]string{}, cfg.Tool.Args...)
	toolArgs = append(toolArgs, "-f", cfg.Docs.Output, "-a", addr)
	if !cfg.Serve.Clean {
		toolArgs = append(toolArgs, "--dirty")
	}

	runner := process.NewRunner(process.Config{
		Name:            "docs-serve",
		Binary:          cfg.Tool.Binary,
		Args:            toolArgs,
		GracefulTimeout: cfg.GetGracefulTimeout(),
	})
	runner.SetLogger(log.With("component", "serve"))

	log.Info("serving documentation subset",
		"section", section,
		"address", "http://"+addr,
	)
	return runner.Run(ctx)
}

// listDocsRoots enumerates the top-level directories under the content
// root. The listing is best-effort context for the exclusion calculation:
// when the directory is missing or unreadable the run continues without
// exclusions.
func listDocsRoots(dir string, log *logging.Logger) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("content directory unavailable, skipping exclusions", "dir", dir, "error", err)
		return nil
	}
	var roots []string
	for _, e := range entries {
		if e.IsDir() {
			roots = append(roots, e.Name())
		}
	}
	return roots
}

// isPortAvailable checks whether a port can be bound on the given host.
func isPortAvailable(host string, port int) bool {
	l, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	l.Close()
	return true
}

// findAvailablePort returns the first bindable port in
// [start, start+attempts).
func findAvailablePort(host string, start, attempts int) (int, error) {
	for port := start; port < start+attempts; port++ {
		if isPortAvailable(host, port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available ports found in range %d-%d", start, start+attempts-1)
}
