package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/halvard/duplifind/core/cache"
	"github.com/halvard/duplifind/core/decoder"
	"github.com/halvard/duplifind/core/infrastructure/i18n"
	"github.com/halvard/duplifind/core/infrastructure/log"
	"github.com/halvard/duplifind/core/orchestrator"
)

type dedupOptions struct {
	recursive  bool
	threshold  int
	mode       string
	lshMode    string
	noCache    bool
	cachePath  string
	workers    int
	configPath string
	noProgress bool
	logFile    string
}

func newDedupCmd(localizer i18n.Localizer) *cobra.Command {
	opts := &dedupOptions{}

	cmd := &cobra.Command{
		Use:   "dedup <root>",
		Short: "Scan a directory for duplicate and near-duplicate images",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDedup(args[0], opts, c.Flags().Changed, localizer)
		},
	}

	cfg := defaultCLIConfig()
	cmd.Flags().BoolVar(&opts.recursive, "recursive", cfg.Recursive, "recurse into subdirectories")
	cmd.Flags().IntVar(&opts.threshold, "threshold", cfg.Threshold, "perceptual Hamming-distance cutoff (0-64)")
	cmd.Flags().StringVar(&opts.mode, "mode", "both", "grouping mode: exact-only, perceptual-only, both")
	cmd.Flags().StringVar(&opts.lshMode, "lsh-mode", "auto", "LSH candidate strategy: auto, force-on, force-off")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the on-disk analysis cache")
	cmd.Flags().StringVar(&opts.cachePath, "cache-path", "", "analysis cache location (default: ~/.duplicate_finder_cache.db)")
	cmd.Flags().IntVar(&opts.workers, "workers", cfg.Workers, "number of parallel analyzer workers")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML config file overriding the defaults above")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "disable the progress spinner")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "also write warnings and errors to this file")

	return cmd
}

func runDedup(root string, opts *dedupOptions, flagSet func(string) bool, localizer i18n.Localizer) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", root, err)
	}

	if opts.configPath != "" {
		fileCfg, err := loadCLIConfig(opts.configPath)
		if err != nil {
			return fmt.Errorf("%s", localizer.Translate("ConfigLoadError",
				map[string]interface{}{"Path": opts.configPath, "Error": err}))
		}
		if !flagSet("workers") {
			opts.workers = fileCfg.Workers
		}
		if !flagSet("threshold") {
			opts.threshold = fileCfg.Threshold
		}
		if !flagSet("recursive") {
			opts.recursive = fileCfg.Recursive
		}
		if opts.cachePath == "" {
			opts.cachePath = fileCfg.CachePath
		}
	}

	mode, err := parseMode(opts.mode)
	if err != nil {
		return err
	}
	lshMode, err := parseLSHMode(opts.lshMode)
	if err != nil {
		return err
	}

	var logger log.Logger
	if opts.logFile != "" {
		logger, err = log.NewMultiLogger(opts.logFile, localizer)
	} else {
		logger, err = log.NewDefaultConsoleLogger(log.WARN)
	}
	if err != nil {
		return err
	}

	var store *cache.Store
	if !opts.noCache {
		path := opts.cachePath
		if path == "" {
			path, err = cache.DefaultPath()
			if err != nil {
				return err
			}
		}
		store, err = cache.Open(path)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer func() { _ = store.Close() }()
	}

	token := orchestrator.NewCancelToken()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		token.Cancel()
	}()
	defer signal.Stop(sig)

	reporter := newProgressReporter(!opts.noProgress)

	fmt.Println(localizer.Translate("ScanStarted", map[string]interface{}{"Root": absRoot}))

	orch := orchestrator.New(decoder.NewDefault(), logger)
	result, err := orch.Scan(absRoot, orchestrator.Options{
		Recursive:   opts.recursive,
		Threshold:   opts.threshold,
		Mode:        mode,
		LSHMode:     lshMode,
		UseCache:    !opts.noCache,
		Cache:       store,
		Workers:     opts.workers,
		Progress:    reporter.report,
		CancelToken: token,
	})
	if err != nil {
		return err
	}

	return printResult(result, localizer)
}

func printResult(result orchestrator.ScanResult, localizer i18n.Localizer) error {
	if result.CacheDegraded {
		fmt.Println(localizer.Translate("CacheDegraded"))
	}

	var savings int64
	for _, g := range result.Groups {
		savings += g.PotentialSavingsBytes
	}

	if result.Partial {
		fmt.Println(localizer.Translate("ScanPartial", map[string]interface{}{"Analyzed": len(result.Records)}))
	} else {
		fmt.Println(localizer.Translate("ScanComplete", map[string]interface{}{
			"Groups":  len(result.Groups),
			"Savings": formatBytes(savings),
		}))
	}

	for _, g := range result.Groups {
		fmt.Printf("group %d [%s] potential savings %s\n", g.ID, g.Kind, formatBytes(g.PotentialSavingsBytes))
		for i, m := range g.Members {
			marker := "  "
			if i == 0 {
				marker = "* "
			}
			fmt.Printf("%s%s (%dx%d, %s)\n", marker, m.Path, m.Width, m.Height, formatBytes(m.SizeBytes))
		}
	}

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", e.Kind, e.Path, e.Message)
	}

	return nil
}

func parseMode(s string) (orchestrator.Mode, error) {
	switch s {
	case "exact-only":
		return orchestrator.ModeExactOnly, nil
	case "perceptual-only":
		return orchestrator.ModePerceptualOnly, nil
	case "both", "":
		return orchestrator.ModeBoth, nil
	default:
		return "", fmt.Errorf("invalid --mode %q: want exact-only, perceptual-only, or both", s)
	}
}

func parseLSHMode(s string) (orchestrator.LSHMode, error) {
	switch s {
	case "auto", "":
		return orchestrator.LSHAuto, nil
	case "force-on":
		return orchestrator.LSHForceOn, nil
	case "force-off":
		return orchestrator.LSHForceOff, nil
	default:
		return "", fmt.Errorf("invalid --lsh-mode %q: want auto, force-on, or force-off", s)
	}
}
