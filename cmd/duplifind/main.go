package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halvard/duplifind/core/infrastructure/i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	localizer, err := i18n.NewBundleLocalizer(i18n.LocalizerConfig{
		Language:   "en",
		LocalesFS:  &localesFS,
		LocalesDir: "locales",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "duplifind: failed to initialize messages:", err)
		return 1
	}

	root := &cobra.Command{
		Use:     "duplifind",
		Short:   "Find duplicate and near-duplicate images",
		Version: version,
	}
	root.AddCommand(newDedupCmd(localizer))
	root.AddCommand(newCacheCmd(localizer))

	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
