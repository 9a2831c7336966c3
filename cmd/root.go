package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soromap/soro-cli/internal/config"
	"github.com/soromap/soro-cli/internal/pipeline"
)

var cfg *config.Config

var (
	flagSource    string
	flagSheet     string
	flagOutDir    string
	flagExportDir string
	flagTop       int
	flagSample    int
)

var rootCmd = &cobra.Command{
	Use:   "soro-cli",
	Short: "Antivenom distribution center analysis and export",
	Long:  "Loads the antivenom center spreadsheet, computes regional, state and municipal statistics, and exports datasets for the map application.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyFlags(cmd, c)
		if err := c.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagSource, "source", "", "path to the source spreadsheet (.xlsx or .csv)")
	pf.StringVar(&flagSheet, "sheet", "", "worksheet name or 0-based index")
	pf.StringVar(&flagOutDir, "out", "", "directory for EDA artifacts")
	pf.StringVar(&flagExportDir, "export-dir", "", "directory for the mock module and exports")
	pf.IntVar(&flagTop, "top", 0, "number of municipalities in by_municipality.json (0 = all)")
	pf.IntVar(&flagSample, "sample", 0, "number of centers in the mock module (0 = all)")
}

// applyFlags overrides config values with the flags the user set.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("source") {
		c.Source.Path = flagSource
	}
	if flags.Changed("sheet") {
		if idx, err := strconv.Atoi(flagSheet); err == nil {
			c.Source.SheetIndex = idx
			c.Source.SheetName = ""
		} else {
			c.Source.SheetName = flagSheet
		}
	}
	if flags.Changed("out") {
		c.Output.Dir = flagOutDir
	}
	if flags.Changed("export-dir") {
		c.Export.Dir = flagExportDir
	}
	if flags.Changed("top") {
		c.Report.TopMunicipalities = flagTop
	}
	if flags.Changed("sample") {
		c.Export.SampleSize = flagSample
	}
}

// runPipeline executes every stage in memory with the loaded config.
func runPipeline(cmd *cobra.Command) (*pipeline.Result, error) {
	return pipeline.Run(cmd.Context(), pipeline.OptionsFromConfig(cfg))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
