package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the mock module and the full centers export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := runPipeline(cmd)
		if err != nil {
			return err
		}
		if err := res.WriteExports(cfg.Export.Dir, cfg.Export.MockFile); err != nil {
			return eris.Wrap(err, "export: write artifacts")
		}

		zap.L().Info("export complete",
			zap.Int("centers", res.Summary.TotalCenters),
			zap.String("export_dir", cfg.Export.Dir),
			zap.Strings("formats", cfg.Export.Formats),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
