package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the analysis and write every artifact",
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := runPipeline(cmd)
		if err != nil {
			return err
		}
		if err := res.WriteEDA(cfg.Output.Dir); err != nil {
			return eris.Wrap(err, "run: write eda")
		}
		if err := res.WriteExports(cfg.Export.Dir, cfg.Export.MockFile); err != nil {
			return eris.Wrap(err, "run: write exports")
		}

		zap.L().Info("run complete",
			zap.Int("centers", res.Summary.TotalCenters),
			zap.Int("states", res.Summary.TotalStates),
			zap.Int("regions", res.Summary.TotalRegions),
			zap.Int("municipalities", res.Summary.TotalMunicipalities),
			zap.String("output_dir", cfg.Output.Dir),
			zap.String("export_dir", cfg.Export.Dir),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
