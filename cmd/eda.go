package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var edaCmd = &cobra.Command{
	Use:   "eda",
	Short: "Write the JSON datasets and the Markdown report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := runPipeline(cmd)
		if err != nil {
			return err
		}
		if err := res.WriteEDA(cfg.Output.Dir); err != nil {
			return eris.Wrap(err, "eda: write artifacts")
		}

		zap.L().Info("eda complete",
			zap.Int("centers", res.Summary.TotalCenters),
			zap.String("output_dir", cfg.Output.Dir),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(edaCmd)
}
