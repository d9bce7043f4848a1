package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"agviz/internal/artifacts"
	apperrors "agviz/internal/errors"
	"agviz/internal/plotting"
	"agviz/internal/report"
)

func newDiagnosticsCmd(app *App) *cobra.Command {
	var (
		modelPath string
		dataPath  string
		outputDir string
		markdown  bool
		embed     bool
	)

	cmd := &cobra.Command{
		Use:   "diagnostics",
		Short: "Run residual diagnostics and render the diagnostic panel",
		Example: `  agviz diagnostics -m model.json -d data.csv -o ./diagnostics/
  agviz diagnostics -m model.json -d data.csv --markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("embed-images") {
				embed = app.cfg.Output.EmbedImages
			}

			runner, err := app.newRunner()
			if err != nil {
				return err
			}

			diagPath := filepath.Join(outputDir, "diagnostics.json")

			fmt.Fprintln(cmd.OutOrStdout(), "Running diagnostics...")
			stdout, err := runner.Diagnostics(cmd.Context(), modelPath, dataPath, diagPath)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), stdout)

			model, err := artifacts.LoadModel(modelPath)
			if err != nil {
				return err
			}
			_, series, err := artifacts.LoadSeries(dataPath)
			if err != nil {
				return err
			}

			// The engine may legitimately skip the JSON document; the plots
			// and report degrade to their no-test form in that case.
			diag, err := artifacts.LoadDiagnostics(diagPath)
			if err != nil {
				if !apperrors.IsNotFound(err) {
					return err
				}
				diag = nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nGenerating diagnostic plots in %s...\n", outputDir)
			plotPath, err := plotting.ResidualDiagnostics(model, series, outputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved residual diagnostics to: %s\n", plotPath)

			if markdown {
				reportPath := filepath.Join(outputDir, "diagnostics_report.md")
				if _, err := report.NewGenerator(report.WithLogger(app.logger)).
					DiagnosticsReport(model, series, diag, plotPath, reportPath, embed); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved diagnostics report to: %s\n", reportPath)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Diagnostics saved to: %s\n", diagPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "input model file in JSON format")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "input data file in CSV format")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "./diagnostics", "output directory for diagnostics")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "write a Markdown diagnostics report")
	cmd.Flags().BoolVar(&embed, "embed-images", false, "embed plots in the report as data URIs")
	cmd.MarkFlagRequired("model")
	cmd.MarkFlagRequired("data")

	return cmd
}
