package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"agviz/internal/artifacts"
	"agviz/internal/plotting"
	"agviz/internal/report"
)

func newFitCmd(app *App) *cobra.Command {
	var (
		dataPath   string
		arimaOrder string
		garchOrder string
		outputPath string
		plotDir    string
		markdown   bool
		embed      bool
	)

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit an ARIMA-GARCH model and generate diagnostic plots",
		Example: `  agviz fit -d data.csv -a 1,0,1 -g 1,1 -o model.json
  agviz fit -d data.csv -a 2,0,2 -g 1,1 --markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("embed-images") {
				embed = app.cfg.Output.EmbedImages
			}
			if !cmd.Flags().Changed("plot-dir") && app.cfg.Output.Dir != "." {
				plotDir = app.cfg.Output.Dir
			}

			arima, err := parseArimaOrder(arimaOrder)
			if err != nil {
				return err
			}
			garch, err := parseGarchOrder(garchOrder)
			if err != nil {
				return err
			}

			runner, err := app.newRunner()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Fitting model: ARIMA(%s)-GARCH(%s)...\n", arimaOrder, garchOrder)
			stdout, err := runner.Fit(cmd.Context(), dataPath, arima, garch, outputPath)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), stdout)

			_, series, err := artifacts.LoadSeries(dataPath)
			if err != nil {
				return err
			}
			model, err := artifacts.LoadModel(outputPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nGenerating diagnostic plots in %s...\n", plotDir)
			plotPath, err := plotting.FitDiagnostics(series, model, plotDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved fit diagnostics to: %s\n", plotPath)

			if markdown {
				reportPath := filepath.Join(plotDir, "fit_report.md")
				if _, err := report.NewGenerator(report.WithLogger(app.logger)).
					FitReport(series, model, plotPath, reportPath, embed); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved fit report to: %s\n", reportPath)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nModel saved to: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "input data file in CSV format")
	cmd.Flags().StringVarP(&arimaOrder, "arima", "a", "", "ARIMA order as p,d,q (e.g. 1,0,1)")
	cmd.Flags().StringVarP(&garchOrder, "garch", "g", "", "GARCH order as p,q (e.g. 1,1)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "model.json", "output model file in JSON format")
	cmd.Flags().StringVar(&plotDir, "plot-dir", "./output", "directory for diagnostic plots")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "write a Markdown fit report")
	cmd.Flags().BoolVar(&embed, "embed-images", false, "embed plots in the report as data URIs")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagRequired("arima")
	cmd.MarkFlagRequired("garch")

	return cmd
}
