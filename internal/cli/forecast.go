package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"agviz/internal/artifacts"
	"agviz/internal/exporter"
	"agviz/internal/plotting"
	"agviz/internal/report"
)

func newForecastCmd(app *App) *cobra.Command {
	var (
		modelPath  string
		horizon    int
		outputPath string
		plotPath   string
		markdown   bool
		embed      bool
		tables     bool
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Generate forecasts and plot confidence intervals",
		Example: `  agviz forecast -m model.json -n 30 -o forecast.csv
  agviz forecast -m model.json -n 30 --markdown --embed-images`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("embed-images") {
				embed = app.cfg.Output.EmbedImages
			}

			runner, err := app.newRunner()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generating %d-step forecast...\n", horizon)
			stdout, err := runner.Forecast(cmd.Context(), modelPath, horizon, outputPath)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), stdout)

			model, err := artifacts.LoadModel(modelPath)
			if err != nil {
				return err
			}
			forecast, err := artifacts.LoadForecast(outputPath)
			if err != nil {
				return err
			}

			if plotPath == "" {
				plotPath = siblingPath(outputPath, plotting.ForecastFile)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "\nGenerating forecast plot...")
			savedPlot, err := plotting.Forecast(model, forecast, app.cfg.Plots.ConfidenceLevels, plotPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved forecast plot to: %s\n", savedPlot)

			if markdown {
				reportPath := siblingPath(outputPath, "forecast_report.md")
				if _, err := report.NewGenerator(report.WithLogger(app.logger)).
					ForecastReport(model, forecast, savedPlot, reportPath, embed); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved forecast report to: %s\n", reportPath)
			}

			if tables {
				records := exporter.ForecastRecords(forecast)

				tablePath := replaceExt(outputPath, "_table.csv")
				if err := exporter.NewCSVWriter(app.logger).
					WriteSimpleCSV(tablePath, exporter.ForecastHeaders, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved forecast table to: %s\n", tablePath)

				workbookPath := replaceExt(outputPath, ".xlsx")
				if err := exporter.NewExcelWriter(app.logger).
					WriteWorkbook(workbookPath, "Forecast", exporter.ForecastHeaders, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved forecast workbook to: %s\n", workbookPath)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Forecast saved to: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "input model file in JSON format")
	cmd.Flags().IntVarP(&horizon, "horizon", "n", 10, "forecast horizon (steps ahead)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "forecast.csv", "output forecast file in CSV format")
	cmd.Flags().StringVar(&plotPath, "plot", "", "path for the forecast plot")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "write a Markdown forecast report")
	cmd.Flags().BoolVar(&embed, "embed-images", false, "embed plots in the report as data URIs")
	cmd.Flags().BoolVar(&tables, "tables", false, "export the forecast table as an xlsx workbook")
	cmd.MarkFlagRequired("model")

	return cmd
}

// siblingPath places name next to ref in the same directory.
func siblingPath(ref, name string) string {
	return filepath.Join(filepath.Dir(ref), name)
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
