package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"agviz/internal/artifacts"
	"agviz/internal/engine"
	"agviz/internal/exporter"
	"agviz/internal/plotting"
	"agviz/internal/report"
)

func newSimulateCmd(app *App) *cobra.Command {
	var (
		modelPath  string
		paths      int
		length     int
		seed       int
		outputPath string
		plotPath   string
		nPlot      int
		stats      bool
		markdown   bool
		embed      bool
		tables     bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate paths and visualize their distribution",
		Example: `  agviz simulate -m model.json -p 100 -n 1000 -o simulation.csv
  agviz simulate -m model.json -p 1000 -n 500 --markdown --tables`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("embed-images") {
				embed = app.cfg.Output.EmbedImages
			}

			runner, err := app.newRunner()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Simulating %d paths with %d observations each...\n", paths, length)
			opts := engine.SimulateOptions{Paths: paths, Length: length, Seed: seed, Stats: stats}
			stdout, err := runner.Simulate(cmd.Context(), modelPath, opts, outputPath)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), stdout)

			model, err := artifacts.LoadModel(modelPath)
			if err != nil {
				return err
			}
			panel, err := artifacts.LoadSimulation(outputPath)
			if err != nil {
				return err
			}

			if plotPath == "" {
				plotPath = siblingPath(outputPath, plotting.SimulationPathsFile)
			}
			if nPlot <= 0 {
				nPlot = app.cfg.Plots.PathsToPlot
			}

			fmt.Fprintln(cmd.OutOrStdout(), "\nGenerating simulation plot...")
			savedPlot, err := plotting.SimulationPaths(panel, nPlot, plotPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved simulation plot to: %s\n", savedPlot)

			if markdown {
				reportPath := siblingPath(outputPath, "simulation_report.md")
				if _, err := report.NewGenerator(report.WithLogger(app.logger)).
					SimulationReport(model, panel, savedPlot, reportPath, embed); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved simulation report to: %s\n", reportPath)
			}

			if tables {
				records := exporter.SimulationRecords(panel)

				tablePath := replaceExt(outputPath, "_table.csv")
				if err := exporter.NewCSVWriter(app.logger).
					WriteSimpleCSV(tablePath, exporter.SimulationHeaders, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved simulation table to: %s\n", tablePath)

				workbookPath := replaceExt(outputPath, ".xlsx")
				if err := exporter.NewExcelWriter(app.logger).
					WriteWorkbook(workbookPath, "Simulation", exporter.SimulationHeaders, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved simulation workbook to: %s\n", workbookPath)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Simulation data saved to: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "input model file in JSON format")
	cmd.Flags().IntVarP(&paths, "paths", "p", 100, "number of simulation paths")
	cmd.Flags().IntVarP(&length, "length", "n", 1000, "observations per path")
	cmd.Flags().IntVarP(&seed, "seed", "s", 42, "random seed for reproducibility")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "simulation.csv", "output simulation file in CSV format")
	cmd.Flags().StringVar(&plotPath, "plot", "", "path for the simulation plot")
	cmd.Flags().IntVar(&nPlot, "n-plot", 0, "number of paths to plot (defaults to configuration)")
	cmd.Flags().BoolVar(&stats, "stats", false, "ask the engine for summary statistics")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "write a Markdown simulation report")
	cmd.Flags().BoolVar(&embed, "embed-images", false, "embed plots in the report as data URIs")
	cmd.Flags().BoolVar(&tables, "tables", false, "export the simulation panel as an xlsx workbook")
	cmd.MarkFlagRequired("model")

	return cmd
}
