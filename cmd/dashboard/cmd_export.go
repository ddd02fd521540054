package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spacex-dashboard/internal/export"
	"spacex-dashboard/internal/ingest"
	"spacex-dashboard/internal/render"
	"spacex-dashboard/pkg/utils"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render every chart to image files",
	Long: `Renders the success pie chart and the full-range payload scatter chart for
all sites and for every individual site into a new run directory under the
output directory, together with a manifest.json.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("out", "", "output directory (default from config)")
	exportCmd.Flags().String("format", "svg", "image format: svg or png")
	exportCmd.Flags().Int("workers", 4, "concurrent renders")
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	raw, _ := cmd.Flags().GetString("format")
	format, err := render.ParseFormat(raw)
	if err != nil {
		return err
	}
	out := cfg.OutputDir
	if cmd.Flags().Changed("out") {
		out, _ = cmd.Flags().GetString("out")
	}

	ds, err := ingest.NewLoader(log.Named("ingest")).Load(ctx, cfg.DataPath)
	if err != nil {
		return err
	}

	ex := export.New(ds, render.New(cfg.ChartWidth, cfg.ChartHeight), utils.NewOutputManager(out), log.Named("export"))
	ex.Workers, _ = cmd.Flags().GetInt("workers")
	res, err := ex.Run(ctx, format)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported %d charts to %s\n", len(res.Files), res.Dir)
	return nil
}
