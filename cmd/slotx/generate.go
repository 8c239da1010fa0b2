package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/importer"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/parser"
)

// 退出码
const (
	exitSchema  = 2
	exitFailure = 3
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Build the brand report archive from local files",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{Name: "sales", Usage: "Sales export (.xlsx)", Required: true},
			&cli.StringFlag{Name: "inventory", Usage: "Inventory export (.xlsx)", Required: true},
			&cli.StringFlag{Name: "out", Usage: "Output archive path (default: report.archive_name)"},
			&cli.StringFlag{Name: "numeric-policy", Usage: "zero or reject (overrides config)"},
			&cli.IntFlag{Name: "sheet-index", Usage: "Sheet index in both workbooks, -1 to detect (overrides config)"},
		},
		Action: runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("numeric-policy") {
		cfg.Report.NumericPolicy = c.String("numeric-policy")
	}
	if c.IsSet("sheet-index") {
		cfg.Report.SheetIndex = c.Int("sheet-index")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		out = cfg.Report.ArchiveName
	}

	coordinator := importer.NewCoordinator(cfg.Report.MaxNameLength)
	res, err := coordinator.Run(c.Context, importer.Input{
		Sales:     importer.FileSource(c.String("sales")),
		Inventory: importer.FileSource(c.String("inventory")),
	}, importer.GenerateOptions{
		NumericPolicy: cfg.NumericPolicy(),
		SheetIndex:    cfg.Report.SheetIndex,
		JobID:         uuid.NewString(),
	})
	if err != nil {
		return exitError(err)
	}

	if err := os.WriteFile(out, res.Archive.Bytes, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSummary(c.App.Writer, out, res)
	return nil
}

func exitError(err error) error {
	var schemaErr *parser.SchemaError
	if errors.As(err, &schemaErr) {
		return cli.Exit(err.Error(), exitSchema)
	}
	return cli.Exit(err.Error(), exitFailure)
}

func printSummary(w io.Writer, out string, res *importer.Result) {
	fmt.Fprintf(w, "wrote %s (%d brands, %d bytes)\n", out, len(res.Brands), len(res.Archive.Bytes))
	for _, b := range res.Brands {
		fmt.Fprintf(w, "  %-40s sales=%d inventory=%d\n", b.Entry, b.SalesRows, b.InventoryRows)
	}
	for _, skipped := range []*parser.SkipReport{res.SalesSkipped, res.InventorySkipped} {
		if skipped.Count() == 0 {
			continue
		}
		fmt.Fprintf(w, "skipped %d of %d %s rows:\n", skipped.Count(), skipped.TotalRows, skipped.Schema)
		for _, r := range skipped.Rows {
			brand := r.Brand
			if brand == "" {
				brand = "-"
			}
			fmt.Fprintf(w, "  row %d [%s]: %s\n", r.RowIndex, brand, r.Reason)
		}
	}
}
