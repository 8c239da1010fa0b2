package importer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/parser"
)

func salesSheetRows(rows ...[]interface{}) [][]interface{} {
	header := make([]interface{}, 22)
	for i := range header {
		header[i] = "col"
	}
	header[6], header[7], header[9] = "Barcode", "Product Name", "Brand"
	header[11], header[14], header[21] = "Quantity", "Total", "Branch"
	return append([][]interface{}{header}, rows...)
}

// salesRow barcode, brand, branch, qty, total
func salesRow(barcode, brand, branch string, qty, total interface{}) []interface{} {
	row := make([]interface{}, 22)
	row[6], row[7], row[9] = barcode, "منتج", brand
	row[11], row[14], row[21] = qty, total, branch
	return row
}

func inventorySheetRows(rows ...[]interface{}) [][]interface{} {
	header := make([]interface{}, 14)
	for i := range header {
		header[i] = "col"
	}
	header[2], header[4], header[5] = "Product Name", "Branch", "Barcodes"
	header[6], header[9], header[13] = "Brand", "Sale Price", "Available Quantity"
	return append([][]interface{}{header}, rows...)
}

// inventoryRow barcode, brand, branch, price, qty
func inventoryRow(barcode, brand, branch string, price, qty interface{}) []interface{} {
	row := make([]interface{}, 14)
	row[2], row[4], row[5] = "Product", branch, barcode
	row[6], row[9], row[13] = brand, price, qty
	return row
}

func writeWorkbook(t *testing.T, name string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}
	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
	return path
}

func acmeInput(t *testing.T) Input {
	t.Helper()
	sales := writeWorkbook(t, "sales.xlsx", salesSheetRows(
		salesRow("0001", "Acme", "Cairo", 3, 30),
		salesRow("0002", "acme ", "Cairo", 2, 20),
		salesRow("0003", "", "Giza", 1, 5),
		salesRow("", "Acme", "Cairo", 9, 90),
	))
	inventory := writeWorkbook(t, "inventory.xlsx", inventorySheetRows(
		inventoryRow("0001", "ACME", "Cairo", 10, 4),
		inventoryRow("0002", "Acme", "Alex", 3, 2),
	))
	return Input{Sales: FileSource(sales), Inventory: FileSource(inventory)}
}

func TestRun_AcmeArchive(t *testing.T) {
	t.Parallel()

	res, err := NewCoordinator(0).Run(context.Background(), acmeInput(t), GenerateOptions{SheetIndex: AutoSheet, JobID: "test"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := res.SalesSkipped.Count(); got != 1 {
		t.Fatalf("sales skipped = %d, want 1 (%v)", got, res.SalesSkipped.Rows)
	}
	if row := res.SalesSkipped.Rows[0]; row.RowIndex != 5 {
		t.Fatalf("skipped row index = %d, want 5", row.RowIndex)
	}
	if res.Stats.SalesRows != 3 || res.Stats.InventoryRows != 2 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}

	if len(res.Brands) != 2 {
		t.Fatalf("brands = %d, want 2", len(res.Brands))
	}
	if res.Brands[0].Entry != "Unassigned.xlsx" || res.Brands[1].Entry != "Acme.xlsx" {
		t.Fatalf("unexpected entries: %s, %s", res.Brands[0].Entry, res.Brands[1].Entry)
	}

	acme := res.Brands[1].Summaries
	// Alex, Cairo, Total
	if len(acme) != 3 {
		t.Fatalf("acme summaries = %d, want 3", len(acme))
	}
	cairo := acme[1]
	if cairo.BranchName != "Cairo" {
		t.Fatalf("second branch = %q, want Cairo", cairo.BranchName)
	}
	if cairo.SalesQuantityTotal.String() != "5" || cairo.SalesRevenueTotal.String() != "50" {
		t.Fatalf("cairo sales = %s / %s, want 5 / 50", cairo.SalesQuantityTotal, cairo.SalesRevenueTotal)
	}
	if cairo.InventoryQuantityTotal.String() != "4" || cairo.InventoryValueTotal.String() != "40" {
		t.Fatalf("cairo inventory = %s / %s, want 4 / 40", cairo.InventoryQuantityTotal, cairo.InventoryValueTotal)
	}
	total := acme[2]
	if !total.IsTotal || total.InventoryValueTotal.String() != "46" {
		t.Fatalf("unexpected total row: %+v", total)
	}

	if len(res.Archive.Bytes) == 0 || len(res.Archive.Entries) != 2 {
		t.Fatalf("unexpected archive: %d bytes, %d entries", len(res.Archive.Bytes), len(res.Archive.Entries))
	}
}

func TestRun_ConservesRowsAcrossBrands(t *testing.T) {
	t.Parallel()

	res, err := NewCoordinator(0).Run(context.Background(), acmeInput(t), GenerateOptions{SheetIndex: AutoSheet})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	sales, inventory := 0, 0
	for _, b := range res.Brands {
		sales += b.SalesRows
		inventory += b.InventoryRows
	}
	if sales+res.SalesSkipped.Count() != res.SalesSkipped.TotalRows {
		t.Fatalf("sales rows not conserved: %d kept + %d skipped != %d", sales, res.SalesSkipped.Count(), res.SalesSkipped.TotalRows)
	}
	if inventory+res.InventorySkipped.Count() != res.InventorySkipped.TotalRows {
		t.Fatalf("inventory rows not conserved: %d kept + %d skipped != %d", inventory, res.InventorySkipped.Count(), res.InventorySkipped.TotalRows)
	}
}

func TestRun_MissingColumnIsFatal(t *testing.T) {
	t.Parallel()

	rows := inventorySheetRows(inventoryRow("0001", "Acme", "Cairo", 10, 4))
	rows[0][6] = nil // brand header
	inventory := writeWorkbook(t, "inventory.xlsx", rows)
	sales := writeWorkbook(t, "sales.xlsx", salesSheetRows(salesRow("0001", "Acme", "Cairo", 1, 1)))

	res, err := NewCoordinator(0).Run(context.Background(),
		Input{Sales: FileSource(sales), Inventory: FileSource(inventory)},
		GenerateOptions{SheetIndex: 0})
	if res != nil {
		t.Fatalf("expected no result on schema error")
	}
	var schemaErr *parser.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Schema != parser.SchemaInventory || schemaErr.Field != parser.FieldBrand || schemaErr.Column != "G" {
		t.Fatalf("unexpected schema error: %+v", schemaErr)
	}
}

func TestRun_RejectPolicySkipsBadNumbers(t *testing.T) {
	t.Parallel()

	sales := writeWorkbook(t, "sales.xlsx", salesSheetRows(
		salesRow("0001", "Acme", "Cairo", "three", 30),
		salesRow("0002", "Acme", "Cairo", 2, 20),
	))
	inventory := writeWorkbook(t, "inventory.xlsx", inventorySheetRows())

	res, err := NewCoordinator(0).Run(context.Background(),
		Input{Sales: FileSource(sales), Inventory: FileSource(inventory)},
		GenerateOptions{SheetIndex: AutoSheet, NumericPolicy: parser.NumericReject})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.SalesSkipped.Count() != 1 || res.Brands[0].SalesRows != 1 {
		t.Fatalf("expected one rejected row, got %v", res.SalesSkipped.Rows)
	}
}

func TestRun_CancelledProducesNoArchive(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewCoordinator(0).Run(ctx, acmeInput(t), GenerateOptions{SheetIndex: AutoSheet})
	if res != nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got res=%v err=%v", res, err)
	}
}

func TestGenerate_StreamsUntilDone(t *testing.T) {
	t.Parallel()

	ch := NewCoordinator(0).Generate(context.Background(), acmeInput(t), GenerateOptions{SheetIndex: AutoSheet})

	var (
		types []string
		last  ProgressEvent
	)
	for evt := range ch {
		if evt.Type == "error" {
			t.Fatalf("error event: %s", evt.Message)
		}
		types = append(types, evt.Type)
		last = evt
	}

	if len(types) == 0 || types[0] != "start" {
		t.Fatalf("unexpected event order: %v", types)
	}
	if last.Type != "done" {
		t.Fatalf("last event = %s, want done", last.Type)
	}
	res, ok := last.Data.(*Result)
	if !ok {
		t.Fatalf("unexpected done payload: %T", last.Data)
	}
	if len(res.Archive.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(res.Archive.Entries))
	}
}

func TestGenerate_ErrorEventCarriesCause(t *testing.T) {
	t.Parallel()

	in := Input{
		Sales:     ReaderSource("sales.xlsx", bytes.NewReader([]byte("not a workbook"))),
		Inventory: ReaderSource("inventory.xlsx", bytes.NewReader(nil)),
	}
	var last ProgressEvent
	for evt := range NewCoordinator(0).Generate(context.Background(), in, GenerateOptions{SheetIndex: AutoSheet}) {
		last = evt
	}
	if last.Type != "error" {
		t.Fatalf("last event = %s, want error", last.Type)
	}
	if _, ok := last.Data.(error); !ok {
		t.Fatalf("error payload should be an error, got %T", last.Data)
	}
}

func TestReaderSource_OpensUpload(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, "sales.xlsx", salesSheetRows(salesRow("1", "Acme", "Cairo", 1, 1)))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	res, err := NewCoordinator(0).Run(context.Background(), Input{
		Sales:     ReaderSource("sales.xlsx", bytes.NewReader(data)),
		Inventory: FileSource(writeWorkbook(t, "inventory.xlsx", inventorySheetRows())),
	}, GenerateOptions{SheetIndex: AutoSheet})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var names []string
	for _, e := range res.Archive.Entries {
		names = append(names, e.Name)
	}
	if len(names) != 1 || names[0] != "Acme.xlsx" {
		t.Fatalf("unexpected entries: %v", names)
	}
}

func TestCheckExtension(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"a.xlsx", "B.XLSM"} {
		if err := CheckExtension(name); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	for _, name := range []string{"a.xls", "a.csv", "noext"} {
		if err := CheckExtension(name); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := FileSource("report.xls").Open(); err == nil {
		t.Fatalf("expected .xls to be rejected")
	}
}

func TestJob_SaveAndClose(t *testing.T) {
	t.Parallel()

	job, err := NewJob(t.TempDir())
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	path, err := job.Save("../escape.xlsx", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Dir(path) != job.Dir {
		t.Fatalf("saved outside job dir: %s", path)
	}
	if err := job.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(job.Dir); !os.IsNotExist(err) {
		t.Fatalf("job dir not removed: %v", err)
	}
}
