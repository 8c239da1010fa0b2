package exporter

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/model"
)

// 每个品牌工作簿的固定 sheet（顺序即输出顺序）
const (
	SheetSalesDetails = "Sales Details"
	SheetInventory    = "Inventory"
	SheetReport       = "Report"
)

// TotalRowLabel 明细表合计行首列文字
const TotalRowLabel = "Total"

var (
	salesHeaders = []string{"Branch Name", "Brand Name", "Product Name", "Barcode", "Quantity", "Price"}

	inventoryHeaders = []string{"Branch Name", "Brand", "Product Name", "Barcodes", "Product Price", "Available Quantity", "Stock Value"}

	reportHeaders = []string{
		"Branch Name",
		"Brand Name",
		"Brand Deal",
		"Payout Period",
		"Total Brand Inventory Quantities",
		"Total Brand Inventory Stock Price",
		"Total Sales (Products Quantities)",
		"Total sales (Money)",
		"Best Selling Size",
		"Best Selling Product",
		"Total Sales After Percentage",
		"Total Sales After Rent",
	}
)

type sheetStyles struct {
	header int
	total  int
}

// BuildWorkbook 生成单个品牌的三表工作簿：Sales Details / Inventory / Report。
// 某一侧没有数据时该表只有表头与全 0 合计行。
func BuildWorkbook(b *model.BrandBucket, summaries []model.BranchSummary) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetSalesDetails); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetInventory, SheetReport} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if err := writeSalesSheet(f, styles, b.Sales); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write sheet %s: %w", SheetSalesDetails, err)
	}
	if err := writeInventorySheet(f, styles, b.Inventory); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write sheet %s: %w", SheetInventory, err)
	}
	if err := writeReportSheet(f, styles, summaries); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write sheet %s: %w", SheetReport, err)
	}

	f.SetActiveSheet(0)
	return f, nil
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("create header style: %w", err)
	}
	total, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "#000000", Style: 1}},
	})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("create total style: %w", err)
	}
	return sheetStyles{header: header, total: total}, nil
}

func writeSalesSheet(f *excelize.File, st sheetStyles, records []*model.SalesRecord) error {
	sheet := SheetSalesDetails
	if err := writeHeader(f, st, sheet, salesHeaders); err != nil {
		return err
	}

	var qty, price decimal.Decimal
	for i, r := range records {
		row := []interface{}{
			r.BranchName,
			r.Brand,
			r.ProductNameAr,
			r.Barcode,
			r.Quantity.InexactFloat64(),
			r.TotalPrice.InexactFloat64(),
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
		qty = qty.Add(r.Quantity)
		price = price.Add(r.TotalPrice)
	}

	totals := []interface{}{TotalRowLabel, "", "", "", qty.InexactFloat64(), price.InexactFloat64()}
	if err := writeTotals(f, st, sheet, len(records)+2, totals); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "B", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "C", "C", 36); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "D", "F", 16)
}

func writeInventorySheet(f *excelize.File, st sheetStyles, records []*model.InventoryRecord) error {
	sheet := SheetInventory
	if err := writeHeader(f, st, sheet, inventoryHeaders); err != nil {
		return err
	}

	var qty, value decimal.Decimal
	for i, r := range records {
		stockValue := r.StockValue()
		row := []interface{}{
			r.BranchName,
			r.Brand,
			r.ProductNameEn,
			r.Barcode,
			r.SalePrice.InexactFloat64(),
			r.AvailableQuantity.InexactFloat64(),
			stockValue.InexactFloat64(),
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
		qty = qty.Add(r.AvailableQuantity)
		value = value.Add(stockValue)
	}

	totals := []interface{}{TotalRowLabel, "", "", "", "", qty.InexactFloat64(), value.InexactFloat64()}
	if err := writeTotals(f, st, sheet, len(records)+2, totals); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "B", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "C", "C", 36); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "D", "G", 16)
}

func writeReportSheet(f *excelize.File, st sheetStyles, summaries []model.BranchSummary) error {
	sheet := SheetReport
	if err := writeHeader(f, st, sheet, reportHeaders); err != nil {
		return err
	}

	for i, s := range summaries {
		row := []interface{}{
			s.BranchName,
			s.Brand,
			s.BrandDeal,
			s.PayoutPeriod,
			s.InventoryQuantityTotal.InexactFloat64(),
			s.InventoryValueTotal.InexactFloat64(),
			s.SalesQuantityTotal.InexactFloat64(),
			s.SalesRevenueTotal.InexactFloat64(),
			s.BestSellingSize,
			s.BestSellingProduct,
			s.SalesAfterPercentage,
			s.SalesAfterRent,
		}
		rowNo := i + 2
		if s.IsTotal {
			if err := writeTotals(f, st, sheet, rowNo, row); err != nil {
				return err
			}
			continue
		}
		if err := setRow(f, sheet, rowNo, row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "D", 20); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "E", "L", 24)
}

func writeHeader(f *excelize.File, st sheetStyles, sheet string, headers []string) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := setRow(f, sheet, 1, row); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(headers), st.header); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeTotals(f *excelize.File, st sheetStyles, sheet string, rowNo int, values []interface{}) error {
	if err := setRow(f, sheet, rowNo, values); err != nil {
		return err
	}
	return styleRow(f, sheet, rowNo, len(values), st.total)
}

func setRow(f *excelize.File, sheet string, rowNo int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleRow(f *excelize.File, sheet string, rowNo, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, rowNo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}
