package parser

import (
	"errors"
	"testing"
)

func salesHeader() []string {
	h := make([]string, 22)
	for i := range h {
		h[i] = "col"
	}
	h[6], h[7], h[9], h[11], h[14], h[21] = "Barcode", "Name AR", "Brand", "Qty", "Total", "Branch"
	return h
}

func salesRow(barcode, name, brand, qty, total, branch string) []string {
	r := make([]string, 22)
	r[6], r[7], r[9], r[11], r[14], r[21] = barcode, name, brand, qty, total, branch
	return r
}

func inventoryHeader() []string {
	h := make([]string, 14)
	for i := range h {
		h[i] = "col"
	}
	h[2], h[4], h[5], h[6], h[9], h[13] = "Name EN", "Branch", "Barcodes", "Brand", "Sale Price", "Available Qty"
	return h
}

func inventoryRow(name, branch, barcode, brand, price, qty string) []string {
	r := make([]string, 14)
	r[2], r[4], r[5], r[6], r[9], r[13] = name, branch, barcode, brand, price, qty
	return r
}

func TestParseSales_SkipsRowsMissingKeys(t *testing.T) {
	t.Parallel()

	tbl := NewTable("Sales", [][]string{
		salesHeader(),
		salesRow("123", "منتج", "Acme", "3", "30", "Cairo"),
		salesRow("", "منتج", "Acme", "1", "10", "Cairo"),
		salesRow("124", "منتج", "Acme", "1", "10", ""),
		salesRow("125", "منتج", "", "2", "20", "Giza"),
	})

	res, err := ParseSales(tbl, Options{})
	if err != nil {
		t.Fatalf("ParseSales: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("records=%d, want 2", len(res.Records))
	}
	if res.Skipped.Count() != 2 || res.Skipped.TotalRows != 4 {
		t.Fatalf("skipped=%d total=%d, want 2/4", res.Skipped.Count(), res.Skipped.TotalRows)
	}
	if res.Skipped.Rows[0].RowIndex != 3 || res.Skipped.Rows[1].RowIndex != 4 {
		t.Fatalf("unexpected skipped rows: %+v", res.Skipped.Rows)
	}
	if res.Skipped.Rows[0].Brand != "Acme" {
		t.Fatalf("skipped brand=%q, want Acme", res.Skipped.Rows[0].Brand)
	}
	// 品牌为空不算行错误
	if res.Records[1].Brand != "" || res.Records[1].BranchName != "Giza" {
		t.Fatalf("blank-brand row not kept: %+v", res.Records[1])
	}
}

func TestParseSales_NumericPolicy(t *testing.T) {
	t.Parallel()

	tbl := NewTable("Sales", [][]string{
		salesHeader(),
		salesRow("1", "a", "Acme", "n/a", "10", "Cairo"),
		salesRow("2", "b", "Acme", "-4", "10", "Cairo"),
		salesRow("3", "c", "Acme", "", "", "Cairo"),
	})

	zero, err := ParseSales(tbl, Options{NumericPolicy: NumericZero})
	if err != nil {
		t.Fatalf("ParseSales zero: %v", err)
	}
	if len(zero.Records) != 3 {
		t.Fatalf("zero policy records=%d, want 3", len(zero.Records))
	}
	for _, r := range zero.Records {
		if !r.Quantity.IsZero() {
			t.Fatalf("row %d quantity=%s, want 0", r.RowNo, r.Quantity)
		}
	}

	reject, err := ParseSales(tbl, Options{NumericPolicy: NumericReject})
	if err != nil {
		t.Fatalf("ParseSales reject: %v", err)
	}
	if len(reject.Records) != 1 || reject.Skipped.Count() != 2 {
		t.Fatalf("reject policy records=%d skipped=%d, want 1/2", len(reject.Records), reject.Skipped.Count())
	}
}

func TestParseSales_MissingColumnIsFatal(t *testing.T) {
	t.Parallel()

	header := salesHeader()[:21] // 去掉 V 列（分店）
	tbl := NewTable("Sales", [][]string{header, salesRow("1", "a", "Acme", "1", "1", "Cairo")})

	_, err := ParseSales(tbl, Options{})
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("err=%v, want SchemaError", err)
	}
	if se.Field != FieldBranchName {
		t.Fatalf("field=%s, want branch_name", se.Field)
	}
}

func TestSalesRows_Restartable(t *testing.T) {
	t.Parallel()

	tbl := NewTable("Sales", [][]string{
		salesHeader(),
		salesRow("1", "a", "Acme", "1", "1", "Cairo"),
		salesRow("2", "b", "Acme", "1", "1", "Cairo"),
	})

	count := func() int {
		n := 0
		for rec, rowErr := range SalesRows(tbl, Options{}) {
			if rowErr == nil && rec != nil {
				n++
			}
		}
		return n
	}
	if a, b := count(), count(); a != 2 || b != 2 {
		t.Fatalf("counts=%d/%d, want 2/2", a, b)
	}
}

func TestParseSales_EmptyRows(t *testing.T) {
	t.Parallel()

	tbl := NewTable("Sales", [][]string{
		salesHeader(),
		salesRow("1", "a", "Acme", "1", "1", "Cairo"),
		{},
		salesRow("2", "b", "Acme", "1", "1", "Cairo"),
		{},
		{"", ""},
	})

	res, err := ParseSales(tbl, Options{})
	if err != nil {
		t.Fatalf("ParseSales: %v", err)
	}
	// 中间空行计入跳过，末尾空行不计
	if len(res.Records) != 2 || res.Skipped.Count() != 1 || res.Skipped.TotalRows != 3 {
		t.Fatalf("records=%d skipped=%d total=%d", len(res.Records), res.Skipped.Count(), res.Skipped.TotalRows)
	}
	if res.Skipped.Rows[0].Reason != "empty row" {
		t.Fatalf("reason=%q", res.Skipped.Rows[0].Reason)
	}
}

func TestParseInventory_Fields(t *testing.T) {
	t.Parallel()

	tbl := NewTable("Inventory", [][]string{
		inventoryHeader(),
		inventoryRow("Shirt", " Cairo ", "123", "Acme", "8", "5"),
	})

	res, err := ParseInventory(tbl, Options{})
	if err != nil {
		t.Fatalf("ParseInventory: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records=%d, want 1", len(res.Records))
	}
	r := res.Records[0]
	if r.BranchName != "Cairo" || r.Barcode != "123" || r.RowNo != 2 {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.StockValue().String() != "40" {
		t.Fatalf("stock value=%s, want 40", r.StockValue())
	}
}
