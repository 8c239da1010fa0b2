package parser

import (
	"iter"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/model"
)

var inventoryMapper = mustMapper(SchemaInventory)

// InventoryResult 库存表规范化结果
type InventoryResult struct {
	Records []*model.InventoryRecord
	Skipped *SkipReport
}

// InventoryRows 惰性遍历库存表数据行，语义同 SalesRows
func InventoryRows(t *Table, opts Options) iter.Seq2[*model.InventoryRecord, *RowError] {
	return func(yield func(*model.InventoryRecord, *RowError) bool) {
		end := t.dataEnd()
		for i := 1; i < end; i++ {
			rec, rowErr := parseInventoryRow(t.Rows[i], i+1, opts)
			if !yield(rec, rowErr) {
				return
			}
		}
	}
}

// ParseInventory 校验表头并规范化全部库存行；缺列返回 SchemaError
func ParseInventory(t *Table, opts Options) (*InventoryResult, error) {
	if err := inventoryMapper.ValidateHeader(t.Name, t.Header()); err != nil {
		return nil, err
	}

	res := &InventoryResult{Skipped: &SkipReport{Schema: SchemaInventory}}
	for rec, rowErr := range InventoryRows(t, opts) {
		res.Skipped.TotalRows++
		if rowErr != nil {
			res.Skipped.add(rowErr)
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func parseInventoryRow(row []Cell, rowNo int, opts Options) (*model.InventoryRecord, *RowError) {
	r := newRowReader(inventoryMapper, row, rowNo, opts)

	rec := &model.InventoryRecord{
		RowNo:             rowNo,
		ProductNameEn:     r.text(FieldNameEn),
		BranchName:        r.key(FieldBranchName),
		Barcode:           r.key(FieldBarcodes),
		Brand:             r.text(FieldBrand),
		SalePrice:         r.number(FieldSalePrice),
		AvailableQuantity: r.number(FieldAvailableQuantity),
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}
