package parser

import (
	"iter"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/model"
)

var salesMapper = mustMapper(SchemaSales)

// SalesResult 销售表规范化结果
type SalesResult struct {
	Records []*model.SalesRecord
	Skipped *SkipReport
}

// SalesRows 惰性遍历销售表数据行；每次 range 都从表重新推导。
// 行校验失败时产出 (nil, *RowError)。调用方应先用 ValidateHeader 检查表结构。
func SalesRows(t *Table, opts Options) iter.Seq2[*model.SalesRecord, *RowError] {
	return func(yield func(*model.SalesRecord, *RowError) bool) {
		end := t.dataEnd()
		for i := 1; i < end; i++ {
			rec, rowErr := parseSalesRow(t.Rows[i], i+1, opts)
			if !yield(rec, rowErr) {
				return
			}
		}
	}
}

// ParseSales 校验表头并规范化全部销售行；缺列返回 SchemaError
func ParseSales(t *Table, opts Options) (*SalesResult, error) {
	if err := salesMapper.ValidateHeader(t.Name, t.Header()); err != nil {
		return nil, err
	}

	res := &SalesResult{Skipped: &SkipReport{Schema: SchemaSales}}
	for rec, rowErr := range SalesRows(t, opts) {
		res.Skipped.TotalRows++
		if rowErr != nil {
			res.Skipped.add(rowErr)
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// parseSalesRow 解析单行数据
func parseSalesRow(row []Cell, rowNo int, opts Options) (*model.SalesRecord, *RowError) {
	r := newRowReader(salesMapper, row, rowNo, opts)

	rec := &model.SalesRecord{
		RowNo:         rowNo,
		Barcode:       r.key(FieldBarcode),
		ProductNameAr: r.text(FieldNameAr),
		Brand:         r.text(FieldBrand),
		Quantity:      r.number(FieldQuantity),
		TotalPrice:    r.number(FieldTotal),
		BranchName:    r.key(FieldBranchName),
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}

func mustMapper(kind SchemaKind) *FieldMapper {
	m, err := NewFieldMapper(kind)
	if err != nil {
		panic(err)
	}
	return m
}
