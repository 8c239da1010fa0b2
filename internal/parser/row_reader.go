package parser

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// rowReader 读取单行字段，记录第一个行级错误
type rowReader struct {
	mapper *FieldMapper
	values map[string]Cell
	policy NumericPolicy
	rowNo  int
	err    *RowError
}

func newRowReader(mapper *FieldMapper, row []Cell, rowNo int, opts Options) *rowReader {
	r := &rowReader{
		mapper: mapper,
		values: mapper.Extract(row),
		policy: opts.policy(),
		rowNo:  rowNo,
	}
	if isBlankRow(row) {
		r.fail("empty row")
	}
	return r
}

// text 文本字段（去首尾空白，保留原大小写）
func (r *rowReader) text(field string) string {
	return DisplayText(r.values[field].String())
}

// key 行级必填键字段
func (r *rowReader) key(field string) string {
	v := r.text(field)
	if v == "" {
		fm, _ := r.mapper.Lookup(field)
		r.fail(fmt.Sprintf("missing %s (column %s)", field, ColumnLetter(fm.Column)))
	}
	return v
}

// number 数值字段：空值按 0；非数字或负数按策略置 0 或跳过该行
func (r *rowReader) number(field string) decimal.Decimal {
	c := r.values[field]
	if c.IsEmpty() {
		return decimal.Zero
	}

	d, ok := c.Decimal()
	switch {
	case !ok:
		if r.policy == NumericReject {
			r.fail(fmt.Sprintf("%s is not a number: %q", field, c.String()))
		}
		return decimal.Zero
	case d.IsNegative():
		if r.policy == NumericReject {
			r.fail(fmt.Sprintf("%s is negative: %s", field, d.String()))
		}
		return decimal.Zero
	}
	return d
}

func (r *rowReader) fail(reason string) {
	if r.err != nil {
		return
	}
	r.err = &RowError{
		Schema:   r.mapper.Kind(),
		RowIndex: r.rowNo,
		Brand:    r.text(FieldBrand),
		Reason:   reason,
	}
}
