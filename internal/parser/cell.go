package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// CellKind 单元格值类型
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
)

// Cell 单元格值：空 / 字符串 / 数值
type Cell struct {
	Kind   CellKind
	Text   string // 原始文本（已去首尾空白）
	Number decimal.Decimal
}

// StringCell 构造字符串单元格
func StringCell(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellString, Text: s}
}

// NumberCell 构造数值单元格
func NumberCell(d decimal.Decimal) Cell {
	return Cell{Kind: CellNumber, Text: d.String(), Number: d}
}

// ParseCell 将读取到的原始文本归类为空 / 数值 / 字符串
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{}
	}
	if d, ok := ParseNumber(s); ok {
		return Cell{Kind: CellNumber, Text: s, Number: d}
	}
	return Cell{Kind: CellString, Text: s}
}

// IsEmpty 是否为空单元格
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String 作为文本字段读取；数值单元格保留原始写法（如条码不丢前导零）
func (c Cell) String() string {
	switch c.Kind {
	case CellString:
		return c.Text
	case CellNumber:
		if c.Text != "" {
			return c.Text
		}
		return c.Number.String()
	}
	return ""
}

// Decimal 作为数值字段读取；空单元格与无法解析的文本返回 ok=false
func (c Cell) Decimal() (decimal.Decimal, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Number, true
	case CellString:
		return ParseNumber(c.Text)
	}
	return decimal.Zero, false
}

// Table 按位置访问的原始数据表，第 0 行为表头
type Table struct {
	Name string
	Rows [][]Cell
}

// NewTable 由字符串二维表构造
func NewTable(name string, raw [][]string) *Table {
	t := &Table{Name: name, Rows: make([][]Cell, len(raw))}
	for i, row := range raw {
		cells := make([]Cell, len(row))
		for j, v := range row {
			cells[j] = ParseCell(v)
		}
		t.Rows[i] = cells
	}
	return t
}

// Header 表头行
func (t *Table) Header() []Cell {
	if t == nil || len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// dataEnd 最后一个非空数据行之后的下标（末尾空行不参与规范化）
func (t *Table) dataEnd() int {
	end := len(t.Rows)
	for end > 1 && isBlankRow(t.Rows[end-1]) {
		end--
	}
	return end
}

// ReadTable 读取工作簿中的指定 sheet
func ReadTable(f *excelize.File, sheet string) (*Table, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return NewTable(sheet, rows), nil
}

func isBlankRow(row []Cell) bool {
	for _, c := range row {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
