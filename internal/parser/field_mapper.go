package parser

import (
	"github.com/xuri/excelize/v2"
)

// 固定列位置表。导出格式调整时只改这里。
var schemaMappings = map[SchemaKind][]FieldMapping{
	SchemaSales: {
		{Column: 7, Field: FieldBarcode, Key: true, Keywords: `(?i)barcode|باركود`},
		{Column: 8, Field: FieldNameAr, Keywords: `(?i)name|اسم|الصنف`},
		{Column: 10, Field: FieldBrand, Keywords: `(?i)brand|ماركة|براند|العلامة`},
		{Column: 12, Field: FieldQuantity, Numeric: true, Keywords: `(?i)qty|quantity|كمية|الكمية`},
		{Column: 15, Field: FieldTotal, Numeric: true, Keywords: `(?i)total|إجمالي|اجمالي|الاجمالي`},
		{Column: 22, Field: FieldBranchName, Key: true, Keywords: `(?i)branch|فرع|الفرع`},
	},
	SchemaInventory: {
		{Column: 3, Field: FieldNameEn, Keywords: `(?i)name|product`},
		{Column: 5, Field: FieldBranchName, Key: true, Keywords: `(?i)branch|فرع|الفرع`},
		{Column: 6, Field: FieldBarcodes, Key: true, Keywords: `(?i)barcode|باركود`},
		{Column: 7, Field: FieldBrand, Keywords: `(?i)brand|ماركة|براند|العلامة`},
		{Column: 10, Field: FieldSalePrice, Numeric: true, Keywords: `(?i)price|سعر`},
		{Column: 14, Field: FieldAvailableQuantity, Numeric: true, Keywords: `(?i)available|qty|quantity|كمية|المتاح`},
	},
}

// MapColumns 返回指定 schema 的 (列位置, 字段) 列表，按列位置升序
func MapColumns(kind SchemaKind) ([]FieldMapping, error) {
	m, err := NewFieldMapper(kind)
	if err != nil {
		return nil, err
	}
	return m.Mappings(), nil
}

// FieldMapper 字段映射器
type FieldMapper struct {
	kind     SchemaKind
	mappings []FieldMapping
	byField  map[string]FieldMapping
}

// NewFieldMapper 创建字段映射器；未知 schema 返回 SchemaError
func NewFieldMapper(kind SchemaKind) (*FieldMapper, error) {
	mappings, ok := schemaMappings[kind]
	if !ok {
		return nil, &SchemaError{Schema: kind}
	}

	m := &FieldMapper{
		kind:     kind,
		mappings: mappings,
		byField:  make(map[string]FieldMapping, len(mappings)),
	}
	for _, fm := range mappings {
		m.byField[fm.Field] = fm
	}
	return m, nil
}

// Kind 映射器对应的 schema
func (m *FieldMapper) Kind() SchemaKind {
	return m.kind
}

// Mappings 映射表副本
func (m *FieldMapper) Mappings() []FieldMapping {
	out := make([]FieldMapping, len(m.mappings))
	copy(out, m.mappings)
	return out
}

// Lookup 按字段名取映射
func (m *FieldMapper) Lookup(field string) (FieldMapping, bool) {
	fm, ok := m.byField[field]
	return fm, ok
}

// ValidateHeader 校验表头：每个映射列都必须有非空表头，否则返回第一个缺失列的 SchemaError
func (m *FieldMapper) ValidateHeader(sheet string, header []Cell) error {
	for _, fm := range m.mappings {
		if cellAt(header, fm.Column).IsEmpty() {
			return &SchemaError{
				Schema: m.kind,
				Sheet:  sheet,
				Field:  fm.Field,
				Column: ColumnLetter(fm.Column),
			}
		}
	}
	return nil
}

// Extract 按映射取出一行中的各字段单元格
func (m *FieldMapper) Extract(row []Cell) map[string]Cell {
	values := make(map[string]Cell, len(m.mappings))
	for _, fm := range m.mappings {
		values[fm.Field] = cellAt(row, fm.Column)
	}
	return values
}

// ColumnLetter 1 起始列号转列字母
func ColumnLetter(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return "?"
	}
	return name
}

func cellAt(row []Cell, col int) Cell {
	idx := col - 1
	if idx < 0 || idx >= len(row) {
		return Cell{}
	}
	return row[idx]
}
