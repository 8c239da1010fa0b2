package parser

import (
	"fmt"
	"strings"
)

// SchemaKind 输入表类型
type SchemaKind string

const (
	SchemaSales     SchemaKind = "sales"
	SchemaInventory SchemaKind = "inventory"
)

// 语义字段名
const (
	FieldBarcode           = "barcode"
	FieldNameAr            = "name_ar"
	FieldBrand             = "brand"
	FieldQuantity          = "quantity"
	FieldTotal             = "total"
	FieldBranchName        = "branch_name"
	FieldNameEn            = "name_en"
	FieldBarcodes          = "barcodes"
	FieldSalePrice         = "sale_price"
	FieldAvailableQuantity = "available_quantity"
)

// FieldMapping 列位置与语义字段的对应关系
type FieldMapping struct {
	Column   int    `json:"column"`   // 1 起始的列号（7 即 G 列）
	Field    string `json:"field"`    // 语义字段名
	Key      bool   `json:"key"`      // 行级必填键，为空时跳过该行
	Numeric  bool   `json:"numeric"`  // 数值字段，按 NumericPolicy 转换
	Keywords string `json:"keywords"` // 表头关键词（正则），用于识别 sheet
}

// NumericPolicy 数值字段无法解析时的处理策略
type NumericPolicy string

const (
	// NumericZero 空值、非数字、负数均按 0 计入
	NumericZero NumericPolicy = "zero"
	// NumericReject 空值按 0；非数字或负数时跳过该行并记录原因
	NumericReject NumericPolicy = "reject"
)

// ParseNumericPolicy 解析配置中的策略名
func ParseNumericPolicy(s string) (NumericPolicy, error) {
	switch NumericPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", NumericZero:
		return NumericZero, nil
	case NumericReject:
		return NumericReject, nil
	}
	return "", fmt.Errorf("unknown numeric policy %q (want %q or %q)", s, NumericZero, NumericReject)
}

// Options 行规范化选项
type Options struct {
	NumericPolicy NumericPolicy
}

func (o Options) policy() NumericPolicy {
	if o.NumericPolicy == "" {
		return NumericZero
	}
	return o.NumericPolicy
}

// SkipReport 被跳过的行及原因
type SkipReport struct {
	Schema    SchemaKind `json:"schema"`
	TotalRows int        `json:"totalRows"` // 参与规范化的数据行数（不含表头与末尾空行）
	Rows      []RowError `json:"rows"`
}

// Count 跳过的行数
func (r *SkipReport) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

func (r *SkipReport) add(e *RowError) {
	r.Rows = append(r.Rows, *e)
}
