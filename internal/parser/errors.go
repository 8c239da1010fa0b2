package parser

import (
	"fmt"
)

// SchemaError 输入表结构不符合约定（缺少必需列或未知 schema），整个请求失败
type SchemaError struct {
	Schema SchemaKind
	Sheet  string
	Field  string
	Column string // 列字母，如 "J"
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("unknown schema %q", string(e.Schema))
	}
	return fmt.Sprintf("%s sheet %q is missing required column %s (%s)", e.Schema, e.Sheet, e.Column, e.Field)
}

// RowError 单行校验失败，行被跳过并记入 SkipReport
type RowError struct {
	Schema   SchemaKind `json:"schema"`
	RowIndex int        `json:"row"` // 源表行号（含表头，从 1 开始）
	Brand    string     `json:"brand"`
	Reason   string     `json:"reason"`
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: %s", e.Schema, e.RowIndex, e.Reason)
}
