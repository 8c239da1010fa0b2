package model

import "github.com/shopspring/decimal"

// SalesRecord 销售明细行（规范化后不可变）
type SalesRecord struct {
	RowNo int `json:"rowNo"` // 源表行号（含表头，从 1 开始）

	Barcode       string          `json:"barcode"`
	ProductNameAr string          `json:"productNameAr"`
	Brand         string          `json:"brand"`
	Quantity      decimal.Decimal `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	BranchName    string          `json:"branchName"`
}

// InventoryRecord 库存快照行（规范化后不可变）
type InventoryRecord struct {
	RowNo int `json:"rowNo"`

	ProductNameEn     string          `json:"productNameEn"`
	BranchName        string          `json:"branchName"`
	Barcode           string          `json:"barcode"`
	Brand             string          `json:"brand"`
	SalePrice         decimal.Decimal `json:"salePrice"`
	AvailableQuantity decimal.Decimal `json:"availableQuantity"`
}

// StockValue 库存金额 = 可用数量 × 售价
func (r *InventoryRecord) StockValue() decimal.Decimal {
	return r.AvailableQuantity.Mul(r.SalePrice)
}
