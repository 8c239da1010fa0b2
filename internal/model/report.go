package model

import "github.com/shopspring/decimal"

// UnassignedBrand 品牌为空时的归档名称
const UnassignedBrand = "Unassigned"

// BrandBucket 同一规范化品牌下的全部销售与库存行
type BrandBucket struct {
	Key       string             `json:"key"`   // 规范化品牌键，空串表示 Unassigned
	Brand     string             `json:"brand"` // 展示名（首次出现的原始写法）
	Sales     []*SalesRecord     `json:"sales"`
	Inventory []*InventoryRecord `json:"inventory"`
}

// IsUnassigned 是否为无品牌分组
func (b *BrandBucket) IsUnassigned() bool {
	return b.Key == ""
}

// BranchSummary Report 表中的一行（分店汇总或品牌总计）
type BranchSummary struct {
	BranchName string `json:"branchName"`
	Brand      string `json:"brand"`
	IsTotal    bool   `json:"isTotal"`

	InventoryQuantityTotal decimal.Decimal `json:"inventoryQuantityTotal"`
	InventoryValueTotal    decimal.Decimal `json:"inventoryValueTotal"`
	SalesQuantityTotal     decimal.Decimal `json:"salesQuantityTotal"`
	SalesRevenueTotal      decimal.Decimal `json:"salesRevenueTotal"`

	// 人工填写字段，导出时留空
	BrandDeal            string `json:"brandDeal"`
	PayoutPeriod         string `json:"payoutPeriod"`
	BestSellingSize      string `json:"bestSellingSize"`
	BestSellingProduct   string `json:"bestSellingProduct"`
	SalesAfterPercentage string `json:"salesAfterPercentage"`
	SalesAfterRent       string `json:"salesAfterRent"`
}

// Add 累加另一行的四项合计
func (s *BranchSummary) Add(o BranchSummary) {
	s.InventoryQuantityTotal = s.InventoryQuantityTotal.Add(o.InventoryQuantityTotal)
	s.InventoryValueTotal = s.InventoryValueTotal.Add(o.InventoryValueTotal)
	s.SalesQuantityTotal = s.SalesQuantityTotal.Add(o.SalesQuantityTotal)
	s.SalesRevenueTotal = s.SalesRevenueTotal.Add(o.SalesRevenueTotal)
}
