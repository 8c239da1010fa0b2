package report

import (
	"sort"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/model"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/parser"
)

// TotalLabel 品牌总计行的分店名
const TotalLabel = "Total"

// Summarize 计算分桶内各分店合计，末尾追加品牌总计行。
// 分店取销售与库存两侧的并集，按规范化分店名字典序排列。
func Summarize(b *model.BrandBucket) []model.BranchSummary {
	rows := make(map[string]*model.BranchSummary)
	row := func(branch string) *model.BranchSummary {
		key := parser.NormalizeKey(branch)
		if s, ok := rows[key]; ok {
			return s
		}
		s := &model.BranchSummary{
			BranchName: parser.DisplayText(branch),
			Brand:      b.Brand,
		}
		rows[key] = s
		return s
	}

	for _, r := range b.Sales {
		s := row(r.BranchName)
		s.SalesQuantityTotal = s.SalesQuantityTotal.Add(r.Quantity)
		s.SalesRevenueTotal = s.SalesRevenueTotal.Add(r.TotalPrice)
	}
	for _, r := range b.Inventory {
		s := row(r.BranchName)
		s.InventoryQuantityTotal = s.InventoryQuantityTotal.Add(r.AvailableQuantity)
		s.InventoryValueTotal = s.InventoryValueTotal.Add(r.StockValue())
	}

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]model.BranchSummary, 0, len(keys)+1)
	total := model.BranchSummary{
		BranchName: TotalLabel,
		Brand:      b.Brand,
		IsTotal:    true,
	}
	for _, k := range keys {
		out = append(out, *rows[k])
		total.Add(*rows[k])
	}
	return append(out, total)
}
