package report

import (
	"sort"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/model"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/parser"
)

// Grouping 规范化品牌键 → BrandBucket
type Grouping struct {
	buckets map[string]*model.BrandBucket
	keys    []string // 按规范化键字典序排序
}

// Group 将销售与库存行按规范化品牌分桶；品牌为空的行归入 Unassigned
func Group(sales []*model.SalesRecord, inventory []*model.InventoryRecord) *Grouping {
	g := &Grouping{buckets: make(map[string]*model.BrandBucket)}

	for _, r := range sales {
		b := g.bucket(r.Brand)
		b.Sales = append(b.Sales, r)
	}
	for _, r := range inventory {
		b := g.bucket(r.Brand)
		b.Inventory = append(b.Inventory, r)
	}

	g.keys = make([]string, 0, len(g.buckets))
	for k := range g.buckets {
		g.keys = append(g.keys, k)
	}
	sort.Strings(g.keys)
	return g
}

func (g *Grouping) bucket(brand string) *model.BrandBucket {
	key := BrandKey(brand)
	if b, ok := g.buckets[key]; ok {
		return b
	}

	display := parser.DisplayText(brand)
	if key == "" {
		display = model.UnassignedBrand
	}
	b := &model.BrandBucket{Key: key, Brand: display}
	g.buckets[key] = b
	return b
}

// Buckets 按键的字典序返回全部分桶（Unassigned 的空键排在最前）
func (g *Grouping) Buckets() []*model.BrandBucket {
	out := make([]*model.BrandBucket, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, g.buckets[k])
	}
	return out
}

// Get 按原始品牌写法查找分桶
func (g *Grouping) Get(brand string) (*model.BrandBucket, bool) {
	b, ok := g.buckets[BrandKey(brand)]
	return b, ok
}

// Len 分桶数
func (g *Grouping) Len() int {
	return len(g.keys)
}

// BrandKey 品牌分组键
func BrandKey(brand string) string {
	return parser.NormalizeKey(brand)
}
