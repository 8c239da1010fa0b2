package exporter

import (
	"context"
	"fmt"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/model"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/report"
)

// Exporter 品牌报表导出器：逐个品牌生成工作簿并写入同一个压缩包
type Exporter struct {
	maxNameLength int
}

// NewExporter 创建导出器
func NewExporter(maxNameLength int) *Exporter {
	if maxNameLength <= 0 {
		maxNameLength = DefaultMaxNameLength
	}
	return &Exporter{maxNameLength: maxNameLength}
}

// ExportOptions 导出选项
type ExportOptions struct {
	Progress func(ProgressEvent)
}

// BrandReport 单个品牌的导出摘要
type BrandReport struct {
	Brand         string                `json:"brand"`
	Entry         string                `json:"entry"`
	SalesRows     int                   `json:"salesRows"`
	InventoryRows int                   `json:"inventoryRows"`
	Summaries     []model.BranchSummary `json:"summaries"`
}

// Result 导出结果
type Result struct {
	Archive *Archive      `json:"archive"`
	Brands  []BrandReport `json:"brands"`
}

// Export 按给定顺序导出全部分桶。任一品牌失败时返回 PackagingError，不返回部分压缩包。
// ctx 只在品牌之间检查。
func (e *Exporter) Export(ctx context.Context, buckets []*model.BrandBucket, opts ExportOptions) (*Result, error) {
	aw := NewArchiveWriter(e.maxNameLength)
	brands := make([]BrandReport, 0, len(buckets))

	for i, b := range buckets {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("export cancelled: %w", err)
		}

		summaries := report.Summarize(b)
		if err := e.addBucket(aw, b, summaries); err != nil {
			return nil, err
		}

		brands = append(brands, BrandReport{
			Brand:         b.Brand,
			Entry:         aw.entries[len(aw.entries)-1].Name,
			SalesRows:     len(b.Sales),
			InventoryRows: len(b.Inventory),
			Summaries:     summaries,
		})
		reportProgress(opts.Progress, scalePercent(0, 95, i+1, len(buckets)), "workbook", b.Brand)
	}

	archive, err := aw.Close()
	if err != nil {
		return nil, err
	}
	reportProgress(opts.Progress, 100, "archive", "")

	return &Result{Archive: archive, Brands: brands}, nil
}

func (e *Exporter) addBucket(aw *ArchiveWriter, b *model.BrandBucket, summaries []model.BranchSummary) error {
	f, err := BuildWorkbook(b, summaries)
	if err != nil {
		return &PackagingError{Brand: b.Brand, Err: err}
	}
	defer f.Close()

	return aw.Add(b.Brand, f)
}
