package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/exporter"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/logger"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/metrics"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/parser"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/report"
)

// AutoSheet 自动识别 sheet
const AutoSheet = -1

// Coordinator 报表生成协调器：读取两张输入表，规范化、分组、汇总并打包
type Coordinator struct {
	sales     *parser.SheetRecognizer
	inventory *parser.SheetRecognizer
	exporter  *exporter.Exporter
}

// NewCoordinator 创建协调器
func NewCoordinator(maxNameLength int) *Coordinator {
	sales, err := parser.NewSheetRecognizer(parser.SchemaSales)
	if err != nil {
		panic(err)
	}
	inventory, err := parser.NewSheetRecognizer(parser.SchemaInventory)
	if err != nil {
		panic(err)
	}
	return &Coordinator{
		sales:     sales,
		inventory: inventory,
		exporter:  exporter.NewExporter(maxNameLength),
	}
}

// Input 一次报表生成的两份输入
type Input struct {
	Sales     Source
	Inventory Source
}

// GenerateOptions 生成选项
type GenerateOptions struct {
	NumericPolicy parser.NumericPolicy
	SheetIndex    int // 两份工作簿都使用该下标的 sheet；AutoSheet 表示按表头识别
	JobID         string
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/sheet/progress/done/error
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data"`    // 附加数据
	Timestamp time.Time   `json:"timestamp"`
}

// Stats 生成统计
type Stats struct {
	SalesSheet     parser.SheetRecognitionResult `json:"salesSheet"`
	InventorySheet parser.SheetRecognitionResult `json:"inventorySheet"`
	SalesRows      int                           `json:"salesRows"`
	InventoryRows  int                           `json:"inventoryRows"`
	Brands         int                           `json:"brands"`
	Duration       time.Duration                 `json:"duration"`
}

// Result 生成结果
type Result struct {
	JobID            string                 `json:"jobId"`
	Archive          *exporter.Archive      `json:"-"`
	Brands           []exporter.BrandReport `json:"brands"`
	SalesSkipped     *parser.SkipReport     `json:"salesSkipped"`
	InventorySkipped *parser.SkipReport     `json:"inventorySkipped"`
	Stats            Stats                  `json:"stats"`
}

// SkippedRows 两张表被跳过的行总数
func (r *Result) SkippedRows() int {
	return r.SalesSkipped.Count() + r.InventorySkipped.Count()
}

// Generate 后台执行生成，返回进度通道；最后一个事件为 done（Data 为 *Result）或 error
func (c *Coordinator) Generate(ctx context.Context, in Input, opts GenerateOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)

		send := func(e ProgressEvent) { c.sendProgress(progressChan, e) }
		res, err := c.run(ctx, in, opts, send)
		if err != nil {
			send(ProgressEvent{Type: "error", Message: err.Error(), Data: err, Timestamp: time.Now()})
			return
		}
		send(ProgressEvent{Type: "done", Message: "report archive ready", Data: res, Timestamp: time.Now()})
	}()

	return progressChan
}

// Run 同步执行生成
func (c *Coordinator) Run(ctx context.Context, in Input, opts GenerateOptions) (*Result, error) {
	return c.run(ctx, in, opts, nil)
}

func (c *Coordinator) run(ctx context.Context, in Input, opts GenerateOptions, send func(ProgressEvent)) (res *Result, err error) {
	startTime := time.Now()
	log := logger.Log.With().Str("job", opts.JobID).Logger()

	defer func() {
		outcome := outcomeOf(err)
		metrics.ReportsTotal.WithLabelValues(outcome).Inc()
		metrics.ReportDuration.Observe(time.Since(startTime).Seconds())
		if err != nil {
			log.Error().Err(err).Str("outcome", outcome).Msg("report generation failed")
		}
	}()

	emit := func(typ, msg string, data interface{}) {
		if send != nil {
			send(ProgressEvent{Type: typ, Message: msg, Data: data, Timestamp: time.Now()})
		}
	}

	if in.Sales == nil || in.Inventory == nil {
		return nil, errors.New("both sales and inventory files are required")
	}
	emit("start", "generating brand reports", map[string]string{
		"sales":     in.Sales.Name(),
		"inventory": in.Inventory.Name(),
	})

	popts := parser.Options{NumericPolicy: opts.NumericPolicy}

	salesTable, salesSheet, err := c.readTable(in.Sales, c.sales, opts.SheetIndex)
	if err != nil {
		return nil, err
	}
	sales, err := parser.ParseSales(salesTable, popts)
	if err != nil {
		return nil, err
	}
	metrics.ObserveRows(string(parser.SchemaSales), len(sales.Records), sales.Skipped.Count())
	emit("sheet", fmt.Sprintf("sales sheet %q: %d rows, %d skipped", salesSheet.SheetName, len(sales.Records), sales.Skipped.Count()), salesSheet)

	inventoryTable, inventorySheet, err := c.readTable(in.Inventory, c.inventory, opts.SheetIndex)
	if err != nil {
		return nil, err
	}
	inventory, err := parser.ParseInventory(inventoryTable, popts)
	if err != nil {
		return nil, err
	}
	metrics.ObserveRows(string(parser.SchemaInventory), len(inventory.Records), inventory.Skipped.Count())
	emit("sheet", fmt.Sprintf("inventory sheet %q: %d rows, %d skipped", inventorySheet.SheetName, len(inventory.Records), inventory.Skipped.Count()), inventorySheet)

	grouping := report.Group(sales.Records, inventory.Records)
	log.Info().
		Int("sales_rows", len(sales.Records)).
		Int("inventory_rows", len(inventory.Records)).
		Int("brands", grouping.Len()).
		Msg("rows grouped by brand")

	exported, err := c.exporter.Export(ctx, grouping.Buckets(), exporter.ExportOptions{
		Progress: func(p exporter.ProgressEvent) { emit("progress", p.Stage, p) },
	})
	if err != nil {
		return nil, err
	}

	res = &Result{
		JobID:            opts.JobID,
		Archive:          exported.Archive,
		Brands:           exported.Brands,
		SalesSkipped:     sales.Skipped,
		InventorySkipped: inventory.Skipped,
		Stats: Stats{
			SalesSheet:     salesSheet,
			InventorySheet: inventorySheet,
			SalesRows:      len(sales.Records),
			InventoryRows:  len(inventory.Records),
			Brands:         len(exported.Brands),
			Duration:       time.Since(startTime),
		},
	}
	metrics.BrandsPerReport.Observe(float64(len(exported.Brands)))

	log.Info().
		Int("brands", res.Stats.Brands).
		Int("skipped", res.SkippedRows()).
		Int("bytes", len(res.Archive.Bytes)).
		Dur("duration", res.Stats.Duration).
		Msg("report archive generated")

	return res, nil
}

// readTable 打开工作簿并挑选 sheet
func (c *Coordinator) readTable(src Source, r *parser.SheetRecognizer, sheetIndex int) (*parser.Table, parser.SheetRecognitionResult, error) {
	f, err := src.Open()
	if err != nil {
		return nil, parser.SheetRecognitionResult{}, fmt.Errorf("open %s: %w", src.Name(), err)
	}
	defer f.Close()

	t, sheet, err := r.Pick(f, sheetIndex)
	if err != nil {
		return nil, parser.SheetRecognitionResult{}, fmt.Errorf("%s: %w", src.Name(), err)
	}
	return t, sheet, nil
}

// sendProgress 发送进度事件（非阻塞）
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// 通道已满，丢弃中间进度；终止事件必须送达
		if event.Type == "done" || event.Type == "error" {
			ch <- event
		}
	}
}

func outcomeOf(err error) string {
	var (
		schemaErr *parser.SchemaError
		packErr   *exporter.PackagingError
	)
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &schemaErr):
		return metrics.OutcomeSchema
	case errors.As(err, &packErr):
		return metrics.OutcomePackaging
	}
	return metrics.OutcomeError
}

// Source 一份输入工作簿
type Source interface {
	Name() string
	Open() (*excelize.File, error)
}
