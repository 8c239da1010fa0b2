package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 报表结果标签
const (
	OutcomeOK        = "ok"
	OutcomeSchema    = "schema_error"
	OutcomePackaging = "packaging_error"
	OutcomeError     = "error"
)

var (
	// ReportsTotal 报表生成次数（按结果）
	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotx_reports_total",
			Help: "Total number of brand report archives requested, by outcome",
		},
		[]string{"outcome"},
	)

	// ReportDuration 单次报表生成耗时
	ReportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slotx_report_duration_seconds",
			Help:    "Time spent generating one brand report archive",
			Buckets: prometheus.DefBuckets,
		},
	)

	// RowsProcessed 规范化的数据行数（按 schema / 结果）
	RowsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotx_rows_processed_total",
			Help: "Input rows processed by the row normalizer",
		},
		[]string{"schema", "result"},
	)

	// BrandsPerReport 每个压缩包中的品牌数
	BrandsPerReport = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slotx_report_brands",
			Help:    "Number of brand workbooks per archive",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// HTTPRequestsTotal HTTP 请求计数
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slotx_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slotx_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// ObserveRows 记录某个 schema 的行处理结果
func ObserveRows(schema string, kept, skipped int) {
	RowsProcessed.WithLabelValues(schema, "kept").Add(float64(kept))
	RowsProcessed.WithLabelValues(schema, "skipped").Add(float64(skipped))
}
