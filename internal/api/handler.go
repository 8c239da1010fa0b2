package api

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/config"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/importer"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/parser"
)

// 下载链接有效期
const downloadTTL = 10 * time.Minute

// Options 报表接口选项
type Options struct {
	NumericPolicy  parser.NumericPolicy
	SheetIndex     int
	MaxNameLength  int
	MaxUploadBytes int64
	ArchiveName    string
	TempDir        string
	Version        string
}

// OptionsFromConfig 由应用配置生成接口选项
func OptionsFromConfig(cfg *config.AppConfig, version string) Options {
	return Options{
		NumericPolicy:  cfg.NumericPolicy(),
		SheetIndex:     cfg.Report.SheetIndex,
		MaxNameLength:  cfg.Report.MaxNameLength,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		ArchiveName:    cfg.Report.ArchiveName,
		TempDir:        cfg.Data.TempDir,
		Version:        version,
	}
}

// Handler 报表 API 处理器
type Handler struct {
	opts        Options
	coordinator *importer.Coordinator
	downloads   *downloadStore
	startedAt   time.Time

	generated    atomic.Int64
	failed       atomic.Int64
	lastReportAt atomic.Int64 // unix nano
}

// NewHandler 创建报表 API 处理器
func NewHandler(opts Options) *Handler {
	if opts.ArchiveName == "" {
		opts.ArchiveName = "Brands_Reports.zip"
	}
	return &Handler{
		opts:        opts,
		coordinator: importer.NewCoordinator(opts.MaxNameLength),
		downloads:   newDownloadStore(),
		startedAt:   time.Now(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 报表生成
	router.POST("/reports", h.GenerateReports)
	router.POST("/reports/stream", h.GenerateReportsStream)
	router.GET("/reports/download/:token", h.DownloadReports)
}

func (h *Handler) generateOptions(jobID string) importer.GenerateOptions {
	return importer.GenerateOptions{
		NumericPolicy: h.opts.NumericPolicy,
		SheetIndex:    h.opts.SheetIndex,
		JobID:         jobID,
	}
}

func (h *Handler) record(err error) {
	if err != nil {
		h.failed.Add(1)
		return
	}
	h.generated.Add(1)
	h.lastReportAt.Store(time.Now().UnixNano())
}
