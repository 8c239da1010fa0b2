package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/parser"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Version          string               `json:"version"`
	Uptime           string               `json:"uptime"`
	ReportsGenerated int64                `json:"reportsGenerated"`
	ReportsFailed    int64                `json:"reportsFailed"`
	LastReportTime   string               `json:"lastReportTime"` // RFC3339，未生成过为空
	PendingDownloads int                  `json:"pendingDownloads"`
	NumericPolicy    parser.NumericPolicy `json:"numericPolicy"`
	SheetIndex       int                  `json:"sheetIndex"` // -1 表示自动识别
	MaxUploadMB      int64                `json:"maxUploadMB"`
	ArchiveName      string               `json:"archiveName"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	last := ""
	if ns := h.lastReportAt.Load(); ns > 0 {
		last = time.Unix(0, ns).Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, StatusResponse{
		Version:          h.opts.Version,
		Uptime:           time.Since(h.startedAt).Round(time.Second).String(),
		ReportsGenerated: h.generated.Load(),
		ReportsFailed:    h.failed.Load(),
		LastReportTime:   last,
		PendingDownloads: h.downloads.len(),
		NumericPolicy:    h.opts.NumericPolicy,
		SheetIndex:       h.opts.SheetIndex,
		MaxUploadMB:      h.opts.MaxUploadBytes >> 20,
		ArchiveName:      h.opts.ArchiveName,
	})
}
