package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/importer"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/logger"
)

const zipContentType = "application/zip"

// GenerateReports 上传销售表与库存表，直接返回品牌报表压缩包
// POST /api/reports
func (h *Handler) GenerateReports(c *gin.Context) {
	job, in, err := h.receiveUploads(c)
	if err != nil {
		h.abort(c, err)
		return
	}
	// 清理临时文件
	defer job.Close()

	res, err := h.coordinator.Run(c.Request.Context(), in, h.generateOptions(job.ID))
	h.record(err)
	if err != nil {
		h.abort(c, err)
		return
	}

	writeSkipHeaders(c, res)
	c.Header("Content-Disposition", buildContentDisposition(h.opts.ArchiveName))
	c.Data(http.StatusOK, zipContentType, res.Archive.Bytes)
}

func (h *Handler) abort(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("report request failed")
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": errorKind(err)})
}

func writeSkipHeaders(c *gin.Context, res *importer.Result) {
	c.Header("X-Skipped-Sales-Rows", strconv.Itoa(res.SalesSkipped.Count()))
	c.Header("X-Skipped-Inventory-Rows", strconv.Itoa(res.InventorySkipped.Count()))
	c.Header("X-Brand-Count", strconv.Itoa(len(res.Brands)))
}
