package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/exporter"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/importer"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/parser"
)

type reportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// skipSummary 被跳过行的摘要（品牌 / 行号 / 原因）
type skipSummary struct {
	Sales     []parser.RowError `json:"sales"`
	Inventory []parser.RowError `json:"inventory"`
}

// GenerateReportsStream 生成报表（SSE 进度 + 完成后提供下载地址）
// POST /api/reports/stream
func (h *Handler) GenerateReportsStream(c *gin.Context) {
	job, in, err := h.receiveUploads(c)
	if err != nil {
		h.abort(c, err)
		return
	}
	defer job.Close()

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	send := func(event reportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	lastPercent := -1
	for evt := range h.coordinator.Generate(c.Request.Context(), in, h.generateOptions(job.ID)) {
		switch evt.Type {
		case "progress":
			p, ok := evt.Data.(exporter.ProgressEvent)
			if !ok || p.Percent == lastPercent {
				continue
			}
			lastPercent = p.Percent
			send(reportProgressEvent{
				Type:      "progress",
				Message:   evt.Message,
				Data:      map[string]any{"percent": p.Percent, "brand": p.Brand},
				Timestamp: evt.Timestamp,
			})

		case "done":
			res := evt.Data.(*importer.Result)
			h.record(nil)
			token := h.downloads.put(h.opts.ArchiveName, res.Archive.Bytes, downloadTTL)
			send(reportProgressEvent{
				Type:    "done",
				Message: evt.Message,
				Data: map[string]any{
					"percent":     100,
					"downloadUrl": downloadURL(c, token),
					"brands":      res.Brands,
					"skipped": skipSummary{
						Sales:     res.SalesSkipped.Rows,
						Inventory: res.InventorySkipped.Rows,
					},
				},
				Timestamp: evt.Timestamp,
			})

		case "error":
			cause, ok := evt.Data.(error)
			if !ok {
				cause = errors.New(evt.Message)
			}
			h.record(cause)
			send(reportProgressEvent{
				Type:      "error",
				Message:   evt.Message,
				Data:      map[string]any{"kind": errorKind(cause), "status": statusFor(cause)},
				Timestamp: evt.Timestamp,
			})

		default:
			send(reportProgressEvent{Type: evt.Type, Message: evt.Message, Data: evt.Data, Timestamp: evt.Timestamp})
		}
	}
}

func downloadURL(c *gin.Context, token string) string {
	prefix := strings.TrimSuffix(c.Request.URL.Path, "/reports/stream")
	return fmt.Sprintf("%s/reports/download/%s", prefix, token)
}

// DownloadReports 下载生成的压缩包（一次性）
// GET /api/reports/download/:token
func (h *Handler) DownloadReports(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, ok := h.downloads.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	c.Header("Content-Disposition", buildContentDisposition(item.name))
	c.Data(http.StatusOK, zipContentType, item.data)
}
