package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/exporter"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/importer"
	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/parser"
)

// 上传表单字段
const (
	formSalesFile     = "sales_file"
	formInventoryFile = "inventory_file"
)

// requestError 带 HTTP 状态码的请求错误
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

// receiveUploads 校验并保存两份上传文件到作业临时目录。
// 成功时调用方负责 job.Close。
func (h *Handler) receiveUploads(c *gin.Context) (*importer.Job, importer.Input, error) {
	// 两个文件加表单开销
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*h.opts.MaxUploadBytes+(1<<20))

	sales, err := h.formFile(c, formSalesFile)
	if err != nil {
		return nil, importer.Input{}, err
	}
	inventory, err := h.formFile(c, formInventoryFile)
	if err != nil {
		return nil, importer.Input{}, err
	}

	job, err := importer.NewJob(h.opts.TempDir)
	if err != nil {
		return nil, importer.Input{}, err
	}

	salesPath := job.Path("sales" + strings.ToLower(filepath.Ext(sales.Filename)))
	inventoryPath := job.Path("inventory" + strings.ToLower(filepath.Ext(inventory.Filename)))
	for path, fh := range map[string]*multipart.FileHeader{salesPath: sales, inventoryPath: inventory} {
		if err := c.SaveUploadedFile(fh, path); err != nil {
			_ = job.Close()
			return nil, importer.Input{}, fmt.Errorf("save upload %s: %w", fh.Filename, err)
		}
	}

	return job, importer.Input{
		Sales:     importer.FileSource(salesPath),
		Inventory: importer.FileSource(inventoryPath),
	}, nil
}

func (h *Handler) formFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &requestError{status: http.StatusRequestEntityTooLarge, msg: "upload too large"}
		}
		return nil, &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf("missing upload %q", field)}
	}
	if fh.Size > h.opts.MaxUploadBytes {
		return nil, &requestError{
			status: http.StatusRequestEntityTooLarge,
			msg:    fmt.Sprintf("%s exceeds %d MB", fh.Filename, h.opts.MaxUploadBytes>>20),
		}
	}
	if err := importer.CheckExtension(fh.Filename); err != nil {
		return nil, &requestError{status: http.StatusBadRequest, msg: err.Error()}
	}
	return fh, nil
}

// statusFor 错误到 HTTP 状态码的映射
func statusFor(err error) int {
	var (
		reqErr    *requestError
		schemaErr *parser.SchemaError
	)
	switch {
	case errors.As(err, &reqErr):
		return reqErr.status
	case errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// errorKind 返回给前端的错误类别
func errorKind(err error) string {
	var (
		reqErr    *requestError
		schemaErr *parser.SchemaError
		packErr   *exporter.PackagingError
	)
	switch {
	case errors.As(err, &reqErr):
		return "request"
	case errors.As(err, &schemaErr):
		return "schema"
	case errors.As(err, &packErr):
		return "packaging"
	}
	return "internal"
}
