package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// 可读取的工作簿扩展名（excelize 不支持旧版 .xls）
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// CheckExtension 校验上传文件的扩展名
func CheckExtension(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !supportedExtensions[ext] {
		return fmt.Errorf("unsupported file type %q for %s: want .xlsx or .xlsm", ext, filepath.Base(name))
	}
	return nil
}

type fileSource struct {
	path string
}

// FileSource 磁盘上的工作簿
func FileSource(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Name() string { return filepath.Base(s.path) }

func (s fileSource) Open() (*excelize.File, error) {
	if err := CheckExtension(s.path); err != nil {
		return nil, err
	}
	return excelize.OpenFile(s.path)
}

type readerSource struct {
	name string
	r    io.Reader
}

// ReaderSource 来自流的工作簿，只能打开一次
func ReaderSource(name string, r io.Reader) Source {
	return readerSource{name: name, r: r}
}

func (s readerSource) Name() string { return s.name }

func (s readerSource) Open() (*excelize.File, error) {
	return excelize.OpenReader(s.r)
}
