package exporter

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/klauspost/compress/zip"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
)

// DefaultMaxNameLength 压缩包内文件名（不含扩展名）的最大字符数
const DefaultMaxNameLength = 64

const entryExt = ".xlsx"

// Entry 待打包的品牌工作簿
type Entry struct {
	Brand string
	File  *excelize.File
}

// ArchiveEntry 压缩包内的一个文件
type ArchiveEntry struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Size  int64  `json:"size"`
}

// Archive 最终交付的压缩包
type Archive struct {
	Bytes   []byte         `json:"-"`
	Entries []ArchiveEntry `json:"entries"`
}

// ArchiveWriter 逐个写入品牌工作簿；任一失败后不可再用
type ArchiveWriter struct {
	buf     bytes.Buffer
	zw      *zip.Writer
	namer   *entryNamer
	entries []ArchiveEntry
	failed  error
	now     time.Time
}

// NewArchiveWriter 创建压缩包写入器
func NewArchiveWriter(maxNameLength int) *ArchiveWriter {
	a := &ArchiveWriter{
		namer: newEntryNamer(maxNameLength),
		now:   time.Now(),
	}
	a.zw = zip.NewWriter(&a.buf)
	return a
}

// Add 序列化工作簿并写入压缩包
func (a *ArchiveWriter) Add(brand string, f *excelize.File) error {
	if a.failed != nil {
		return a.failed
	}

	name := a.namer.next(brand)
	w, err := a.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: a.now,
	})
	if err != nil {
		return a.fail(brand, name, err)
	}

	n, err := f.WriteTo(w)
	if err != nil {
		return a.fail(brand, name, err)
	}

	a.entries = append(a.entries, ArchiveEntry{Name: name, Brand: brand, Size: n})
	return nil
}

// Close 结束压缩包并返回结果；之前有失败时返回该错误且不返回任何数据
func (a *ArchiveWriter) Close() (*Archive, error) {
	if a.failed != nil {
		return nil, a.failed
	}
	if err := a.zw.Close(); err != nil {
		return nil, &PackagingError{Err: err}
	}
	return &Archive{
		Bytes:   a.buf.Bytes(),
		Entries: a.entries,
	}, nil
}

func (a *ArchiveWriter) fail(brand, name string, err error) error {
	a.failed = &PackagingError{Brand: brand, Entry: name, Err: err}
	a.buf.Reset()
	return a.failed
}

// Package 把全部品牌工作簿打成一个压缩包；任一工作簿失败则整体失败
func Package(ctx context.Context, entries []Entry, maxNameLength int) (*Archive, error) {
	a := NewArchiveWriter(maxNameLength)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("packaging cancelled: %w", err)
		}
		if err := a.Add(e.Brand, e.File); err != nil {
			return nil, err
		}
	}
	return a.Close()
}

// EntryName 由品牌名生成安全文件名（不含冲突处理）
func EntryName(brand string, maxNameLength int) string {
	return sanitizeName(brand, maxNameLength) + entryExt
}

// entryNamer 保证同一压缩包内文件名不重复（大小写不敏感），冲突时追加 _2、_3…
type entryNamer struct {
	maxLen int
	used   map[string]struct{}
}

func newEntryNamer(maxLen int) *entryNamer {
	if maxLen <= 0 {
		maxLen = DefaultMaxNameLength
	}
	return &entryNamer{maxLen: maxLen, used: make(map[string]struct{})}
}

func (n *entryNamer) next(brand string) string {
	base := sanitizeName(brand, n.maxLen)
	name := base
	for i := 2; n.taken(name); i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	n.used[cases.Fold().String(name)] = struct{}{}
	return name + entryExt
}

func (n *entryNamer) taken(name string) bool {
	_, ok := n.used[cases.Fold().String(name)]
	return ok
}

// sanitizeName 字母、数字、组合符号保留，其余连续字符替换为单个 _，截断到 maxLen 个字符
func sanitizeName(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxNameLength
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}

	name := strings.Trim(b.String(), "_")
	if runes := []rune(name); len(runes) > maxLen {
		name = strings.TrimRight(string(runes[:maxLen]), "_")
	}
	if name == "" {
		return "brand"
	}
	return name
}
