package exporter

import "fmt"

// PackagingError 工作簿序列化或写入压缩包失败，整个压缩包作废
type PackagingError struct {
	Brand string
	Entry string
	Err   error
}

func (e *PackagingError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("packaging archive: %v", e.Err)
	}
	return fmt.Sprintf("packaging %s (brand %q): %v", e.Entry, e.Brand, e.Err)
}

func (e *PackagingError) Unwrap() error {
	return e.Err
}
