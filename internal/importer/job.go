package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Job 一次请求的临时工作目录，Close 时整体删除
type Job struct {
	ID        string
	Dir       string
	StartedAt time.Time
}

// NewJob 在 baseDir 下创建临时目录；baseDir 为空时使用系统临时目录
func NewJob(baseDir string) (*Job, error) {
	if baseDir != "" {
		if err := os.MkdirAll(baseDir, 0o755); err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
	}
	id := uuid.NewString()
	dir, err := os.MkdirTemp(baseDir, "slotx_"+id[:8]+"_")
	if err != nil {
		return nil, fmt.Errorf("create job dir: %w", err)
	}
	return &Job{ID: id, Dir: dir, StartedAt: time.Now()}, nil
}

// Path 作业目录内的文件路径，只保留文件名部分
func (j *Job) Path(name string) string {
	return filepath.Join(j.Dir, filepath.Base(name))
}

// Save 将流写入作业目录，返回文件路径
func (j *Job) Save(name string, r io.Reader) (string, error) {
	path := j.Path(name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// Close 删除作业目录
func (j *Job) Close() error {
	return os.RemoveAll(j.Dir)
}
