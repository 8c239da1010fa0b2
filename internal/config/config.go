package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/Youssefghazawy13/Slotx-Sales-reports/internal/parser"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Report ReportConfig `toml:"report"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port           int      `toml:"port"`
	DevMode        bool     `toml:"dev_mode"`
	RequestTimeout Duration `toml:"request_timeout"`
	MaxUploadMB    int64    `toml:"max_upload_mb"`
	AllowOrigins   []string `toml:"allow_origins"`
}

// DataConfig 数据配置
type DataConfig struct {
	TempDir string `toml:"temp_dir"` // 上传文件的临时目录，空表示系统临时目录
}

// ReportConfig 报表生成配置
type ReportConfig struct {
	NumericPolicy string `toml:"numeric_policy"`  // zero / reject
	MaxNameLength int    `toml:"max_name_length"` // 压缩包内文件名最大字符数（不含扩展名）
	ArchiveName   string `toml:"archive_name"`
	SheetIndex    int    `toml:"sheet_index"` // -1 表示按表头自动识别
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// Duration 可用 "30s" / "2m" 写在 toml 里的时长
type Duration struct {
	time.Duration
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText 实现 encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:           8501,
			DevMode:        false,
			RequestTimeout: Duration{2 * time.Minute},
			MaxUploadMB:    50,
			AllowOrigins:   []string{"*"},
		},
		Data: DataConfig{
			TempDir: "",
		},
		Report: ReportConfig{
			NumericPolicy: string(parser.NumericZero),
			MaxNameLength: 64,
			ArchiveName:   "Brands_Reports.zip",
			SheetIndex:    -1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath 默认配置文件路径：可执行文件同目录下的 config.toml
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfig 从默认路径加载配置
func LoadConfig() (*AppConfig, error) {
	return Load(DefaultPath())
}

// Load 从指定 toml 文件加载配置；文件不存在时使用默认配置。
// 之后应用 SLOTX_* 环境变量覆盖并校验。
func Load(path string) (*AppConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, err
	}

	if err := applyEnv(config, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig 保存配置
func SaveConfig(path string, config *AppConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate 校验配置取值
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive: %d", c.Server.MaxUploadMB)
	}
	if _, err := parser.ParseNumericPolicy(c.Report.NumericPolicy); err != nil {
		return fmt.Errorf("report.numeric_policy: %w", err)
	}
	if c.Report.MaxNameLength <= 0 {
		return fmt.Errorf("report.max_name_length must be positive: %d", c.Report.MaxNameLength)
	}
	if c.Report.ArchiveName == "" {
		return fmt.Errorf("report.archive_name must not be empty")
	}
	if c.Report.SheetIndex < -1 {
		return fmt.Errorf("report.sheet_index must be -1 or a sheet index: %d", c.Report.SheetIndex)
	}
	return nil
}

// NumericPolicy 解析后的数值策略（已通过 Validate）
func (c *AppConfig) NumericPolicy() parser.NumericPolicy {
	p, _ := parser.ParseNumericPolicy(c.Report.NumericPolicy)
	return p
}

// MaxUploadBytes 单个上传文件大小上限
func (c *AppConfig) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}

// 环境变量覆盖（用于容器部署 / 本地运行）
func applyEnv(c *AppConfig, lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"SLOTX_PORT":            &c.Server.Port,
		"SLOTX_MAX_NAME_LENGTH": &c.Report.MaxNameLength,
		"SLOTX_SHEET_INDEX":     &c.Report.SheetIndex,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	strs := map[string]*string{
		"SLOTX_TEMP_DIR":       &c.Data.TempDir,
		"SLOTX_NUMERIC_POLICY": &c.Report.NumericPolicy,
		"SLOTX_ARCHIVE_NAME":   &c.Report.ArchiveName,
		"SLOTX_LOG_LEVEL":      &c.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("SLOTX_MAX_UPLOAD_MB"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SLOTX_MAX_UPLOAD_MB: %w", err)
		}
		c.Server.MaxUploadMB = n
	}
	if v, ok := lookup("SLOTX_REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SLOTX_REQUEST_TIMEOUT: %w", err)
		}
		c.Server.RequestTimeout = Duration{d}
	}
	if v, ok := lookup("SLOTX_DEV_MODE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SLOTX_DEV_MODE: %w", err)
		}
		c.Server.DevMode = b
	}
	return nil
}
