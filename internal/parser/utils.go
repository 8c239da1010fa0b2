package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// 阿拉伯-印度数字与分隔符转为 ASCII
var digitFolder = runes.Map(func(r rune) rune {
	switch {
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠')
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰')
	case r == '٫':
		return '.'
	}
	return r
})

var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber 解析数值文本：去千分位（, ٬ 空格），支持阿拉伯-印度数字
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	if folded, _, err := transform.String(digitFolder, s); err == nil {
		s = folded
	}
	s = strings.NewReplacer(",", "", "٬", "", " ", "", "\u00a0", "").Replace(s)
	if !numberPattern.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// NormalizeKey 分组键：NFKC、去首尾空白、压缩内部空白、Unicode case fold
func NormalizeKey(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

// DisplayText 展示用文本：仅去首尾空白并压缩内部空白，保留原大小写
func DisplayText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
