package api

import (
	"net/url"
	"strings"
)

// buildContentDisposition attachment 头：ASCII 回退名 + RFC 5987 UTF-8 名
func buildContentDisposition(name string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	return `attachment; filename="` + fallback + `"; filename*=UTF-8''` + url.PathEscape(name)
}
