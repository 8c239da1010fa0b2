package util

import (
	"errors"
	"os/exec"
	"runtime"
)

// browserCommands 按优先级列出各平台打开 URL 的命令
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		// rundll32 在 Windows 7 上比 cmd /c start 稳定
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	}
	cmds := [][]string{{"xdg-open", url}}
	for _, b := range []string{"sensible-browser", "google-chrome", "firefox", "chromium-browser"} {
		cmds = append(cmds, []string{b, url})
	}
	return cmds
}

// OpenBrowser 依次尝试各平台命令打开默认浏览器
func OpenBrowser(url string) error {
	var errs []error
	for _, argv := range browserCommands(runtime.GOOS, url) {
		err := exec.Command(argv[0], argv[1:]...).Start()
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
