package exporter

// ProgressEvent 导出进度事件（用于 UI 展示）
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
	Brand   string `json:"brand,omitempty"`
}

func reportProgress(progress func(ProgressEvent), percent int, stage, brand string) {
	if progress == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	progress(ProgressEvent{
		Percent: percent,
		Stage:   stage,
		Brand:   brand,
	})
}

// scalePercent 把第 done/total 步映射到 [from, to] 区间
func scalePercent(from, to, done, total int) int {
	if total <= 0 {
		return to
	}
	return from + (to-from)*done/total
}
