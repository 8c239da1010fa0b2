package parser

import (
	"fmt"
	"regexp"

	"github.com/xuri/excelize/v2"
)

// SheetRecognitionResult Sheet 识别结果
type SheetRecognitionResult struct {
	SheetName  string     `json:"sheetName"`
	Schema     SchemaKind `json:"schema"`
	Confidence float64    `json:"confidence"` // 置信度 0-1
	Complete   bool       `json:"complete"`   // 所有映射列均有表头
}

// SheetRecognizer 在工作簿中挑选与 schema 最匹配的 sheet
type SheetRecognizer struct {
	mapper   *FieldMapper
	keywords map[string]*regexp.Regexp
}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer(kind SchemaKind) (*SheetRecognizer, error) {
	mapper, err := NewFieldMapper(kind)
	if err != nil {
		return nil, err
	}
	r := &SheetRecognizer{
		mapper:   mapper,
		keywords: make(map[string]*regexp.Regexp),
	}
	for _, fm := range mapper.Mappings() {
		if fm.Keywords != "" {
			r.keywords[fm.Field] = regexp.MustCompile(fm.Keywords)
		}
	}
	return r, nil
}

// Recognize 根据表头打分：列存在占一半，表头关键词命中占一半
func (r *SheetRecognizer) Recognize(sheetName string, header []Cell) SheetRecognitionResult {
	mappings := r.mapper.Mappings()

	present := 0
	hits := 0
	for _, fm := range mappings {
		c := cellAt(header, fm.Column)
		if c.IsEmpty() {
			continue
		}
		present++
		if re, ok := r.keywords[fm.Field]; ok && re.MatchString(c.String()) {
			hits++
		}
	}

	n := float64(len(mappings))
	return SheetRecognitionResult{
		SheetName:  sheetName,
		Schema:     r.mapper.Kind(),
		Confidence: (float64(present) + float64(hits)) / (2 * n),
		Complete:   present == len(mappings),
	}
}

// Pick 读取每个 sheet 的表头，返回置信度最高的 sheet（并列取靠前者）。
// preferred >= 0 时直接使用该下标的 sheet。
func (r *SheetRecognizer) Pick(f *excelize.File, preferred int) (*Table, SheetRecognitionResult, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, SheetRecognitionResult{}, fmt.Errorf("workbook has no sheets")
	}

	if preferred >= 0 {
		if preferred >= len(sheets) {
			return nil, SheetRecognitionResult{}, fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", preferred, len(sheets))
		}
		t, err := ReadTable(f, sheets[preferred])
		if err != nil {
			return nil, SheetRecognitionResult{}, err
		}
		return t, r.Recognize(t.Name, t.Header()), nil
	}

	var (
		best       *Table
		bestResult SheetRecognitionResult
	)
	for _, name := range sheets {
		t, err := ReadTable(f, name)
		if err != nil {
			return nil, SheetRecognitionResult{}, err
		}
		res := r.Recognize(name, t.Header())
		if best == nil || res.Confidence > bestResult.Confidence {
			best = t
			bestResult = res
		}
	}
	return best, bestResult, nil
}
