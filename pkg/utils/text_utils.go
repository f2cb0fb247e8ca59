package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// MeasureFunc 返回一行文本的像素宽度
type MeasureFunc func(s string) float64

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本，"\n" 强制换行
//   - maxWidth: 最大宽度（像素）
//   - measure: 宽度测量函数
//
// 换行规则:
//   - 在空格处断行，行首行尾不保留空格
//   - 单个单词超过最大宽度时按字符强制断行
//   - 空行保留（用于段落间距）
func WrapText(textStr string, maxWidth float64, measure MeasureFunc) []string {
	if measure == nil || maxWidth <= 0 {
		return strings.Split(textStr, "\n")
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapParagraph(paragraph, maxWidth, measure)...)
	}
	return lines
}

// wrapParagraph 对不含换行符的一段文本换行
func wrapParagraph(paragraph string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = ""
		}

		// 单词本身就超宽，按字符切开
		if measure(word) > maxWidth {
			pieces := breakWord(word, maxWidth, measure)
			lines = append(lines, pieces[:len(pieces)-1]...)
			current = pieces[len(pieces)-1]
			continue
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// breakWord 按字符切分超宽单词，至少每段一个字符
func breakWord(word string, maxWidth float64, measure MeasureFunc) []string {
	var pieces []string
	current := ""
	for len(word) > 0 {
		r, size := utf8.DecodeRuneInString(word)
		word = word[size:]
		candidate := current + string(r)
		if current != "" && measure(candidate) > maxWidth {
			pieces = append(pieces, current)
			current = string(r)
			continue
		}
		current = candidate
	}
	return append(pieces, current)
}

// FaceMeasure 使用字体测量文本宽度
func FaceMeasure(face text.Face) MeasureFunc {
	return func(s string) float64 {
		if s == "" || face == nil {
			return 0
		}
		width, _ := text.Measure(s, face, 0)
		return width
	}
}

// WrapFace 用字体测量并换行
func WrapFace(textStr string, face text.Face, maxWidth float64) []string {
	return WrapText(textStr, maxWidth, FaceMeasure(face))
}
