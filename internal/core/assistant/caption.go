package assistant

import (
	"strings"

	"golang.org/x/text/language"
)

// phraseSize 每条字幕包含的单词数
const phraseSize = 4

// Word whisper 返回的逐词时间戳
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Caption 一条字幕
type Caption struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// GroupWords 把逐词时间戳分组为字幕短语
// 每 size 个词一条，起止时间取组内首词开始与末词结束
func GroupWords(words []Word, size int) []Caption {
	if size <= 0 {
		size = phraseSize
	}
	out := make([]Caption, 0, (len(words)+size-1)/size)
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		parts := make([]string, 0, size)
		for _, w := range words[i:end] {
			parts = append(parts, strings.TrimSpace(w.Word))
		}
		out = append(out, Caption{
			Text:  strings.Join(parts, " "),
			Start: words[i].Start,
			End:   words[end-1].End,
		})
	}
	return out
}

// NormalizeLanguage 把用户输入归一化为 BCP-47 主语言代码
// 无法解析时回落到英语
func NormalizeLanguage(s string) string {
	if s == "" {
		return "en"
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "en"
	}
	base, _ := tag.Base()
	return base.String()
}
