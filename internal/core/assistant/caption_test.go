package assistant

import (
	"math"
	"testing"
)

func TestGroupWords(t *testing.T) {
	words := []Word{
		{Word: "hello", Start: 0.0, End: 0.4},
		{Word: "world", Start: 0.5, End: 0.9},
		{Word: "this", Start: 1.0, End: 1.2},
		{Word: "is", Start: 1.3, End: 1.4},
		{Word: "a", Start: 1.5, End: 1.6},
		{Word: "test", Start: 1.7, End: 2.1},
	}
	out := GroupWords(words, 4)
	if len(out) != 2 {
		t.Fatalf("expected 2 captions, got %d", len(out))
	}
	if out[0].Text != "hello world this is" {
		t.Fatalf("caption[0] = %q", out[0].Text)
	}
	if math.Abs(out[0].Start-0.0) > 1e-9 || math.Abs(out[0].End-1.4) > 1e-9 {
		t.Fatalf("caption[0] span = %v..%v", out[0].Start, out[0].End)
	}
	// 尾组不足 4 词
	if out[1].Text != "a test" {
		t.Fatalf("caption[1] = %q", out[1].Text)
	}
	if math.Abs(out[1].Start-1.5) > 1e-9 || math.Abs(out[1].End-2.1) > 1e-9 {
		t.Fatalf("caption[1] span = %v..%v", out[1].Start, out[1].End)
	}
}

func TestGroupWordsEmpty(t *testing.T) {
	if out := GroupWords(nil, 4); len(out) != 0 {
		t.Fatalf("expected no captions, got %d", len(out))
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{
		"":           "en",
		"en":         "en",
		"zh-CN":      "zh",
		"pt-BR":      "pt",
		"not a tag!": "en",
	}
	for in, want := range cases {
		if got := NormalizeLanguage(in); got != want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
