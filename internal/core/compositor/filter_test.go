package compositor

import (
	"image"
	"testing"

	"github.com/vidit-app/vidit/internal/core/timeline"
)

func solidFrame(w, h int, r, g, b uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = 0xff
	}
	return img
}

func TestApplyFiltersEmptyChainNoop(t *testing.T) {
	img := solidFrame(4, 4, 10, 20, 30)
	out := ApplyFilters(img, nil)
	if out != img {
		t.Fatal("empty chain must return the same frame")
	}
}

func TestBrightness(t *testing.T) {
	img := solidFrame(2, 2, 100, 100, 100)
	ApplyFilters(img, []timeline.Filter{{Name: timeline.FilterBrightness, Value: 150}})
	if img.Pix[0] != 150 {
		t.Fatalf("brightness 150%% of 100 = %d, want 150", img.Pix[0])
	}

	img = solidFrame(2, 2, 200, 200, 200)
	ApplyFilters(img, []timeline.Filter{{Name: timeline.FilterBrightness, Value: 200}})
	if img.Pix[0] != 255 {
		t.Fatalf("brightness must clamp at 255, got %d", img.Pix[0])
	}
}

func TestContrast(t *testing.T) {
	img := solidFrame(2, 2, 128, 128, 128)
	ApplyFilters(img, []timeline.Filter{{Name: timeline.FilterContrast, Value: 200}})
	// 中灰在任何对比度下不变
	if img.Pix[0] != 128 {
		t.Fatalf("mid gray must stay 128, got %d", img.Pix[0])
	}

	img = solidFrame(2, 2, 160, 160, 160)
	ApplyFilters(img, []timeline.Filter{{Name: timeline.FilterContrast, Value: 200}})
	if img.Pix[0] != 192 {
		t.Fatalf("contrast 200%% of 160 = %d, want 192", img.Pix[0])
	}
}

func TestGrayscaleFull(t *testing.T) {
	img := solidFrame(2, 2, 255, 0, 0)
	ApplyFilters(img, []timeline.Filter{{Name: timeline.FilterGrayscale, Value: 100}})
	r, g, b := img.Pix[0], img.Pix[1], img.Pix[2]
	if r != g || g != b {
		t.Fatalf("full grayscale must equalize channels, got %d %d %d", r, g, b)
	}
	// 纯红的亮度 0.299*255 ≈ 76
	if r != 76 {
		t.Fatalf("red luma = %d, want 76", r)
	}
}

func TestSaturationZero(t *testing.T) {
	img := solidFrame(2, 2, 200, 50, 50)
	ApplyFilters(img, []timeline.Filter{{Name: timeline.FilterSaturation, Value: 0}})
	if img.Pix[0] != img.Pix[1] || img.Pix[1] != img.Pix[2] {
		t.Fatal("zero saturation must equalize channels")
	}
}

func TestBoxBlurAveragesNeighbours(t *testing.T) {
	// 黑底中央一个白点，模糊后能量向四周扩散
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	center := 1*img.Stride + 1*4
	img.Pix[center], img.Pix[center+1], img.Pix[center+2] = 255, 255, 255

	out := ApplyFilters(img, []timeline.Filter{{Name: timeline.FilterBlur, Value: 1}})
	if out.Pix[center] >= 255 {
		t.Fatal("center must dim after blur")
	}
	if out.Pix[0] == 0 {
		t.Fatal("corner must brighten after blur")
	}
}

func TestSepiaPartial(t *testing.T) {
	img := solidFrame(2, 2, 100, 100, 100)
	ApplyFilters(img, []timeline.Filter{{Name: timeline.FilterSepia, Value: 100}})
	r, g, b := img.Pix[0], img.Pix[1], img.Pix[2]
	// 褐色调：红 > 绿 > 蓝
	if !(r > g && g > b) {
		t.Fatalf("sepia tone mismatch: %d %d %d", r, g, b)
	}
}
