package compositor

import (
	"image"

	"github.com/vidit-app/vidit/internal/core/timeline"
)

// ApplyFilters 按滤镜链顺序就地处理帧
// 链为空时原样返回，不做任何像素遍历
func ApplyFilters(img *image.NRGBA, chain []timeline.Filter) *image.NRGBA {
	for _, f := range chain {
		switch f.Name {
		case timeline.FilterBlur:
			img = boxBlur(img, int(f.Value))
		case timeline.FilterBrightness:
			adjustBrightness(img, f.Value/100)
		case timeline.FilterContrast:
			adjustContrast(img, f.Value/100)
		case timeline.FilterSaturation:
			adjustSaturation(img, f.Value/100)
		case timeline.FilterSepia:
			applySepia(img, f.Value/100)
		case timeline.FilterGrayscale:
			applyGrayscale(img, f.Value/100)
		}
	}
	return img
}

// boxBlur 半径 r 的两趟盒式模糊（水平+垂直）
func boxBlur(src *image.NRGBA, r int) *image.NRGBA {
	if r <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := image.NewNRGBA(b)
	dst := image.NewNRGBA(b)

	// 水平
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sr, sg, sb, sa, n int
			for dx := -r; dx <= r; dx++ {
				xx := x + dx
				if xx < 0 || xx >= w {
					continue
				}
				i := y*src.Stride + xx*4
				sr += int(src.Pix[i])
				sg += int(src.Pix[i+1])
				sb += int(src.Pix[i+2])
				sa += int(src.Pix[i+3])
				n++
			}
			i := y*tmp.Stride + x*4
			tmp.Pix[i] = uint8(sr / n)
			tmp.Pix[i+1] = uint8(sg / n)
			tmp.Pix[i+2] = uint8(sb / n)
			tmp.Pix[i+3] = uint8(sa / n)
		}
	}
	// 垂直
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sr, sg, sb, sa, n int
			for dy := -r; dy <= r; dy++ {
				yy := y + dy
				if yy < 0 || yy >= h {
					continue
				}
				i := yy*tmp.Stride + x*4
				sr += int(tmp.Pix[i])
				sg += int(tmp.Pix[i+1])
				sb += int(tmp.Pix[i+2])
				sa += int(tmp.Pix[i+3])
				n++
			}
			i := y*dst.Stride + x*4
			dst.Pix[i] = uint8(sr / n)
			dst.Pix[i+1] = uint8(sg / n)
			dst.Pix[i+2] = uint8(sb / n)
			dst.Pix[i+3] = uint8(sa / n)
		}
	}
	return dst
}

func adjustBrightness(img *image.NRGBA, factor float64) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = clampByte(float64(img.Pix[i]) * factor)
		img.Pix[i+1] = clampByte(float64(img.Pix[i+1]) * factor)
		img.Pix[i+2] = clampByte(float64(img.Pix[i+2]) * factor)
	}
}

func adjustContrast(img *image.NRGBA, factor float64) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = clampByte((float64(img.Pix[i])-128)*factor + 128)
		img.Pix[i+1] = clampByte((float64(img.Pix[i+1])-128)*factor + 128)
		img.Pix[i+2] = clampByte((float64(img.Pix[i+2])-128)*factor + 128)
	}
}

func adjustSaturation(img *image.NRGBA, factor float64) {
	for i := 0; i < len(img.Pix); i += 4 {
		r, g, b := float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])
		gray := luma(r, g, b)
		img.Pix[i] = clampByte(gray + (r-gray)*factor)
		img.Pix[i+1] = clampByte(gray + (g-gray)*factor)
		img.Pix[i+2] = clampByte(gray + (b-gray)*factor)
	}
}

// applySepia 按比例 amount(0~1) 混入褐色调
func applySepia(img *image.NRGBA, amount float64) {
	for i := 0; i < len(img.Pix); i += 4 {
		r, g, b := float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])
		sr := 0.393*r + 0.769*g + 0.189*b
		sg := 0.349*r + 0.686*g + 0.168*b
		sb := 0.272*r + 0.534*g + 0.131*b
		img.Pix[i] = clampByte(r + (sr-r)*amount)
		img.Pix[i+1] = clampByte(g + (sg-g)*amount)
		img.Pix[i+2] = clampByte(b + (sb-b)*amount)
	}
}

// applyGrayscale 按比例 amount(0~1) 混入灰度
func applyGrayscale(img *image.NRGBA, amount float64) {
	for i := 0; i < len(img.Pix); i += 4 {
		r, g, b := float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])
		gray := luma(r, g, b)
		img.Pix[i] = clampByte(r + (gray-r)*amount)
		img.Pix[i+1] = clampByte(g + (gray-g)*amount)
		img.Pix[i+2] = clampByte(b + (gray-b)*amount)
	}
}

func luma(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
