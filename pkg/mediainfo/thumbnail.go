package mediainfo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/nfnt/resize"
)

// Thumbnail 为视频文件生成缩略图
// 抽取 at 秒处的一帧，等比缩放到给定宽度后编码为 jpeg
func (p *Prober) Thumbnail(ctx context.Context, srcPath string, at float64, width uint, outPath string) error {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-ss", strconv.FormatFloat(at, 'f', 3, 64),
		"-i", srcPath,
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "png",
		"pipe:1",
	}
	output, err := exec.CommandContext(ctx, "ffmpeg", args...).Output()
	if err != nil {
		return fmt.Errorf("ffmpeg thumbnail failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(output))
	if err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}
	return writeThumbnail(img, width, outPath)
}

// ThumbnailFromImage 为图片素材生成缩略图
func ThumbnailFromImage(srcPath string, width uint, outPath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	return writeThumbnail(img, width, outPath)
}

func writeThumbnail(img image.Image, width uint, outPath string) error {
	small := resize.Resize(width, 0, img, resize.Lanczos3)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := jpeg.Encode(out, small, &jpeg.Options{Quality: 80}); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return nil
}
