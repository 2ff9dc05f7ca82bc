package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Resize scales src to the given width, keeping its aspect ratio.
func Resize(src image.Image, width int) *image.RGBA {
	b := src.Bounds()
	if width <= 0 || b.Dx() == 0 {
		width = b.Dx()
	}
	height := b.Dy() * width / max(b.Dx(), 1)
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Annotate copies src and stamps label across the top in white with a black
// outline, producing the analysed output picture shown next to the input.
func Annotate(src image.Image, label string) (*image.RGBA, error) {
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)

	if label == "" {
		return img, nil
	}

	// Render at base size
	face := basicfont.Face7x13
	baseWidth := font.MeasureString(face, label).Ceil()
	baseHeight := 13

	textImg := image.NewRGBA(image.Rect(0, 0, baseWidth, baseHeight))
	drawer := &font.Drawer{
		Dst:  textImg,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: face,
		Dot:  fixed.Point26_6{Y: fixed.I(11)},
	}
	drawer.DrawString(label)

	// Scale so the label spans about 60% of the width, never below 1x.
	scale := float64(width) * 0.6 / float64(baseWidth)
	if scale < 1 {
		scale = 1
	}
	scaledWidth := int(float64(baseWidth) * scale)
	scaledHeight := int(float64(baseHeight) * scale)

	scaled := image.NewRGBA(image.Rect(0, 0, scaledWidth, scaledHeight))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), textImg, textImg.Bounds(), draw.Over, nil)

	posX := (width - scaledWidth) / 2
	posY := int(float64(height) * 0.05)
	outline := max(1, scaledHeight/10)

	set := func(x, y int, c color.RGBA) {
		if x >= 0 && x < width && y >= 0 && y < height {
			img.SetRGBA(x, y, c)
		}
	}

	for sy := 0; sy < scaledHeight; sy++ {
		for sx := 0; sx < scaledWidth; sx++ {
			if scaled.RGBAAt(sx, sy).A == 0 {
				continue
			}
			for dx := -outline; dx <= outline; dx++ {
				for dy := -outline; dy <= outline; dy++ {
					if dx*dx+dy*dy <= outline*outline {
						set(posX+sx+dx, posY+sy+dy, color.RGBA{0, 0, 0, 255})
					}
				}
			}
		}
	}
	for sy := 0; sy < scaledHeight; sy++ {
		for sx := 0; sx < scaledWidth; sx++ {
			if scaled.RGBAAt(sx, sy).A > 0 {
				set(posX+sx, posY+sy, color.RGBA{255, 255, 255, 255})
			}
		}
	}

	return img, nil
}

// Grayscale converts img to 8-bit luminance, row-major.
func Grayscale(img image.Image) (pixels []uint8, width, height int) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	pixels = make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			pixels[y*width+x] = g.Y
		}
	}
	return pixels, width, height
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}
