package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/san-kum/latentwalk/internal/latent"
)

// ToImage converts a [1, H, W, 3] chart tensor into an image.
func ToImage(t latent.Tensor) (image.Image, error) {
	if len(t.Shape) != 4 || t.Shape[0] != 1 || t.Shape[3] != 3 {
		return nil, fmt.Errorf("chart: tensor shape %v is not [1 H W 3]", t.Shape)
	}
	h, w := t.Shape[1], t.Shape[2]
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := (y*w + x) * 3
			img.SetRGBA(x, y, color.RGBA{
				R: channelByte(t.Data[base]),
				G: channelByte(t.Data[base+1]),
				B: channelByte(t.Data[base+2]),
				A: 255,
			})
		}
	}
	return img, nil
}

// EncodePNG writes a chart tensor as PNG.
func EncodePNG(w io.Writer, t latent.Tensor) error {
	img, err := ToImage(t)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func channelByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
