package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// MaxAvatarDim caps avatar width and height in pixels
const MaxAvatarDim = 512

// DownscaleAvatar decodes an uploaded image, scales it down so neither side
// exceeds MaxAvatarDim, and re-encodes it as JPEG. Images already within
// bounds are still re-encoded, which strips metadata from the upload.
func DownscaleAvatar(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > MaxAvatarDim || h > MaxAvatarDim {
		if w >= h {
			h = h * MaxAvatarDim / w
			w = MaxAvatarDim
		} else {
			w = w * MaxAvatarDim / h
			h = MaxAvatarDim
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
