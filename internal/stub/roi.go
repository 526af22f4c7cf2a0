package stub

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/kozaktomas/face-kiosk/internal/camera"
	"golang.org/x/image/draw"
)

// roiSize matches the face crop resolution of the real identity service.
const roiSize = 128

// cropROI cuts the centered square out of a captured frame and scales it
// to 128x128. The real service runs face detection here; the stub only
// reproduces the output geometry.
func cropROI(img image.Image) (string, error) {
	bounds := img.Bounds()
	side := min(bounds.Dx(), bounds.Dy())
	x0 := bounds.Min.X + (bounds.Dx()-side)/2
	y0 := bounds.Min.Y + (bounds.Dy()-side)/2
	src := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, roiSize, roiSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return "", fmt.Errorf("could not encode roi: %w", err)
	}
	return camera.EncodeDataURL(buf.Bytes()), nil
}
