package camera

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
)

// Captured frames are rastered to a fixed resolution before encoding,
// matching what the identity service expects.
const (
	FrameWidth  = 640
	FrameHeight = 480
)

const dataURLPrefix = "data:image/png;base64,"

// RasterFrame scales a frame onto a 640x480 canvas and encodes it as a
// PNG data URL, the transport format of the backend contract.
func RasterFrame(img image.Image) (string, error) {
	dst := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return "", fmt.Errorf("could not encode frame: %w", err)
	}
	return EncodeDataURL(buf.Bytes()), nil
}

// EncodeDataURL wraps PNG bytes as a base64 data URL.
func EncodeDataURL(data []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL decodes a base64 image data URL back into an image.
// The media type prefix is not validated beyond the data URL shape so
// PNG and JPEG payloads both decode.
func DecodeDataURL(s string) (image.Image, error) {
	_, payload, ok := strings.Cut(s, ";base64,")
	if !ok {
		return nil, fmt.Errorf("not a base64 data URL")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("could not decode data URL payload: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	return img, nil
}
