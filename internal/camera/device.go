package camera

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"
)

// Device is the camera collaborator the capture controller streams from.
// Implementations own the hardware (or its stand-in); the controller is
// the only component that may hold a started device.
type Device interface {
	// Start acquires the device and begins streaming.
	Start() error
	// Frame returns the current frame. Only valid while streaming.
	Frame() (image.Image, error)
	// Stop releases the device.
	Stop()
}

// ErrDeviceStopped is returned when a frame is requested from a device
// that is not streaming.
var ErrDeviceStopped = errors.New("camera device is not streaming")

// FileDevice simulates a camera by cycling through the image files of a
// directory. It stands in for real capture hardware on development
// machines and in tests.
type FileDevice struct {
	dir     string
	files   []string
	next    int
	running bool
}

// NewFileDevice creates a FileDevice reading frames from dir.
func NewFileDevice(dir string) *FileDevice {
	return &FileDevice{dir: dir}
}

func (d *FileDevice) Start() error {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return fmt.Errorf("could not open frame directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if slices.Contains([]string{".png", ".jpg", ".jpeg", ".bmp"}, ext) {
			files = append(files, filepath.Join(d.dir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no image files in %s", d.dir)
	}

	d.files = files
	d.running = true
	return nil
}

func (d *FileDevice) Frame() (image.Image, error) {
	if !d.running {
		return nil, ErrDeviceStopped
	}

	path := d.files[d.next]
	d.next = (d.next + 1) % len(d.files)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open frame %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode frame %s: %w", path, err)
	}
	return img, nil
}

func (d *FileDevice) Stop() {
	d.running = false
}
