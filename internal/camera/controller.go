package camera

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kozaktomas/face-kiosk/internal/backend"
	"github.com/kozaktomas/face-kiosk/internal/kiosk"
)

var (
	// ErrNotStreaming is returned when Capture is called without an
	// active stream.
	ErrNotStreaming = errors.New("no active camera stream")
	// ErrNoImage is returned when Validate is called before a frame has
	// been captured.
	ErrNoImage = errors.New("no captured image")
)

// Controller drives the capture phase: it owns the camera device,
// freezes frames and hands them to the identity service. Exactly one
// active stream exists per controller.
type Controller struct {
	device    Device
	router    *kiosk.Router
	client    *backend.Client
	streaming bool
}

// NewController creates a capture controller. The stream is not started
// until StartStream is called.
func NewController(device Device, router *kiosk.Router, client *backend.Client) *Controller {
	return &Controller{
		device: device,
		router: router,
		client: client,
	}
}

// StartStream acquires the camera device. A device failure is logged and
// leaves the controller without a stream; the attempt is over but the
// application keeps running.
func (c *Controller) StartStream() {
	if c.streaming {
		return
	}
	if err := c.device.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not start camera: %v\n", err)
		return
	}
	c.streaming = true
}

// Streaming reports whether a camera stream is active.
func (c *Controller) Streaming() bool {
	return c.streaming
}

// Capture freezes the current frame, rasters it to 640x480, stores the
// PNG data URL in the session and releases the camera.
func (c *Controller) Capture() error {
	if !c.streaming {
		return ErrNotStreaming
	}

	frame, err := c.device.Frame()
	if err != nil {
		return fmt.Errorf("could not grab frame: %w", err)
	}

	dataURL, err := RasterFrame(frame)
	if err != nil {
		return fmt.Errorf("could not raster frame: %w", err)
	}

	c.device.Stop()
	c.streaming = false
	c.router.Apply(kiosk.SetImage{Image: dataURL})
	return nil
}

// Retake discards the captured frame and resumes streaming.
func (c *Controller) Retake() {
	c.router.Apply(kiosk.SetImage{})
	c.StartStream()
}

// Validate submits the captured image for identification and routes the
// session: a known face lands on the dashboard with the returned
// profile, an unknown one on registration. The cropped face region
// replaces the full frame in both cases. A transport failure leaves the
// session unchanged so the user can retake and retry.
func (c *Controller) Validate(ctx context.Context) error {
	sess := c.router.Session()
	if sess.Image == "" {
		return ErrNoImage
	}

	gen := c.router.Generation()
	result, err := c.client.Validate(ctx, sess.Image)
	if err != nil {
		return fmt.Errorf("validating photo: %w", err)
	}

	if result.User != nil {
		c.router.ApplyAt(gen,
			kiosk.SetImage{Image: result.ROI},
			kiosk.SetUser{User: *result.User},
			kiosk.SetPhase{Next: kiosk.PhaseDashboard},
		)
	} else {
		c.router.ApplyAt(gen,
			kiosk.SetImage{Image: result.ROI},
			kiosk.SetPhase{Next: kiosk.PhaseRegistration},
		)
	}
	return nil
}
