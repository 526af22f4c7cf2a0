package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kozaktomas/face-kiosk/internal/backend"
	"github.com/kozaktomas/face-kiosk/internal/camera"
	"github.com/kozaktomas/face-kiosk/internal/cart"
	"github.com/kozaktomas/face-kiosk/internal/config"
	"github.com/kozaktomas/face-kiosk/internal/kiosk"
	"github.com/kozaktomas/face-kiosk/internal/register"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive kiosk",
	Long: `Run the kiosk loop on this terminal: capture a photo, validate it
against the backend and either register the customer or open the ordering
dashboard. Frames are read from the camera frame directory.`,
	RunE: runKiosk,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("backend", "", "Backend base URL (overrides KIOSK_BACKEND_URL)")
	runCmd.Flags().String("frames", "", "Camera frame directory (overrides KIOSK_CAMERA_DIR)")
}

// kioskUI wires the phase components together and drives one customer
// after another through the capture/registration/dashboard cycle.
type kioskUI struct {
	cfg        *config.Config
	router     *kiosk.Router
	client     *backend.Client
	controller *camera.Controller
	in         *bufio.Scanner
}

func runKiosk(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if v := mustGetString(cmd, "backend"); v != "" {
		cfg.Backend.URL = v
	}
	if v := mustGetString(cmd, "frames"); v != "" {
		cfg.Camera.FramesDir = v
	}
	if cfg.Camera.FramesDir == "" {
		return errors.New("KIOSK_CAMERA_DIR environment variable is required")
	}

	client, err := backend.NewClient(cfg.Backend.URL)
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}

	router := kiosk.NewRouter()
	device := camera.NewFileDevice(cfg.Camera.FramesDir)

	ui := &kioskUI{
		cfg:        cfg,
		router:     router,
		client:     client,
		controller: camera.NewController(device, router, client),
		in:         bufio.NewScanner(os.Stdin),
	}

	fmt.Printf("Face Kiosk (backend %s)\n", cfg.Backend.URL)
	return ui.loop()
}

func (ui *kioskUI) loop() error {
	for {
		var done bool
		switch ui.router.Session().Phase {
		case kiosk.PhaseCapture:
			done = ui.runCapture()
		case kiosk.PhaseRegistration:
			done = ui.runRegistration()
		case kiosk.PhaseDashboard:
			done = ui.runDashboard()
		}
		if done {
			return nil
		}
	}
}

// prompt prints the prompt and reads one line. Returns false on EOF,
// which ends the kiosk loop.
func (ui *kioskUI) prompt(p string) (string, bool) {
	fmt.Printf("%s> ", p)
	if !ui.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(ui.in.Text()), true
}

// withSpinner runs fn while showing an indeterminate spinner, the
// kiosk's stand-in for a loading indicator during backend calls.
func withSpinner(description string, fn func() error) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
	)

	done := make(chan error, 1)
	go func() { done <- fn() }()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			bar.Finish()
			fmt.Println()
			return err
		case <-ticker.C:
			bar.Add(1)
		}
	}
}

// runCapture drives the capture phase until the session moves on or the
// operator quits. Returns true when the kiosk should exit.
func (ui *kioskUI) runCapture() bool {
	ui.controller.StartStream()
	fmt.Println("\n== Look At The Camera ==")

	for ui.router.Session().Phase == kiosk.PhaseCapture {
		sess := ui.router.Session()

		if sess.Image == "" {
			input, ok := ui.prompt("[c]apture / [q]uit")
			if !ok {
				return true
			}
			switch input {
			case "c", "capture":
				if err := ui.controller.Capture(); err != nil {
					fmt.Fprintf(os.Stderr, "capture failed: %v\n", err)
					continue
				}
				fmt.Println("Photo taken.")
			case "q", "quit":
				return true
			}
			continue
		}

		input, ok := ui.prompt("[v]alidate / [n]ew photo / [q]uit")
		if !ok {
			return true
		}
		switch input {
		case "v", "validate":
			err := withSpinner("Validating", func() error {
				return ui.controller.Validate(context.Background())
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "validation failed: %v\n", err)
				fmt.Println("Backend unreachable - take a new photo and try again.")
			}
		case "n", "new":
			ui.controller.Retake()
			fmt.Println("Photo discarded, stream resumed.")
		case "q", "quit":
			return true
		}
	}
	return false
}

// runRegistration drives the registration form until the session moves
// on. Returns true when the kiosk should exit.
func (ui *kioskUI) runRegistration() bool {
	form := register.NewForm(ui.router, ui.client)
	fmt.Println("\n== New Customer ==")

	for ui.router.Session().Phase == kiosk.PhaseRegistration {
		renderDraft(form.Draft())

		input, ok := ui.prompt("name/phone/email <value>, [s]ubmit, [c]ancel")
		if !ok {
			return true
		}

		field, value, _ := strings.Cut(input, " ")
		switch field {
		case "name":
			form.SetName(value)
		case "phone":
			form.SetPhone(value)
		case "email":
			form.SetEmail(value)
		case "s", "submit":
			err := withSpinner("Registering", func() error {
				return form.Submit(context.Background())
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "registration failed: %v\n", err)
				fmt.Println("Backend unreachable - check the fields and try again.")
			}
		case "c", "cancel":
			form.Cancel()
		}
	}
	return false
}

// runDashboard drives the ordering dashboard until the session resets.
// Returns true when the kiosk should exit.
func (ui *kioskUI) runDashboard() bool {
	manager := cart.NewManager(ui.router, ui.client)

	sess := ui.router.Session()
	fmt.Println("\n== Dashboard ==")
	renderProfile(sess.User)
	renderHistory(sess.User.History)

	for ui.router.Session().Phase == kiosk.PhaseDashboard {
		if manager.State() == cart.Confirmed {
			fmt.Printf("\nYour order id is %s\n", manager.ConfirmationID())
			input, ok := ui.prompt("[n]ew order")
			if !ok {
				return true
			}
			if input == "n" || input == "new" {
				manager.NewOrder()
			}
			continue
		}

		renderCatalog(ui.cfg.Catalog.Items)
		renderCart(manager.Cart())

		input, ok := ui.prompt("item number, [o]rder, [c]ancel")
		if !ok {
			return true
		}
		switch input {
		case "o", "order":
			err := withSpinner("Placing order", func() error {
				return manager.Order(context.Background())
			})
			switch {
			case errors.Is(err, cart.ErrEmptyCart):
				fmt.Println("Add at least one item before ordering.")
			case err != nil:
				fmt.Fprintf(os.Stderr, "order failed: %v\n", err)
				fmt.Println("Backend unreachable - try again.")
			}
		case "c", "cancel":
			manager.Cancel()
		default:
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 || n > len(ui.cfg.Catalog.Items) {
				fmt.Println("Unknown command.")
				continue
			}
			manager.AddItem(ui.cfg.Catalog.Items[n-1])
		}
	}
	return false
}
