package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "face-kiosk",
	Short: "A self-service ordering kiosk with face identification",
	Long: `Face Kiosk is a self-service ordering client. It captures a customer's
photo from a camera, identifies them against a backend service and routes
them into registration (unknown face) or an ordering dashboard (known
face) where they assemble a cart and place an order.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
