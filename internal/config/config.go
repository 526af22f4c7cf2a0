package config

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Config struct {
	Backend BackendConfig
	Camera  CameraConfig
	Catalog CatalogConfig
}

type BackendConfig struct {
	URL string // base origin of the identity/order service
}

type CameraConfig struct {
	FramesDir string // directory the file-backed camera device reads frames from
}

// CatalogConfig is the fixed item catalog offered on the dashboard.
// Catalog contents are deployment configuration, not application state.
type CatalogConfig struct {
	Items []CatalogItem `yaml:"items"`
}

type CatalogItem struct {
	Name  string  `yaml:"name" json:"name"`
	Price float64 `yaml:"price" json:"price"`
	Image string  `yaml:"image" json:"image"`
}

func Load() *Config {
	var catalog CatalogConfig
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded catalog.yaml: " + err.Error())
	}

	return &Config{
		Backend: BackendConfig{
			URL: envString("KIOSK_BACKEND_URL", "http://localhost:8080"),
		},
		Camera: CameraConfig{
			FramesDir: os.Getenv("KIOSK_CAMERA_DIR"),
		},
		Catalog: catalog,
	}
}

// envString reads an environment variable, falling back to a default
// when unset or empty.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// Item returns the catalog item with the given name, if present.
func (c *CatalogConfig) Item(name string) (CatalogItem, bool) {
	for _, item := range c.Items {
		if item.Name == name {
			return item, true
		}
	}
	return CatalogItem{}, false
}
