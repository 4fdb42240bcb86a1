package config

import (
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the application.
// Note: the cluster can change at runtime - use GetCluster()/SetCluster()
type Config struct {
	Port               string `envconfig:"PORT" default:"8080"`
	SolanaCluster      string `envconfig:"SOLANA_CLUSTER"`
	HostUserAgent      string `envconfig:"HOST_USER_AGENT"`
	HostSecureContext  bool   `envconfig:"HOST_SECURE_CONTEXT" default:"true"`
	MobileReflectorURL string `envconfig:"MOBILE_REFLECTOR_URL" default:"wss://reflector.solanamobile.com/reflect"`
	MobileQRPath       string `envconfig:"MOBILE_QR_PATH" default:"mobile_wallet_qr.png"`
	AppName            string `envconfig:"APP_NAME" default:"Wallet Bridge"`
	AppURI             string `envconfig:"APP_URI"`
	AppIcon            string `envconfig:"APP_ICON"`
	IconSize           int    `envconfig:"ICON_SIZE" default:"96"`
	IconCacheSize      int    `envconfig:"ICON_CACHE_SIZE" default:"64"`
	OpenInstallLinks   bool   `envconfig:"OPEN_INSTALL_LINKS" default:"true"`
	Debug              bool   `envconfig:"DEBUG" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

var (
	clusterMu sync.RWMutex
	cluster   string
)

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if c.IconSize <= 0 {
		return fmt.Errorf("ICON_SIZE must be positive, got %d", c.IconSize)
	}
	cfg = c
	SetCluster(c.SolanaCluster)
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetCluster returns the currently selected network cluster, empty when unset
func GetCluster() string {
	clusterMu.RLock()
	defer clusterMu.RUnlock()
	return cluster
}

// SetCluster changes the network cluster used by adapters built afterwards
func SetCluster(name string) {
	clusterMu.Lock()
	cluster = name
	clusterMu.Unlock()
}

// GetHostUserAgent returns the user agent of the host application
func GetHostUserAgent() string {
	return Get().HostUserAgent
}

// GetHostSecureContext reports whether the host runs in a secure context
func GetHostSecureContext() bool {
	return Get().HostSecureContext
}

// GetMobileReflectorURL returns the relay used by the mobile wallet transport
func GetMobileReflectorURL() string {
	return Get().MobileReflectorURL
}

// GetMobileQRPath returns where the mobile association QR code is written
func GetMobileQRPath() string {
	return Get().MobileQRPath
}

// GetAppIdentity returns name, uri and icon presented to mobile wallets
func GetAppIdentity() (name, uri, icon string) {
	c := Get()
	return c.AppName, c.AppURI, c.AppIcon
}

// GetIconSize returns the raster size for vector wallet icons
func GetIconSize() int {
	return Get().IconSize
}

// GetIconCacheSize returns the number of normalized icons kept in memory
func GetIconCacheSize() int {
	return Get().IconCacheSize
}

// GetOpenInstallLinks reports whether install pages are opened for missing wallets
func GetOpenInstallLinks() bool {
	return Get().OpenInstallLinks
}

// IsDebug reports whether development logging is enabled
func IsDebug() bool {
	return Get().Debug
}
