// Package bridge assembles the wallet registry, session bridge and HTTP surface.
// Hosts that embed it supply wallets through Options and Service.Register.
package bridge

import (
	"fmt"
	"net/http"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/api"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/defaults"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/facade"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/icon"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/registry"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/session"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/standard"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"

	"go.uber.org/zap"
)

type (
	// Provider is an injected wallet API backing a bundled adapter
	Provider = defaults.Provider
	// Wallet is a wallet-standard wallet announced on discovery
	Wallet = standard.Wallet
	// Adapter is the uniform wallet surface
	Adapter = wallet.Adapter
)

// Options configures a Service
type Options struct {
	Logger *zap.Logger

	// Providers back the bundled Phantom and Solflare adapters, keyed by wallet name.
	// A bundled wallet without a provider is listed as not installed.
	Providers map[string]Provider
	// Wallets are announced before the first merge
	Wallets []Wallet

	// MobileDetect and MobileBuild enable the mobile transport adapter
	MobileDetect func() bool
	MobileBuild  func() (Adapter, error)

	OpenInstallLinks bool
	IconSize         int
	IconCacheSize    int
}

// Service owns one wallet registry and the HTTP handler serving it
type Service struct {
	hub      *standard.Hub
	registry *registry.Registry
	library  *facade.Library
	handler  http.Handler
}

// New wires a Service and performs the first merge
func New(opts Options) (*Service, error) {
	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}

	icons, err := icon.NewNormalizer(opts.IconSize, opts.IconCacheSize)
	if err != nil {
		return nil, err
	}

	hub := standard.NewHub(l.Named("discovery"))
	if len(opts.Wallets) > 0 {
		hub.Register(opts.Wallets...)
	}

	regOpts := []registry.Option{registry.WithLogger(l.Named("registry"))}
	if opts.MobileDetect != nil && opts.MobileBuild != nil {
		regOpts = append(regOpts, registry.WithMobile(opts.MobileDetect, opts.MobileBuild))
	}
	reg := registry.New(defaults.Adapters(opts.Providers), hub, regOpts...)

	var opener session.Opener = session.NoopOpener{}
	if opts.OpenInstallLinks {
		opener = session.NewBrowserOpener()
	}
	lib := facade.NewLibrary(reg, session.NewBridge(opener, l.Named("session")), icons, l)

	router, err := api.SetupRouter(lib)
	if err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	reg.Init()
	return &Service{
		hub:      hub,
		registry: reg,
		library:  lib,
		handler:  router,
	}, nil
}

// Register announces wallets that appeared after startup.
// The returned func withdraws them again.
func (s *Service) Register(wallets ...Wallet) (unregister func()) {
	return s.hub.Register(wallets...)
}

// Handler returns the HTTP surface
func (s *Service) Handler() http.Handler { return s.handler }

// Library returns the in-process facade behind the handler
func (s *Service) Library() *facade.Library { return s.library }

// Wallets returns the number of adapters currently listed
func (s *Service) Wallets() int { return len(s.registry.List()) }

// Close stops following discovery events
func (s *Service) Close() { s.registry.Teardown() }
