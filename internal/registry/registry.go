package registry

import (
	"slices"
	"sync"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/standard"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"

	"go.uber.org/zap"
)

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the registry logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMobile enables the mobile transport adapter.
// detect decides on every merge whether the environment qualifies;
// build is called lazily until it succeeds once.
func WithMobile(detect func() bool, build func() (wallet.Adapter, error)) Option {
	return func(r *Registry) {
		r.detectMobile = detect
		r.buildMobile = build
	}
}

// Registry keeps the ordered, name-unique set of available adapters
type Registry struct {
	defaults     []wallet.Adapter
	discovery    standard.Discovery
	logger       *zap.Logger
	detectMobile func() bool
	buildMobile  func() (wallet.Adapter, error)

	// lifecycle serializes every change to adapters and mobile construction
	lifecycle sync.Mutex
	mobile    wallet.Adapter
	offs      []func()

	mu       sync.RWMutex
	adapters []wallet.Adapter
}

// New creates a registry over bundled defaults and a discovery channel
func New(defaults []wallet.Adapter, discovery standard.Discovery, opts ...Option) *Registry {
	r := &Registry{
		defaults:  slices.Clone(defaults),
		discovery: discovery,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init performs the first merge and subscribes to discovery events. Calling it again is a no-op.
func (r *Registry) Init() {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()
	if r.offs != nil {
		return
	}

	r.swap(r.merge())
	if r.discovery != nil {
		r.offs = append(r.offs,
			r.discovery.On(standard.EventRegister, r.onRegister),
			r.discovery.On(standard.EventUnregister, r.onUnregister),
		)
	} else {
		r.offs = []func(){}
	}
	r.logger.Info("wallet registry initialized", zap.Int("count", len(r.List())))
}

// Refresh recomputes the adapter set from scratch
func (r *Registry) Refresh() {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()
	r.swap(r.merge())
	r.logger.Info("wallet adapters refreshed", zap.Int("count", len(r.List())))
}

// Teardown unsubscribes from discovery events
func (r *Registry) Teardown() {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()
	for _, off := range r.offs {
		off()
	}
	r.offs = nil
}

// List returns the current adapters. The slice is a copy; adapters keep their identity.
func (r *Registry) List() []wallet.Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.adapters)
}

// releaser is implemented by adapters that hold wallet subscriptions
type releaser interface {
	Release()
}

// swap installs the next adapter set and releases adapters that left it.
// Callers hold lifecycle.
func (r *Registry) swap(adapters []wallet.Adapter) {
	r.mu.Lock()
	prev := r.adapters
	r.adapters = adapters
	r.mu.Unlock()

	for _, a := range prev {
		if slices.Contains(adapters, a) {
			continue
		}
		if rel, ok := a.(releaser); ok {
			rel.Release()
		}
	}
}

// merge must be called with lifecycle held
func (r *Registry) merge() []wallet.Adapter {
	var discovered []standard.Wallet
	if r.discovery != nil {
		discovered = r.discovery.Get()
	}
	wrapped := dedupe(standard.Wrap(discovered, r.logger))

	taken := make(map[string]bool, len(wrapped))
	for _, a := range wrapped {
		taken[a.Name()] = true
	}

	merged := make([]wallet.Adapter, 0, len(r.defaults)+len(wrapped)+1)
	if m := r.mobileAdapter(); m != nil && !taken[m.Name()] && !containsName(r.defaults, m.Name()) {
		merged = append(merged, m)
	}
	for _, d := range r.defaults {
		if !taken[d.Name()] {
			merged = append(merged, d)
		}
	}
	return append(merged, wrapped...)
}

func (r *Registry) mobileAdapter() wallet.Adapter {
	if r.detectMobile == nil || r.buildMobile == nil || !r.detectMobile() {
		return nil
	}
	if r.mobile != nil {
		return r.mobile
	}
	m, err := r.buildMobile()
	if err != nil {
		r.logger.Warn("mobile wallet adapter unavailable", zap.Error(err))
		return nil
	}
	r.mobile = m
	return m
}

func (r *Registry) onRegister(wallets ...standard.Wallet) {
	added := standard.Wrap(wallets, r.logger)
	if len(added) == 0 {
		return
	}

	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()
	current := r.List()
	next := make([]wallet.Adapter, 0, len(current)+len(added))
	for _, a := range current {
		if !containsName(added, a.Name()) {
			next = append(next, a)
		}
	}
	next = append(next, dedupe(added)...)
	r.swap(next)

	for _, a := range added {
		r.logger.Info("wallet registered", zap.String("wallet", a.Name()))
	}
}

func (r *Registry) onUnregister(wallets ...standard.Wallet) {
	names := make(map[string]bool, len(wallets))
	for _, w := range wallets {
		if w != nil {
			names[w.Name()] = true
		}
	}

	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()
	current := r.List()
	next := make([]wallet.Adapter, 0, len(current))
	for _, a := range current {
		if names[a.Name()] {
			r.logger.Info("wallet unregistered", zap.String("wallet", a.Name()))
			continue
		}
		next = append(next, a)
	}
	r.swap(next)
}

func containsName(adapters []wallet.Adapter, name string) bool {
	return slices.ContainsFunc(adapters, func(a wallet.Adapter) bool {
		return a.Name() == name
	})
}

// dedupe keeps the last adapter for each name, in order of last appearance
func dedupe(adapters []wallet.Adapter) []wallet.Adapter {
	out := make([]wallet.Adapter, 0, len(adapters))
	for i, a := range adapters {
		if !containsName(adapters[i+1:], a.Name()) {
			out = append(out, a)
		}
	}
	return out
}
