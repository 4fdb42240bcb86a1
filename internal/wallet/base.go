package wallet

import (
	"sync"

	"github.com/gagliardetto/solana-go"
)

// Info is the static identity of a wallet
type Info struct {
	Name string
	URL  string
	Icon string
}

// Base holds identity and session state shared by all adapters.
// Concrete adapters embed *Base and drive it through BeginConnect/EndConnect.
type Base struct {
	info Info

	mu         sync.RWMutex
	readyState ReadyState
	connecting bool
	connected  bool
	publicKey  *solana.PublicKey
}

// NewBase creates session state for a wallet in the given ready state
func NewBase(info Info, state ReadyState) *Base {
	return &Base{info: info, readyState: state}
}

func (b *Base) Name() string { return b.info.Name }
func (b *Base) URL() string  { return b.info.URL }
func (b *Base) Icon() string { return b.info.Icon }

func (b *Base) ReadyState() ReadyState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readyState
}

// SetReadyState updates readiness, e.g. when a provider appears late
func (b *Base) SetReadyState(state ReadyState) {
	b.mu.Lock()
	b.readyState = state
	b.mu.Unlock()
}

func (b *Base) Connecting() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.connecting
}

func (b *Base) Connected() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.connected
}

func (b *Base) PublicKey() *solana.PublicKey {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.publicKey == nil {
		return nil
	}
	pk := *b.publicKey
	return &pk
}

// BeginConnect moves the session to connecting.
// Returns false if a connect is already running or the session is open.
func (b *Base) BeginConnect() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.connecting || b.connected {
		return false
	}
	b.connecting = true
	return true
}

// EndConnect finishes a connect attempt. A nil key means the attempt failed.
func (b *Base) EndConnect(pk *solana.PublicKey) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connecting = false
	if pk == nil {
		return
	}
	key := *pk
	b.publicKey = &key
	b.connected = true
}

// SetPublicKey replaces the account of an open session (account switch)
func (b *Base) SetPublicKey(pk solana.PublicKey) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.connected {
		b.publicKey = &pk
	}
}

// ResetConnection closes the session state
func (b *Base) ResetConnection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connecting = false
	b.connected = false
	b.publicKey = nil
}
