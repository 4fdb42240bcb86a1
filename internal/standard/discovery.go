package standard

import (
	"sync"

	"go.uber.org/zap"
)

// Event is a discovery channel notification
type Event string

const (
	EventRegister   Event = "register"
	EventUnregister Event = "unregister"
)

// Listener receives the wallets an event refers to
type Listener func(wallets ...Wallet)

// Discovery is the channel through which wallets announce themselves
type Discovery interface {
	Get() []Wallet
	On(event Event, listener Listener) (off func())
}

type entry struct {
	id     uint64
	wallet Wallet
}

// Hub is an in-process Discovery wallets register with at runtime.
// Listeners run synchronously, after the hub state is updated and outside its lock.
type Hub struct {
	logger *zap.Logger

	mu        sync.RWMutex
	nextID    uint64
	wallets   []entry
	listeners map[Event]map[uint64]Listener
}

// NewHub creates an empty Hub
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:    logger,
		listeners: make(map[Event]map[uint64]Listener),
	}
}

// Get returns the currently registered wallets in registration order
func (h *Hub) Get() []Wallet {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Wallet, len(h.wallets))
	for i, e := range h.wallets {
		out[i] = e.wallet
	}
	return out
}

// On subscribes to an event. The returned func removes the subscription.
func (h *Hub) On(event Event, listener Listener) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.listeners[event] == nil {
		h.listeners[event] = make(map[uint64]Listener)
	}
	h.listeners[event][id] = listener
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners[event], id)
			h.mu.Unlock()
		})
	}
}

// Register announces wallets and returns a func that withdraws them
func (h *Hub) Register(wallets ...Wallet) (unregister func()) {
	ids := make(map[uint64]bool, len(wallets))
	h.mu.Lock()
	for _, w := range wallets {
		h.nextID++
		ids[h.nextID] = true
		h.wallets = append(h.wallets, entry{id: h.nextID, wallet: w})
	}
	h.mu.Unlock()

	h.logger.Debug("wallets registered", zap.Int("count", len(wallets)))
	h.emit(EventRegister, wallets)

	var once sync.Once
	return func() {
		once.Do(func() {
			var removed []Wallet
			h.mu.Lock()
			kept := h.wallets[:0:0]
			for _, e := range h.wallets {
				if ids[e.id] {
					removed = append(removed, e.wallet)
					continue
				}
				kept = append(kept, e)
			}
			h.wallets = kept
			h.mu.Unlock()

			h.logger.Debug("wallets unregistered", zap.Int("count", len(removed)))
			h.emit(EventUnregister, removed)
		})
	}
}

func (h *Hub) emit(event Event, wallets []Wallet) {
	if len(wallets) == 0 {
		return
	}
	h.mu.RLock()
	listeners := make([]Listener, 0, len(h.listeners[event]))
	for _, l := range h.listeners[event] {
		listeners = append(listeners, l)
	}
	h.mu.RUnlock()

	for _, l := range listeners {
		l(wallets...)
	}
}
