// Package standardtest provides a wallet-standard wallet backed by a local key.
package standardtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/standard"

	"github.com/gagliardetto/solana-go"
)

// Wallet is a configurable wallet-standard wallet.
// Feature values are the Wallet itself; Omit removes declared features.
type Wallet struct {
	name string
	Key  solana.PrivateKey
	Omit map[string]bool

	// ConnectErr fails standard:connect when set
	ConnectErr error

	mu        sync.Mutex
	accounts  []standard.Account
	listeners map[int]func(standard.ChangeEvent)
	nextID    int
	chains    []string
}

// New creates a wallet that declares every feature
func New(name string, omit ...string) *Wallet {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(err)
	}
	w := &Wallet{
		name:      name,
		Key:       key,
		Omit:      make(map[string]bool),
		listeners: make(map[int]func(standard.ChangeEvent)),
		chains:    []string{"solana:mainnet", "solana:devnet"},
	}
	for _, f := range omit {
		w.Omit[f] = true
	}
	return w
}

func (w *Wallet) Name() string    { return w.name }
func (w *Wallet) Icon() string    { return "data:image/png;base64,iVBORw0KGgo=" }
func (w *Wallet) Version() string { return "1.0.0" }
func (w *Wallet) Chains() []string {
	return w.chains
}

func (w *Wallet) Features() standard.Features {
	f := standard.Features{}
	for _, name := range []string{
		standard.FeatureConnect,
		standard.FeatureDisconnect,
		standard.FeatureEvents,
		standard.FeatureSolanaSignTransaction,
		standard.FeatureSolanaSignAndSendTransaction,
		standard.FeatureSolanaSignMessage,
	} {
		if !w.Omit[name] {
			f[name] = w
		}
	}
	return f
}

func (w *Wallet) Accounts() []standard.Account {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]standard.Account(nil), w.accounts...)
}

func (w *Wallet) account(key solana.PrivateKey) standard.Account {
	pk := key.PublicKey()
	return standard.Account{
		Address:   pk.String(),
		PublicKey: pk.Bytes(),
		Chains:    []string{"solana:devnet"},
		Features:  []string{standard.FeatureSolanaSignTransaction},
	}
}

func (w *Wallet) Connect(_ context.Context) ([]standard.Account, error) {
	if w.ConnectErr != nil {
		return nil, w.ConnectErr
	}
	w.mu.Lock()
	w.accounts = []standard.Account{w.account(w.Key)}
	w.mu.Unlock()
	return w.Accounts(), nil
}

func (w *Wallet) Disconnect(_ context.Context) error {
	w.mu.Lock()
	w.accounts = nil
	w.mu.Unlock()
	return nil
}

func (w *Wallet) On(event string, listener func(standard.ChangeEvent)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	id := w.nextID
	w.listeners[id] = listener
	return func() {
		w.mu.Lock()
		delete(w.listeners, id)
		w.mu.Unlock()
	}
}

// Listeners returns the number of active event subscriptions
func (w *Wallet) Listeners() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners)
}

// SwitchAccount replaces the signing key and emits a change event.
// A nil key drops every account.
func (w *Wallet) SwitchAccount(key *solana.PrivateKey) {
	w.mu.Lock()
	if key == nil {
		w.accounts = []standard.Account{}
	} else {
		w.Key = *key
		w.accounts = []standard.Account{w.account(*key)}
	}
	ev := standard.ChangeEvent{Accounts: append([]standard.Account{}, w.accounts...)}
	listeners := make([]func(standard.ChangeEvent), 0, len(w.listeners))
	for _, l := range w.listeners {
		listeners = append(listeners, l)
	}
	w.mu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
}

func (w *Wallet) SignTransaction(_ context.Context, account standard.Account, chain string, transactions ...[]byte) ([][]byte, error) {
	out := make([][]byte, 0, len(transactions))
	for i, raw := range transactions {
		tx, err := solana.TransactionFromBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		_, err = tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
			if key.Equals(w.Key.PublicKey()) {
				return &w.Key
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		signed, err := tx.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, signed)
	}
	return out, nil
}

func (w *Wallet) SignAndSendTransaction(ctx context.Context, account standard.Account, chain string, transactions ...[]byte) ([][]byte, error) {
	return nil, fmt.Errorf("sending is not available")
}

func (w *Wallet) SignMessage(_ context.Context, account standard.Account, messages ...[]byte) ([]standard.SignedMessage, error) {
	out := make([]standard.SignedMessage, 0, len(messages))
	for _, m := range messages {
		sig, err := w.Key.Sign(m)
		if err != nil {
			return nil, err
		}
		out = append(out, standard.SignedMessage{SignedMessage: m, Signature: sig[:]})
	}
	return out, nil
}
