package defaults

import (
	"context"
	"fmt"
	"sync"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"

	"github.com/gagliardetto/solana-go"
)

// Provider is the API a wallet injects into the host environment
type Provider interface {
	Connect(ctx context.Context) (solana.PublicKey, error)
	Disconnect(ctx context.Context) error
	SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error)
	SignAllTransactions(ctx context.Context, txs []*solana.Transaction) ([]*solana.Transaction, error)
	SignMessage(ctx context.Context, message []byte) ([]byte, error)
}

// InjectedAdapter drives a wallet through its injected Provider.
// Without a provider the wallet is NotDetected and cannot connect.
type InjectedAdapter struct {
	*wallet.Base

	mu       sync.RWMutex
	provider Provider
}

// NewInjectedAdapter creates an adapter; provider may be nil
func NewInjectedAdapter(info wallet.Info, provider Provider) *InjectedAdapter {
	state := wallet.ReadyStateNotDetected
	if provider != nil {
		state = wallet.ReadyStateInstalled
	}
	return &InjectedAdapter{
		Base:     wallet.NewBase(info, state),
		provider: provider,
	}
}

// SetProvider attaches a provider that appeared after construction
func (a *InjectedAdapter) SetProvider(p Provider) {
	a.mu.Lock()
	a.provider = p
	a.mu.Unlock()
	if p != nil {
		a.SetReadyState(wallet.ReadyStateInstalled)
	} else {
		a.ResetConnection()
		a.SetReadyState(wallet.ReadyStateNotDetected)
	}
}

func (a *InjectedAdapter) current() (Provider, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.provider == nil {
		return nil, wallet.ErrNotReady
	}
	return a.provider, nil
}

func (a *InjectedAdapter) Connect(ctx context.Context) error {
	p, err := a.current()
	if err != nil {
		return wallet.NewError(a.Name(), "connect", err, nil)
	}
	if !a.BeginConnect() {
		return nil
	}

	pk, err := p.Connect(ctx)
	if err != nil {
		a.EndConnect(nil)
		return fmt.Errorf("failed to connect: %w", err)
	}
	a.EndConnect(&pk)
	return nil
}

func (a *InjectedAdapter) Disconnect(ctx context.Context) error {
	defer a.ResetConnection()
	p, err := a.current()
	if err != nil {
		return nil
	}
	if err := p.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}

func (a *InjectedAdapter) connected() (Provider, error) {
	p, err := a.current()
	if err != nil {
		return nil, err
	}
	if !a.Connected() {
		return nil, wallet.ErrNotConnected
	}
	return p, nil
}

func (a *InjectedAdapter) SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	p, err := a.connected()
	if err != nil {
		return nil, err
	}
	return p.SignTransaction(ctx, tx)
}

func (a *InjectedAdapter) SignAllTransactions(ctx context.Context, txs []*solana.Transaction) ([]*solana.Transaction, error) {
	p, err := a.connected()
	if err != nil {
		return nil, err
	}
	return p.SignAllTransactions(ctx, txs)
}

func (a *InjectedAdapter) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	p, err := a.connected()
	if err != nil {
		return nil, err
	}
	return p.SignMessage(ctx, message)
}
