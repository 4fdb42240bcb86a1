// Package wallettest provides in-memory adapters for tests.
package wallettest

import (
	"context"
	"fmt"
	"sync"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// Fake is an adapter that signs with a local key.
// Caps limits which signing capabilities it reports; nil means all.
type Fake struct {
	*wallet.Base

	Key  solana.PrivateKey
	Caps map[wallet.Capability]bool

	// ConnectErr is returned by Connect when set
	ConnectErr error
	// SignErr is returned by every sign operation when set
	SignErr error
	// Gate blocks Connect until closed when non-nil
	Gate chan struct{}

	mu           sync.Mutex
	connectCalls int
	signCalls    int
}

// NewFake creates a fake wallet in the given ready state
func NewFake(name string, state wallet.ReadyState) *Fake {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(err)
	}
	return &Fake{
		Base: wallet.NewBase(wallet.Info{
			Name: name,
			URL:  "https://example.com/" + name,
			Icon: "data:image/png;base64,iVBORw0KGgo=",
		}, state),
		Key: key,
	}
}

// WithCaps restricts the reported capabilities
func (f *Fake) WithCaps(caps ...wallet.Capability) *Fake {
	f.Caps = make(map[wallet.Capability]bool, len(caps))
	for _, c := range caps {
		f.Caps[c] = true
	}
	return f
}

func (f *Fake) Supports(c wallet.Capability) bool {
	if f.Caps == nil {
		return true
	}
	return f.Caps[c]
}

func (f *Fake) ConnectCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connectCalls
}

func (f *Fake) SignCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signCalls
}

func (f *Fake) Connect(ctx context.Context) error {
	f.mu.Lock()
	f.connectCalls++
	f.mu.Unlock()

	if !f.BeginConnect() {
		return nil
	}
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			f.EndConnect(nil)
			return ctx.Err()
		}
	}
	if f.ConnectErr != nil {
		f.EndConnect(nil)
		return f.ConnectErr
	}
	pk := f.Key.PublicKey()
	f.EndConnect(&pk)
	return nil
}

func (f *Fake) Disconnect(_ context.Context) error {
	f.ResetConnection()
	return nil
}

func (f *Fake) sign(tx *solana.Transaction) (*solana.Transaction, error) {
	f.mu.Lock()
	f.signCalls++
	f.mu.Unlock()

	if f.SignErr != nil {
		return nil, f.SignErr
	}
	_, err := tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(f.Key.PublicKey()) {
			return &f.Key
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	return tx, nil
}

func (f *Fake) SignTransaction(_ context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	return f.sign(tx)
}

func (f *Fake) SignAllTransactions(_ context.Context, txs []*solana.Transaction) ([]*solana.Transaction, error) {
	out := make([]*solana.Transaction, 0, len(txs))
	for _, tx := range txs {
		signed, err := f.sign(tx)
		if err != nil {
			return nil, err
		}
		out = append(out, signed)
	}
	return out, nil
}

func (f *Fake) SignMessage(_ context.Context, message []byte) ([]byte, error) {
	f.mu.Lock()
	f.signCalls++
	f.mu.Unlock()

	if f.SignErr != nil {
		return nil, f.SignErr
	}
	sig, err := f.Key.Sign(message)
	if err != nil {
		return nil, err
	}
	return sig[:], nil
}

// Plain is an adapter with no signing methods at all
type Plain struct {
	*wallet.Base
}

func NewPlain(name string, state wallet.ReadyState) *Plain {
	return &Plain{Base: wallet.NewBase(wallet.Info{Name: name, URL: "https://example.com/" + name}, state)}
}

func (p *Plain) Connect(_ context.Context) error {
	if !p.BeginConnect() {
		return nil
	}
	pk := solana.NewWallet().PublicKey()
	p.EndConnect(&pk)
	return nil
}

func (p *Plain) Disconnect(_ context.Context) error {
	p.ResetConnection()
	return nil
}

// Transfer builds an unsigned transfer paid by payer.
// versioned selects the v0 message encoding.
func Transfer(payer solana.PublicKey, versioned bool) *solana.Transaction {
	var blockhash solana.Hash
	blockhash[0] = 7
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(1000, payer, solana.NewWallet().PublicKey()).Build(),
		},
		blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		panic(err)
	}
	if versioned {
		tx.Message.SetVersion(solana.MessageVersionV0)
	}
	return tx
}

// Encode serializes tx to bytes
func Encode(tx *solana.Transaction) []byte {
	data, err := tx.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return data
}
