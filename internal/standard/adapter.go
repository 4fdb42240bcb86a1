package standard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"
	soltx "github.com/AlexZinkM/wallet-adapter-bridge/solana"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

const defaultChain = "solana:mainnet"

var ErrNoAccounts = errors.New("wallet returned no usable accounts")

// Adapter drives a wallet-standard Wallet through the wallet.Adapter surface
type Adapter struct {
	*wallet.Base
	w      Wallet
	logger *zap.Logger

	mu       sync.Mutex
	account  *Account
	off      func()
	released bool
}

// NewAdapter wraps w. The caller is expected to have checked IsCompatible.
func NewAdapter(w Wallet, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		Base: wallet.NewBase(wallet.Info{
			Name: w.Name(),
			Icon: w.Icon(),
		}, wallet.ReadyStateInstalled),
		w:      w,
		logger: logger,
	}
}

// Wallet returns the wrapped wallet
func (a *Adapter) Wallet() Wallet { return a.w }

func (a *Adapter) Connect(ctx context.Context) error {
	if !a.BeginConnect() {
		return nil
	}

	accounts := a.w.Accounts()
	if len(accounts) == 0 {
		connector, ok := a.w.Features()[FeatureConnect].(Connector)
		if !ok {
			a.EndConnect(nil)
			return fmt.Errorf("%s: %w", FeatureConnect, wallet.ErrUnsupportedOperation)
		}
		var err error
		accounts, err = connector.Connect(ctx)
		if err != nil {
			a.EndConnect(nil)
			return fmt.Errorf("failed to connect: %w", err)
		}
	}

	account, ok := firstUsable(accounts)
	if !ok {
		a.EndConnect(nil)
		return ErrNoAccounts
	}
	pk := solana.PublicKeyFromBytes(account.PublicKey)

	a.mu.Lock()
	a.account = &account
	if events, ok := a.w.Features()[FeatureEvents].(EventSource); ok && a.off == nil && !a.released {
		a.off = events.On(EventChange, a.onChange)
	}
	a.mu.Unlock()

	a.EndConnect(&pk)
	return nil
}

func (a *Adapter) Disconnect(ctx context.Context) error {
	a.release()
	defer a.ResetConnection()

	if d, ok := a.w.Features()[FeatureDisconnect].(Disconnector); ok {
		if err := d.Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to disconnect: %w", err)
		}
	}
	return nil
}

// Release drops the change subscription and the session without asking the
// wallet to disconnect. The registry calls it once the adapter leaves the list.
func (a *Adapter) Release() {
	a.mu.Lock()
	a.released = true
	a.mu.Unlock()
	a.release()
	a.ResetConnection()
}

func (a *Adapter) release() {
	a.mu.Lock()
	off := a.off
	a.off = nil
	a.account = nil
	a.mu.Unlock()
	if off != nil {
		off()
	}
}

func (a *Adapter) onChange(ev ChangeEvent) {
	// nil means accounts did not change
	if ev.Accounts == nil || !a.Connected() {
		return
	}
	account, ok := firstUsable(ev.Accounts)
	if !ok {
		a.logger.Info("wallet dropped all accounts", zap.String("wallet", a.Name()))
		a.release()
		a.ResetConnection()
		return
	}

	a.mu.Lock()
	a.account = &account
	a.mu.Unlock()
	a.SetPublicKey(solana.PublicKeyFromBytes(account.PublicKey))
}

func (a *Adapter) Supports(c wallet.Capability) bool {
	f := a.w.Features()
	switch c {
	case wallet.CapabilitySignTransaction, wallet.CapabilitySignAllTransactions:
		_, ok := f[FeatureSolanaSignTransaction].(SolanaTransactionSigner)
		return ok
	case wallet.CapabilitySignMessage:
		_, ok := f[FeatureSolanaSignMessage].(SolanaMessageSigner)
		return ok
	}
	return false
}

func (a *Adapter) currentAccount() (Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.account == nil || !a.Connected() {
		return Account{}, wallet.ErrNotConnected
	}
	return *a.account, nil
}

func (a *Adapter) chain(account Account) string {
	for _, c := range account.Chains {
		if strings.HasPrefix(c, "solana:") {
			return c
		}
	}
	for _, c := range a.w.Chains() {
		if strings.HasPrefix(c, "solana:") {
			return c
		}
	}
	return defaultChain
}

func (a *Adapter) SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	signed, err := a.SignAllTransactions(ctx, []*solana.Transaction{tx})
	if err != nil {
		return nil, err
	}
	return signed[0], nil
}

func (a *Adapter) SignAllTransactions(ctx context.Context, txs []*solana.Transaction) ([]*solana.Transaction, error) {
	signer, ok := a.w.Features()[FeatureSolanaSignTransaction].(SolanaTransactionSigner)
	if !ok {
		return nil, fmt.Errorf("%s: %w", FeatureSolanaSignTransaction, wallet.ErrUnsupportedOperation)
	}
	account, err := a.currentAccount()
	if err != nil {
		return nil, err
	}

	payloads := make([][]byte, len(txs))
	for i, tx := range txs {
		payloads[i], err = tx.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize transaction %d: %w", i, err)
		}
	}

	out, err := signer.SignTransaction(ctx, account, a.chain(account), payloads...)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transactions: %w", err)
	}
	if len(out) != len(txs) {
		return nil, fmt.Errorf("wallet returned %d signed transactions for %d inputs", len(out), len(txs))
	}

	signed := make([]*solana.Transaction, len(out))
	for i, raw := range out {
		decoded, err := soltx.DecodeTransaction(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode signed transaction %d: %w", i, err)
		}
		signed[i] = decoded.Tx
	}
	return signed, nil
}

func (a *Adapter) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	signer, ok := a.w.Features()[FeatureSolanaSignMessage].(SolanaMessageSigner)
	if !ok {
		return nil, fmt.Errorf("%s: %w", FeatureSolanaSignMessage, wallet.ErrUnsupportedOperation)
	}
	account, err := a.currentAccount()
	if err != nil {
		return nil, err
	}

	out, err := signer.SignMessage(ctx, account, message)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("wallet returned %d signed messages", len(out))
	}
	return out[0].Signature, nil
}

func firstUsable(accounts []Account) (Account, bool) {
	for _, acc := range accounts {
		if len(acc.PublicKey) == solana.PublicKeyLength {
			return acc, true
		}
	}
	return Account{}, false
}

// Wrap converts compatible wallets into adapters, keeping their order
func Wrap(wallets []Wallet, logger *zap.Logger) []wallet.Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make([]wallet.Adapter, 0, len(wallets))
	for _, w := range wallets {
		if !IsCompatible(w) {
			if w != nil {
				logger.Debug("skipping incompatible wallet", zap.String("wallet", w.Name()))
			}
			continue
		}
		out = append(out, NewAdapter(w, logger))
	}
	return out
}
