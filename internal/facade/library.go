package facade

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/model"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/session"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"
	soltx "github.com/AlexZinkM/wallet-adapter-bridge/solana"

	"go.uber.org/zap"
)

// AdapterLister is the registry surface the library needs
type AdapterLister interface {
	List() []wallet.Adapter
	Refresh()
}

// IconNormalizer turns an icon data URL into a prefix-free base64 payload
type IconNormalizer interface {
	Normalize(icon string) (string, error)
}

// Library is the flat, name-addressed surface offered to the host
type Library struct {
	registry AdapterLister
	bridge   *session.Bridge
	icons    IconNormalizer
	logger   *zap.Logger
}

// NewLibrary creates a Library. A nil logger discards output.
func NewLibrary(registry AdapterLister, bridge *session.Bridge, icons IconNormalizer, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	if bridge == nil {
		bridge = session.NewBridge(nil, logger)
	}
	return &Library{
		registry: registry,
		bridge:   bridge,
		icons:    icons,
		logger:   logger,
	}
}

// resolve looks the name up in a single snapshot of the registry
func (l *Library) resolve(name, op string) (wallet.Adapter, error) {
	for _, a := range l.registry.List() {
		if a.Name() == name {
			return a, nil
		}
	}
	err := wallet.NewError(name, op, wallet.ErrWalletNotFound, nil)
	l.logger.Warn("unknown wallet", zap.String("wallet", name), zap.String("operation", op))
	return nil, err
}

// ConnectWallet connects the named wallet and returns its base58 public key.
// The error return is reserved for wallets that are not installed.
func (l *Library) ConnectWallet(ctx context.Context, name string) (wallet.Result[string], error) {
	a, err := l.resolve(name, "connect")
	if err != nil {
		return wallet.Absent[string](err), nil
	}
	if err := l.bridge.Connect(ctx, a); err != nil {
		return wallet.Absent[string](err), err
	}
	pk := a.PublicKey()
	if !a.Connected() || pk == nil {
		return wallet.Absent[string](wallet.NewError(name, "connect", wallet.ErrNotConnected, nil)), nil
	}
	return wallet.Ok(pk.String()), nil
}

// SignTransaction signs a base64 transaction with the named wallet and returns it base64 encoded
func (l *Library) SignTransaction(ctx context.Context, name, transaction string) wallet.Result[string] {
	a, err := l.resolve(name, "signTransaction")
	if err != nil {
		return wallet.Absent[string](err)
	}
	res := l.bridge.SignTransaction(ctx, a, transaction)
	signed, ok := res.Get()
	if !ok {
		return wallet.Absent[string](res.Reason())
	}
	out, err := soltx.EncodeTransactionBase64(signed)
	if err != nil {
		l.logger.Error("failed to encode signed transaction", zap.String("wallet", name), zap.Error(err))
		return wallet.Absent[string](err)
	}
	return wallet.Ok(out)
}

// SignAllTransactions signs a batch of base64 transactions with the named wallet
func (l *Library) SignAllTransactions(ctx context.Context, name string, transactions []string) wallet.Result[[]string] {
	a, err := l.resolve(name, "signAllTransactions")
	if err != nil {
		return wallet.Absent[[]string](err)
	}
	res := l.bridge.SignAllTransactions(ctx, a, transactions)
	signed, ok := res.Get()
	if !ok {
		return wallet.Absent[[]string](res.Reason())
	}
	out := make([]string, len(signed))
	for i, tx := range signed {
		if out[i], err = soltx.EncodeTransactionBase64(tx); err != nil {
			l.logger.Error("failed to encode signed transaction", zap.String("wallet", name), zap.Int("index", i), zap.Error(err))
			return wallet.Absent[[]string](err)
		}
	}
	return wallet.Ok(out)
}

// SignMessage signs the message text with the named wallet and returns the signature bytes
func (l *Library) SignMessage(ctx context.Context, name, message string) wallet.Result[[]byte] {
	a, err := l.resolve(name, "signMessage")
	if err != nil {
		return wallet.Absent[[]byte](err)
	}
	return l.bridge.SignMessage(ctx, a, message)
}

// Wallets lists the current adapters with normalized icons.
// An icon that cannot be normalized is reported empty.
func (l *Library) Wallets(ctx context.Context) []model.WalletInfo {
	adapters := l.registry.List()
	out := make([]model.WalletInfo, 0, len(adapters))
	for _, a := range adapters {
		if ctx.Err() != nil {
			break
		}
		out = append(out, model.WalletInfo{
			Name:      a.Name(),
			Installed: a.ReadyState() == wallet.ReadyStateInstalled,
			Icon:      l.icon(a),
		})
	}
	return out
}

func (l *Library) icon(a wallet.Adapter) string {
	if l.icons == nil {
		return ""
	}
	icon, err := l.icons.Normalize(a.Icon())
	if err != nil {
		l.logger.Warn("failed to normalize wallet icon", zap.String("wallet", a.Name()), zap.Error(err))
		return ""
	}
	return icon
}

// GetWallets returns the wallet list as {"wallets":[{"name","installed","icon"}]}
func (l *Library) GetWallets(ctx context.Context) (string, error) {
	raw, err := json.Marshal(model.WalletsResponse{Wallets: l.Wallets(ctx)})
	if err != nil {
		return "", fmt.Errorf("failed to marshal wallets: %w", err)
	}
	return string(raw), nil
}

// RefreshWalletAdapters recomputes the registry from its sources
func (l *Library) RefreshWalletAdapters() {
	l.registry.Refresh()
}

// GetTransactionFromStr decodes a base64 transaction, legacy or versioned
func (l *Library) GetTransactionFromStr(transaction string) (*soltx.Transaction, error) {
	decoded, err := soltx.DecodeTransactionBase64(transaction)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wallet.ErrMalformedPayload, err)
	}
	return decoded, nil
}
