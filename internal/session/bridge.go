package session

import (
	"context"
	"errors"
	"sync"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"
	soltx "github.com/AlexZinkM/wallet-adapter-bridge/solana"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Bridge runs connect and sign operations against adapters with uniform policy:
// readiness gating, idempotent connect, and absent results instead of errors.
type Bridge struct {
	opener Opener
	logger *zap.Logger

	mu       sync.Mutex
	inflight map[string]bool
}

// NewBridge creates a Bridge. A nil opener ignores install links.
func NewBridge(opener Opener, logger *zap.Logger) *Bridge {
	if opener == nil {
		opener = NoopOpener{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{
		opener:   opener,
		logger:   logger,
		inflight: make(map[string]bool),
	}
}

func (b *Bridge) begin(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inflight[name] {
		return false
	}
	b.inflight[name] = true
	return true
}

func (b *Bridge) end(name string) {
	b.mu.Lock()
	delete(b.inflight, name)
	b.mu.Unlock()
}

// Connect opens a session with a.
// Only a NotReady wallet produces an error; other failures are logged.
func (b *Bridge) Connect(ctx context.Context, a wallet.Adapter) error {
	if a.Connecting() || a.Connected() {
		return nil
	}

	if !a.ReadyState().Ready() {
		if err := b.opener.Open(a.URL()); err != nil {
			b.logger.Debug("failed to open install page", zap.String("wallet", a.Name()), zap.Error(err))
		}
		return wallet.NewError(a.Name(), "connect", wallet.ErrNotReady, nil)
	}

	if !b.begin(a.Name()) {
		return nil
	}
	defer b.end(a.Name())
	if a.Connecting() || a.Connected() {
		return nil
	}

	if err := a.Connect(ctx); err != nil {
		b.logger.Error("Wallet error", zap.String("wallet", a.Name()), zap.Error(err))
	}
	return nil
}

func (b *Bridge) absent(a wallet.Adapter, op string, kind, cause error) error {
	err := wallet.NewError(a.Name(), op, kind, cause)
	b.logger.Warn(op+" failed", zap.String("wallet", a.Name()), zap.Error(err))
	return err
}

// failure classifies an error returned by the wallet itself
func (b *Bridge) failure(a wallet.Adapter, op string, err error) error {
	if errors.Is(err, wallet.ErrNotConnected) || errors.Is(err, wallet.ErrUnsupportedOperation) {
		return b.absent(a, op, nil, err)
	}
	err = wallet.NewError(a.Name(), op, nil, err)
	b.logger.Error(op+" failed", zap.String("wallet", a.Name()), zap.Error(err))
	return err
}

// SignTransaction decodes a base64 transaction and has a sign it
func (b *Bridge) SignTransaction(ctx context.Context, a wallet.Adapter, payload string) wallet.Result[*solana.Transaction] {
	const op = "signTransaction"
	if !a.Connected() {
		return wallet.Absent[*solana.Transaction](b.absent(a, op, wallet.ErrNotConnected, nil))
	}
	signer, ok := wallet.CanSignOneTransaction(a)
	if !ok {
		return wallet.Absent[*solana.Transaction](b.absent(a, op, wallet.ErrUnsupportedOperation, nil))
	}

	decoded, err := soltx.DecodeTransactionBase64(payload)
	if err != nil {
		return wallet.Absent[*solana.Transaction](b.absent(a, op, wallet.ErrMalformedPayload, err))
	}

	signed, err := signer.SignTransaction(ctx, decoded.Tx)
	if err != nil {
		return wallet.Absent[*solana.Transaction](b.failure(a, op, err))
	}
	return wallet.Ok(signed)
}

// SignAllTransactions signs a batch; one undecodable payload aborts the whole batch
func (b *Bridge) SignAllTransactions(ctx context.Context, a wallet.Adapter, payloads []string) wallet.Result[[]*solana.Transaction] {
	const op = "signAllTransactions"
	if !a.Connected() {
		return wallet.Absent[[]*solana.Transaction](b.absent(a, op, wallet.ErrNotConnected, nil))
	}
	signer, ok := wallet.CanSignManyTransactions(a)
	if !ok {
		return wallet.Absent[[]*solana.Transaction](b.absent(a, op, wallet.ErrUnsupportedOperation, nil))
	}

	txs := make([]*solana.Transaction, len(payloads))
	for i, p := range payloads {
		decoded, err := soltx.DecodeTransactionBase64(p)
		if err != nil {
			b.logger.Debug("undecodable batch entry", zap.Int("index", i))
			return wallet.Absent[[]*solana.Transaction](b.absent(a, op, wallet.ErrMalformedPayload, err))
		}
		txs[i] = decoded.Tx
	}

	signed, err := signer.SignAllTransactions(ctx, txs)
	if err != nil {
		return wallet.Absent[[]*solana.Transaction](b.failure(a, op, err))
	}
	return wallet.Ok(signed)
}

// SignMessage signs the UTF-8 bytes of message and returns the signature
func (b *Bridge) SignMessage(ctx context.Context, a wallet.Adapter, message string) wallet.Result[[]byte] {
	const op = "signMessage"
	if !a.Connected() {
		return wallet.Absent[[]byte](b.absent(a, op, wallet.ErrNotConnected, nil))
	}
	signer, ok := wallet.CanSignMessage(a)
	if !ok {
		return wallet.Absent[[]byte](b.absent(a, op, wallet.ErrUnsupportedOperation, nil))
	}

	sig, err := signer.SignMessage(ctx, []byte(message))
	if err != nil {
		return wallet.Absent[[]byte](b.failure(a, op, err))
	}
	return wallet.Ok(sig)
}
