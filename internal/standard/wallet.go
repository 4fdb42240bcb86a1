package standard

import (
	"context"
)

// Feature identifiers as published by wallet-standard wallets
const (
	FeatureConnect                      = "standard:connect"
	FeatureDisconnect                   = "standard:disconnect"
	FeatureEvents                       = "standard:events"
	FeatureSolanaSignTransaction        = "solana:signTransaction"
	FeatureSolanaSignAndSendTransaction = "solana:signAndSendTransaction"
	FeatureSolanaSignMessage            = "solana:signMessage"
)

// EventChange is emitted when accounts, chains or features change
const EventChange = "change"

// Account is an account a wallet has authorized
type Account struct {
	Address   string
	PublicKey []byte
	Chains    []string
	Features  []string
	Label     string
	Icon      string
}

// Features maps feature identifiers to implementations
type Features map[string]any

// Has reports whether the feature is declared
func (f Features) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// Wallet is a wallet announced through the discovery channel
type Wallet interface {
	Name() string
	Icon() string
	Version() string
	Chains() []string
	Features() Features
	Accounts() []Account
}

// Connector implements standard:connect
type Connector interface {
	Connect(ctx context.Context) ([]Account, error)
}

// Disconnector implements standard:disconnect
type Disconnector interface {
	Disconnect(ctx context.Context) error
}

// ChangeEvent carries the properties that changed
type ChangeEvent struct {
	Accounts []Account
}

// EventSource implements standard:events
type EventSource interface {
	On(event string, listener func(ChangeEvent)) (off func())
}

// SolanaTransactionSigner implements solana:signTransaction.
// Transactions are serialized wire bytes; one output per input.
type SolanaTransactionSigner interface {
	SignTransaction(ctx context.Context, account Account, chain string, transactions ...[]byte) ([][]byte, error)
}

// SolanaSignAndSender implements solana:signAndSendTransaction and returns signatures
type SolanaSignAndSender interface {
	SignAndSendTransaction(ctx context.Context, account Account, chain string, transactions ...[]byte) ([][]byte, error)
}

// SignedMessage is a message together with its detached signature
type SignedMessage struct {
	SignedMessage []byte
	Signature     []byte
}

// SolanaMessageSigner implements solana:signMessage
type SolanaMessageSigner interface {
	SignMessage(ctx context.Context, account Account, messages ...[]byte) ([]SignedMessage, error)
}

// IsCompatible reports whether w can be driven through an Adapter:
// it must connect, emit events and sign Solana transactions in some form.
func IsCompatible(w Wallet) bool {
	if w == nil {
		return false
	}
	f := w.Features()
	if _, ok := f[FeatureConnect].(Connector); !ok {
		return false
	}
	if _, ok := f[FeatureEvents].(EventSource); !ok {
		return false
	}
	_, signs := f[FeatureSolanaSignTransaction].(SolanaTransactionSigner)
	_, sends := f[FeatureSolanaSignAndSendTransaction].(SolanaSignAndSender)
	return signs || sends
}
