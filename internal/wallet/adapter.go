package wallet

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// ReadyState describes whether a wallet is usable in the current environment
type ReadyState string

const (
	ReadyStateInstalled   ReadyState = "Installed"
	ReadyStateLoadable    ReadyState = "Loadable"
	ReadyStateNotDetected ReadyState = "NotDetected"
	ReadyStateUnsupported ReadyState = "Unsupported"
)

// Ready reports whether a connect attempt may be delegated to the wallet.
func (s ReadyState) Ready() bool {
	return s == ReadyStateInstalled || s == ReadyStateLoadable
}

// Adapter is the uniform surface every wallet exposes to the bridge.
// Signing is optional and discovered at runtime, see capability.go.
type Adapter interface {
	Name() string
	URL() string
	Icon() string
	ReadyState() ReadyState
	Connecting() bool
	Connected() bool
	// PublicKey is nil unless the adapter is connected
	PublicKey() *solana.PublicKey
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}
