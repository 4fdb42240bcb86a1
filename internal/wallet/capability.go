package wallet

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Capability names an optional adapter operation
type Capability string

const (
	CapabilitySignTransaction     Capability = "signTransaction"
	CapabilitySignAllTransactions Capability = "signAllTransactions"
	CapabilitySignMessage         Capability = "signMessage"
)

// TransactionSigner signs a single transaction
type TransactionSigner interface {
	SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error)
}

// BatchTransactionSigner signs several transactions in one wallet round trip
type BatchTransactionSigner interface {
	SignAllTransactions(ctx context.Context, txs []*solana.Transaction) ([]*solana.Transaction, error)
}

// MessageSigner signs arbitrary bytes and returns the detached signature
type MessageSigner interface {
	SignMessage(ctx context.Context, message []byte) ([]byte, error)
}

// CapabilityReporter lets an adapter whose methods exist statically
// declare at runtime which of them the underlying wallet really offers.
type CapabilityReporter interface {
	Supports(c Capability) bool
}

func reported(a Adapter, c Capability) bool {
	if r, ok := a.(CapabilityReporter); ok {
		return r.Supports(c)
	}
	return true
}

// CanSignOneTransaction returns the adapter's single-transaction signer, if any
func CanSignOneTransaction(a Adapter) (TransactionSigner, bool) {
	if a == nil {
		return nil, false
	}
	s, ok := a.(TransactionSigner)
	if !ok || !reported(a, CapabilitySignTransaction) {
		return nil, false
	}
	return s, true
}

// CanSignManyTransactions returns the adapter's batch signer, if any
func CanSignManyTransactions(a Adapter) (BatchTransactionSigner, bool) {
	if a == nil {
		return nil, false
	}
	s, ok := a.(BatchTransactionSigner)
	if !ok || !reported(a, CapabilitySignAllTransactions) {
		return nil, false
	}
	return s, true
}

// CanSignMessage returns the adapter's message signer, if any
func CanSignMessage(a Adapter) (MessageSigner, bool) {
	if a == nil {
		return nil, false
	}
	s, ok := a.(MessageSigner)
	if !ok || !reported(a, CapabilitySignMessage) {
		return nil, false
	}
	return s, true
}

// Supports reports whether a exposes capability c
func Supports(a Adapter, c Capability) bool {
	switch c {
	case CapabilitySignTransaction:
		_, ok := CanSignOneTransaction(a)
		return ok
	case CapabilitySignAllTransactions:
		_, ok := CanSignManyTransactions(a)
		return ok
	case CapabilitySignMessage:
		_, ok := CanSignMessage(a)
		return ok
	}
	return false
}

// Capabilities lists every optional capability a exposes
func Capabilities(a Adapter) []Capability {
	var out []Capability
	for _, c := range []Capability{CapabilitySignTransaction, CapabilitySignAllTransactions, CapabilitySignMessage} {
		if Supports(a, c) {
			out = append(out, c)
		}
	}
	return out
}
