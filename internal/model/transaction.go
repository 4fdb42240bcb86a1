package model

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// DecodeTransactionRequest represents request for POST /transaction/decode
type DecodeTransactionRequest struct {
	Transaction string `json:"transaction" binding:"required"` // base64
}

// TransactionResponse represents response for POST /transaction/decode
type TransactionResponse struct {
	Format          string   `json:"format"` // "legacy" or "versioned"
	Signatures      []string `json:"signatures"`
	FeePayer        string   `json:"feePayer"`
	RecentBlockhash string   `json:"recentBlockhash"`
	AccountKeys     []string `json:"accountKeys"`
	NumInstructions int      `json:"numInstructions"`
}

// NewTransactionResponse summarizes a decoded transaction
func NewTransactionResponse(format string, tx *solana.Transaction) (*TransactionResponse, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction is nil")
	}
	resp := &TransactionResponse{
		Format:          format,
		Signatures:      make([]string, len(tx.Signatures)),
		RecentBlockhash: tx.Message.RecentBlockhash.String(),
		AccountKeys:     make([]string, len(tx.Message.AccountKeys)),
		NumInstructions: len(tx.Message.Instructions),
	}
	for i, sig := range tx.Signatures {
		resp.Signatures[i] = sig.String()
	}
	for i, key := range tx.Message.AccountKeys {
		resp.AccountKeys[i] = key.String()
	}
	if len(tx.Message.AccountKeys) > 0 {
		resp.FeePayer = tx.Message.AccountKeys[0].String()
	}
	return resp, nil
}
