package solana

import (
	"encoding/base64"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Format is the wire encoding a transaction was decoded from
type Format string

const (
	FormatLegacy    Format = "legacy"
	FormatVersioned Format = "versioned"
)

// versionPrefixMask marks a versioned message in its first byte
const versionPrefixMask = 0x80

var (
	ErrVersionPrefix = errors.New("message carries a version prefix")
	ErrNotVersioned  = errors.New("message has no version prefix")
)

// Transaction is a decoded payload together with the encoding it used
type Transaction struct {
	Format Format
	Tx     *solana.Transaction
}

// DecodeTransaction decodes raw transaction bytes.
// Legacy decoding is tried first; versioned decoding only runs if it fails.
func DecodeTransaction(data []byte) (*Transaction, error) {
	tx, legacyErr := decodeLegacy(data)
	if legacyErr == nil {
		return &Transaction{Format: FormatLegacy, Tx: tx}, nil
	}

	tx, err := decodeVersioned(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w (legacy: %v)", err, legacyErr)
	}
	return &Transaction{Format: FormatVersioned, Tx: tx}, nil
}

// DecodeTransactionBase64 decodes a standard base64 transaction string
func DecodeTransactionBase64(s string) (*Transaction, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return DecodeTransaction(data)
}

// EncodeTransactionBase64 serializes tx in its own message format
func EncodeTransactionBase64(tx *solana.Transaction) (string, error) {
	if tx == nil {
		return "", errors.New("nil transaction")
	}
	data, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to encode transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func readSignatures(decoder *bin.Decoder, tx *solana.Transaction) error {
	numSignatures, err := decoder.ReadCompactU16()
	if err != nil {
		return fmt.Errorf("unable to read signature count: %w", err)
	}
	if numSignatures > decoder.Remaining()/solana.SignatureLength {
		return fmt.Errorf("signature count %d exceeds remaining bytes %d", numSignatures, decoder.Remaining())
	}
	tx.Signatures = make([]solana.Signature, numSignatures)
	for i := range tx.Signatures {
		if _, err := decoder.Read(tx.Signatures[i][:]); err != nil {
			return fmt.Errorf("unable to read signature %d: %w", i, err)
		}
	}
	return nil
}

func decodeLegacy(data []byte) (*solana.Transaction, error) {
	decoder := bin.NewBinDecoder(data)
	tx := new(solana.Transaction)
	if err := readSignatures(decoder, tx); err != nil {
		return nil, err
	}

	prefix, err := decoder.Peek(1)
	if err != nil {
		return nil, fmt.Errorf("unable to read message: %w", err)
	}
	if prefix[0]&versionPrefixMask != 0 {
		return nil, ErrVersionPrefix
	}
	if err := tx.Message.UnmarshalLegacy(decoder); err != nil {
		return nil, fmt.Errorf("unable to decode legacy message: %w", err)
	}
	if decoder.HasRemaining() {
		return nil, fmt.Errorf("%d trailing bytes after legacy message", decoder.Remaining())
	}
	return tx, nil
}

func decodeVersioned(data []byte) (*solana.Transaction, error) {
	decoder := bin.NewBinDecoder(data)
	tx := new(solana.Transaction)
	if err := readSignatures(decoder, tx); err != nil {
		return nil, err
	}

	prefix, err := decoder.Peek(1)
	if err != nil {
		return nil, fmt.Errorf("unable to read message: %w", err)
	}
	if prefix[0]&versionPrefixMask == 0 {
		return nil, ErrNotVersioned
	}
	if err := tx.Message.UnmarshalV0(decoder); err != nil {
		return nil, fmt.Errorf("unable to decode versioned message: %w", err)
	}
	if tx.Message.GetVersion() != solana.MessageVersionV0 {
		return nil, fmt.Errorf("unsupported message version %d", tx.Message.GetVersion())
	}
	if decoder.HasRemaining() {
		return nil, fmt.Errorf("%d trailing bytes after versioned message", decoder.Remaining())
	}
	return tx, nil
}
