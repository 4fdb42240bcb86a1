package mobile

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	associationScheme = "solana-wallet:/v1/associate/remote"
	qrSize            = 256
)

// Association is what the user scans with the wallet app to open a session
type Association struct {
	URI string
	// QR is a PNG rendering of URI
	QR []byte
}

type association struct {
	key *ecdsa.PrivateKey
	id  string
}

func newAssociation() (*association, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate association key: %w", err)
	}
	return &association{key: key, id: uuid.NewString()}, nil
}

// publicKey returns the uncompressed P-256 point
func (a *association) publicKey() ([]byte, error) {
	pub, err := a.key.PublicKey.ECDH()
	if err != nil {
		return nil, fmt.Errorf("failed to convert association key: %w", err)
	}
	return pub.Bytes(), nil
}

func (a *association) uri(reflector *url.URL) (string, error) {
	pub, err := a.publicKey()
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("association", base64.RawURLEncoding.EncodeToString(pub))
	q.Set("reflector", reflector.Host)
	q.Set("id", a.id)
	return associationScheme + "?" + q.Encode(), nil
}

func (a *association) render(reflector *url.URL) (Association, error) {
	uri, err := a.uri(reflector)
	if err != nil {
		return Association{}, err
	}
	png, err := qrcode.Encode(uri, qrcode.Medium, qrSize)
	if err != nil {
		return Association{}, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return Association{URI: uri, QR: png}, nil
}
