package mobile

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	p256PointLen = 65
	sequenceLen  = 4
	ivLen        = 12
	aesKeyLen    = 16
)

// helloRequest is the session public key signed by the association key
func helloRequest(assoc *ecdsa.PrivateKey, session *ecdh.PrivateKey) ([]byte, error) {
	pub := session.PublicKey().Bytes()
	digest := sha256.Sum256(pub)
	sig, err := ecdsa.SignASN1(rand.Reader, assoc, digest[:])
	if err != nil {
		return nil, fmt.Errorf("failed to sign hello: %w", err)
	}
	return append(pub, sig...), nil
}

// sessionCipher derives the AES-128-GCM frame cipher shared by both ends
func sessionCipher(priv *ecdh.PrivateKey, peer *ecdh.PublicKey, salt []byte) (cipher.AEAD, error) {
	shared, err := priv.ECDH(peer)
	if err != nil {
		return nil, fmt.Errorf("failed to compute shared secret: %w", err)
	}
	key := make([]byte, aesKeyLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, shared, salt, nil), key); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// seal frames plaintext as seq || iv || ciphertext, authenticating seq
func seal(aead cipher.AEAD, seq uint32, plaintext []byte) ([]byte, error) {
	frame := make([]byte, sequenceLen+ivLen, sequenceLen+ivLen+len(plaintext)+aead.Overhead())
	binary.BigEndian.PutUint32(frame[:sequenceLen], seq)
	iv := frame[sequenceLen : sequenceLen+ivLen]
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("failed to generate iv: %w", err)
	}
	return aead.Seal(frame, iv, plaintext, frame[:sequenceLen]), nil
}

func open(aead cipher.AEAD, frame []byte) (uint32, []byte, error) {
	if len(frame) < sequenceLen+ivLen+aead.Overhead() {
		return 0, nil, errors.New("frame too short")
	}
	seq := binary.BigEndian.Uint32(frame[:sequenceLen])
	plaintext, err := aead.Open(nil, frame[sequenceLen:sequenceLen+ivLen], frame[sequenceLen+ivLen:], frame[:sequenceLen])
	if err != nil {
		return 0, nil, fmt.Errorf("failed to decrypt frame: %w", err)
	}
	return seq, plaintext, nil
}
