package mobile

import (
	"context"
	"crypto/cipher"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Session is an encrypted JSON-RPC channel to a wallet app
type Session struct {
	conn   *websocket.Conn
	aead   cipher.AEAD
	logger *zap.Logger

	sendSeq atomic.Uint32

	// mu serializes round trips
	mu      sync.Mutex
	recvSeq uint32
	nextID  int
}

// interrupt unblocks pending I/O on conn once ctx is done
func interrupt(ctx context.Context, conn *websocket.Conn) (stop func() bool) {
	return context.AfterFunc(ctx, func() {
		now := time.Now()
		conn.SetReadDeadline(now)
		conn.SetWriteDeadline(now)
	})
}

func dial(ctx context.Context, reflector *url.URL, assoc *association, logger *zap.Logger) (*Session, error) {
	target := *reflector
	q := target.Query()
	q.Set("id", assoc.id)
	target.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to reach reflector: %w", err)
	}
	stop := interrupt(ctx, conn)
	defer stop()

	s, err := handshake(conn, assoc)
	if err != nil {
		conn.Close()
		return nil, err
	}
	s.logger = logger
	logger.Debug("mobile session established", zap.String("association", assoc.id))
	return s, nil
}

func handshake(conn *websocket.Conn, assoc *association) (*Session, error) {
	sessionKey, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}
	hello, err := helloRequest(assoc.key, sessionKey)
	if err != nil {
		return nil, err
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, hello); err != nil {
		return nil, fmt.Errorf("failed to send hello: %w", err)
	}

	_, rsp, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read hello response: %w", err)
	}
	walletKey, err := ecdh.P256().NewPublicKey(rsp)
	if err != nil {
		return nil, fmt.Errorf("invalid hello response: %w", err)
	}

	salt, err := assoc.publicKey()
	if err != nil {
		return nil, err
	}
	aead, err := sessionCipher(sessionKey, walletKey, salt)
	if err != nil {
		return nil, err
	}
	return &Session{conn: conn, aead: aead}, nil
}

// Call sends a JSON-RPC request and returns its result
func (s *Session) Call(ctx context.Context, method string, params any) (gjson.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to encode %s request: %w", method, err)
	}
	frame, err := seal(s.aead, s.sendSeq.Inc(), body)
	if err != nil {
		return gjson.Result{}, err
	}

	stop := interrupt(ctx, s.conn)
	defer stop()

	if err := s.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return gjson.Result{}, fmt.Errorf("failed to send %s: %w", method, err)
	}
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read %s response: %w", method, err)
	}

	seq, plaintext, err := open(s.aead, data)
	if err != nil {
		return gjson.Result{}, err
	}
	s.recvSeq++
	if seq != s.recvSeq {
		return gjson.Result{}, fmt.Errorf("unexpected frame sequence %d, want %d", seq, s.recvSeq)
	}

	rsp := gjson.ParseBytes(plaintext)
	if got := rsp.Get("id").Int(); got != int64(id) {
		return gjson.Result{}, fmt.Errorf("response id %d does not match request %d", got, id)
	}
	if e := rsp.Get("error"); e.Exists() {
		return gjson.Result{}, &RPCError{Code: e.Get("code").Int(), Message: e.Get("message").String()}
	}
	return rsp.Get("result"), nil
}

func (s *Session) Close() error {
	return s.conn.Close()
}
