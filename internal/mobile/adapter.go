package mobile

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"
	soltx "github.com/AlexZinkM/wallet-adapter-bridge/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// AdapterName is reserved for the mobile transport; no other wallet may claim it
const AdapterName = "Mobile Wallet Adapter"

const (
	installURL  = "https://solanamobile.com/wallets"
	adapterIcon = "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHdpZHRoPSIyOCIgaGVpZ2h0PSIyOCIgdmlld0JveD0iMCAwIDI4IDI4Ij48cmVjdCB3aWR0aD0iMjgiIGhlaWdodD0iMjgiIHJ4PSI2IiBmaWxsPSIjMTRGMTk1Ii8+PHJlY3QgeD0iOSIgeT0iNSIgd2lkdGg9IjEwIiBoZWlnaHQ9IjE4IiByeD0iMiIgZmlsbD0ibm9uZSIgc3Ryb2tlPSIjMTAxMDEwIiBzdHJva2Utd2lkdGg9IjIiLz48Y2lyY2xlIGN4PSIxNCIgY3k9IjE5LjUiIHI9IjEuMiIgZmlsbD0iIzEwMTAxMCIvPjwvc3ZnPg=="
)

var ErrClusterRequired = errors.New("mobile wallet adapter requires a cluster")

// Config configures the mobile transport adapter
type Config struct {
	// Cluster selects the network, e.g. "mainnet-beta"
	Cluster      string
	ReflectorURL string
	Identity     AppIdentity
	// Display presents the association to the user
	Display func(Association) error
	Logger  *zap.Logger
}

// Adapter reaches a wallet app on a phone through a reflector relay
type Adapter struct {
	*wallet.Base
	chain     string
	reflector *url.URL
	identity  AppIdentity
	display   func(Association) error
	logger    *zap.Logger

	mu        sync.Mutex
	session   *Session
	authToken string
}

// NewAdapter builds the mobile adapter. It fails with ErrClusterRequired when no cluster is set.
func NewAdapter(cfg Config) (*Adapter, error) {
	if strings.TrimSpace(cfg.Cluster) == "" {
		return nil, ErrClusterRequired
	}
	cluster, err := soltx.ParseCluster(cfg.Cluster)
	if err != nil {
		return nil, fmt.Errorf("invalid cluster: %w", err)
	}
	reflector, err := url.Parse(cfg.ReflectorURL)
	if err != nil || reflector.Host == "" {
		return nil, fmt.Errorf("invalid reflector url %q", cfg.ReflectorURL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	display := cfg.Display
	if display == nil {
		display = func(a Association) error {
			logger.Info("scan with a mobile wallet to connect", zap.String("uri", a.URI))
			return nil
		}
	}

	return &Adapter{
		Base: wallet.NewBase(wallet.Info{
			Name: AdapterName,
			URL:  installURL,
			Icon: adapterIcon,
		}, wallet.ReadyStateLoadable),
		chain:     soltx.ChainID(cluster),
		reflector: reflector,
		identity:  cfg.Identity,
		display:   display,
		logger:    logger,
	}, nil
}

// Chain is the wallet-standard chain the adapter authorizes for
func (a *Adapter) Chain() string { return a.chain }

func (a *Adapter) Connect(ctx context.Context) error {
	if !a.BeginConnect() {
		return nil
	}
	pk, err := a.authorize(ctx)
	if err != nil {
		a.EndConnect(nil)
		return err
	}
	a.EndConnect(&pk)
	return nil
}

func (a *Adapter) authorize(ctx context.Context) (solana.PublicKey, error) {
	assoc, err := newAssociation()
	if err != nil {
		return solana.PublicKey{}, err
	}
	shown, err := assoc.render(a.reflector)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if err := a.display(shown); err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to display association: %w", err)
	}

	sess, err := dial(ctx, a.reflector, assoc, a.logger)
	if err != nil {
		return solana.PublicKey{}, err
	}
	res, err := sess.Call(ctx, methodAuthorize, authorizeParams{Identity: a.identity, Chain: a.chain})
	if err != nil {
		sess.Close()
		return solana.PublicKey{}, fmt.Errorf("authorization failed: %w", err)
	}

	raw, err := base64.StdEncoding.DecodeString(res.Get("accounts.0.address").String())
	if err != nil || len(raw) != solana.PublicKeyLength {
		sess.Close()
		return solana.PublicKey{}, errors.New("wallet authorized no usable account")
	}

	a.mu.Lock()
	a.session = sess
	a.authToken = res.Get("auth_token").String()
	a.mu.Unlock()
	return solana.PublicKeyFromBytes(raw), nil
}

func (a *Adapter) Disconnect(ctx context.Context) error {
	a.mu.Lock()
	sess, token := a.session, a.authToken
	a.session, a.authToken = nil, ""
	a.mu.Unlock()
	defer a.ResetConnection()

	if sess == nil {
		return nil
	}
	if _, err := sess.Call(ctx, methodDeauthorize, deauthorizeParams{AuthToken: token}); err != nil {
		a.logger.Warn("deauthorize failed", zap.Error(err))
	}
	return sess.Close()
}

func (a *Adapter) activeSession() (*Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil || !a.Connected() {
		return nil, wallet.ErrNotConnected
	}
	return a.session, nil
}

// call runs an RPC and drops the session when the transport breaks
func (a *Adapter) call(ctx context.Context, method string, params any) (gjson.Result, error) {
	sess, err := a.activeSession()
	if err != nil {
		return gjson.Result{}, err
	}
	res, err := sess.Call(ctx, method, params)
	if err != nil {
		var rpcErr *RPCError
		if !errors.As(err, &rpcErr) {
			a.logger.Warn("mobile session lost", zap.String("operation", method), zap.Error(err))
			a.mu.Lock()
			if a.session == sess {
				a.session, a.authToken = nil, ""
			}
			a.mu.Unlock()
			sess.Close()
			a.ResetConnection()
		}
		return gjson.Result{}, err
	}
	return res, nil
}

func (a *Adapter) SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	signed, err := a.SignAllTransactions(ctx, []*solana.Transaction{tx})
	if err != nil {
		return nil, err
	}
	return signed[0], nil
}

func (a *Adapter) SignAllTransactions(ctx context.Context, txs []*solana.Transaction) ([]*solana.Transaction, error) {
	payloads := make([]string, len(txs))
	for i, tx := range txs {
		encoded, err := soltx.EncodeTransactionBase64(tx)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		payloads[i] = encoded
	}

	res, err := a.call(ctx, methodSignTransactions, signPayloadsParams{Payloads: payloads})
	if err != nil {
		return nil, err
	}
	signedPayloads := res.Get("signed_payloads").Array()
	if len(signedPayloads) != len(txs) {
		return nil, fmt.Errorf("wallet returned %d signed transactions for %d inputs", len(signedPayloads), len(txs))
	}

	out := make([]*solana.Transaction, len(signedPayloads))
	for i, p := range signedPayloads {
		decoded, err := soltx.DecodeTransactionBase64(p.String())
		if err != nil {
			return nil, fmt.Errorf("signed transaction %d: %w", i, err)
		}
		out[i] = decoded.Tx
	}
	return out, nil
}

func (a *Adapter) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	pk := a.PublicKey()
	if pk == nil {
		return nil, wallet.ErrNotConnected
	}
	res, err := a.call(ctx, methodSignMessages, signMessagesParams{
		Addresses: []string{base64.StdEncoding.EncodeToString(pk.Bytes())},
		Payloads:  []string{base64.StdEncoding.EncodeToString(message)},
	})
	if err != nil {
		return nil, err
	}

	signed, err := base64.StdEncoding.DecodeString(res.Get("signed_payloads.0").String())
	if err != nil {
		return nil, fmt.Errorf("invalid signed message: %w", err)
	}
	// the wallet returns the message with its signature appended
	if len(signed) < solana.SignatureLength {
		return nil, errors.New("signed message shorter than a signature")
	}
	return signed[len(signed)-solana.SignatureLength:], nil
}
