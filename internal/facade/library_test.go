package facade

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/icon"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/session"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet/wallettest"
	soltx "github.com/AlexZinkM/wallet-adapter-bridge/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const svgIcon = "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMCAxMCI+PHJlY3Qgd2lkdGg9IjEwIiBoZWlnaHQ9IjEwIiBmaWxsPSIjMDAwIi8+PC9zdmc+"

type staticLister struct {
	mu        sync.Mutex
	adapters  []wallet.Adapter
	refreshes int
}

func (s *staticLister) List() []wallet.Adapter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]wallet.Adapter(nil), s.adapters...)
}

func (s *staticLister) Refresh() {
	s.mu.Lock()
	s.refreshes++
	s.mu.Unlock()
}

type brokenIcons struct{}

func (brokenIcons) Normalize(string) (string, error) { return "", errors.New("bad icon") }

func newLibrary(t *testing.T, adapters ...wallet.Adapter) (*Library, *staticLister) {
	t.Helper()
	icons, err := icon.NewNormalizer(16, 8)
	require.NoError(t, err)
	lister := &staticLister{adapters: adapters}
	logger := zaptest.NewLogger(t)
	return NewLibrary(lister, session.NewBridge(session.NoopOpener{}, logger), icons, logger), lister
}

func payload(t *testing.T, f *wallettest.Fake, versioned bool) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(wallettest.Encode(wallettest.Transfer(f.Key.PublicKey(), versioned)))
}

func TestConnectWallet(t *testing.T) {
	ctx := context.Background()
	ready := wallettest.NewFake("Backpack", wallet.ReadyStateInstalled)
	missing := wallettest.NewFake("Phantom", wallet.ReadyStateNotDetected)
	lib, _ := newLibrary(t, missing, ready)

	res, err := lib.ConnectWallet(ctx, "Backpack")
	require.NoError(t, err)
	pk, ok := res.Get()
	require.True(t, ok)
	assert.Equal(t, ready.Key.PublicKey().String(), pk)

	res, err = lib.ConnectWallet(ctx, "Phantom")
	assert.True(t, wallet.IsNotReadyError(err))
	assert.False(t, res.Present())

	res, err = lib.ConnectWallet(ctx, "Nope")
	require.NoError(t, err)
	assert.ErrorIs(t, res.Reason(), wallet.ErrWalletNotFound)
}

func TestConnectWallet_FailureIsAbsent(t *testing.T) {
	f := wallettest.NewFake("W", wallet.ReadyStateInstalled)
	f.ConnectErr = errors.New("user rejected")
	lib, _ := newLibrary(t, f)

	res, err := lib.ConnectWallet(context.Background(), "W")
	require.NoError(t, err)
	assert.ErrorIs(t, res.Reason(), wallet.ErrNotConnected)
}

func TestSignTransaction(t *testing.T) {
	ctx := context.Background()
	f := wallettest.NewFake("W", wallet.ReadyStateInstalled)
	lib, _ := newLibrary(t, f)

	res := lib.SignTransaction(ctx, "W", payload(t, f, false))
	assert.ErrorIs(t, res.Reason(), wallet.ErrNotConnected)

	_, err := lib.ConnectWallet(ctx, "W")
	require.NoError(t, err)

	for _, versioned := range []bool{false, true} {
		out, ok := lib.SignTransaction(ctx, "W", payload(t, f, versioned)).Get()
		require.True(t, ok)

		decoded, err := soltx.DecodeTransactionBase64(out)
		require.NoError(t, err)
		assert.Equal(t, versioned, decoded.Format == soltx.FormatVersioned)
		assert.NoError(t, decoded.Tx.VerifySignatures())
	}

	assert.ErrorIs(t, lib.SignTransaction(ctx, "W", "!!").Reason(), wallet.ErrMalformedPayload)
	assert.ErrorIs(t, lib.SignTransaction(ctx, "X", payload(t, f, false)).Reason(), wallet.ErrWalletNotFound)
}

func TestSignAllTransactions(t *testing.T) {
	ctx := context.Background()
	f := wallettest.NewFake("W", wallet.ReadyStateInstalled)
	lib, _ := newLibrary(t, f)
	_, err := lib.ConnectWallet(ctx, "W")
	require.NoError(t, err)

	out, ok := lib.SignAllTransactions(ctx, "W", []string{payload(t, f, false), payload(t, f, true)}).Get()
	require.True(t, ok)
	assert.Len(t, out, 2)

	res := lib.SignAllTransactions(ctx, "W", []string{payload(t, f, false), "junk"})
	assert.ErrorIs(t, res.Reason(), wallet.ErrMalformedPayload)
}

func TestSignMessage(t *testing.T) {
	ctx := context.Background()
	f := wallettest.NewFake("W", wallet.ReadyStateInstalled)
	lib, _ := newLibrary(t, f)
	_, err := lib.ConnectWallet(ctx, "W")
	require.NoError(t, err)

	sig, ok := lib.SignMessage(ctx, "W", "hello").Get()
	require.True(t, ok)
	assert.True(t, solana.SignatureFromBytes(sig).Verify(f.Key.PublicKey(), []byte("hello")))

	assert.ErrorIs(t, lib.SignMessage(ctx, "X", "hello").Reason(), wallet.ErrWalletNotFound)
}

func TestGetWallets(t *testing.T) {
	installed := wallettest.NewFake("Backpack", wallet.ReadyStateInstalled)
	loadable := wallettest.NewFake("Mobile", wallet.ReadyStateLoadable)
	loadable.Base = wallet.NewBase(wallet.Info{Name: "Mobile", Icon: svgIcon}, wallet.ReadyStateLoadable)
	lib, _ := newLibrary(t, installed, loadable)

	raw, err := lib.GetWallets(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^\{"wallets":\[\{"name":"Backpack","installed":true,"icon":"iVBORw0KGgo="\},\{"name":"Mobile","installed":false,"icon":"[A-Za-z0-9+/=]+"\}\]\}$`, raw)

	var parsed struct {
		Wallets []struct {
			Name      string `json:"name"`
			Installed bool   `json:"installed"`
			Icon      string `json:"icon"`
		} `json:"wallets"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))
	png, err := base64.StdEncoding.DecodeString(parsed.Wallets[1].Icon)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(png[:4]))
}

func TestGetWallets_Empty(t *testing.T) {
	lib, _ := newLibrary(t)
	raw, err := lib.GetWallets(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"wallets":[]}`, raw)
}

func TestGetWallets_IconFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	lister := &staticLister{adapters: []wallet.Adapter{wallettest.NewFake("W", wallet.ReadyStateInstalled)}}
	lib := NewLibrary(lister, nil, brokenIcons{}, zap.New(core))

	raw, err := lib.GetWallets(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"wallets":[{"name":"W","installed":true,"icon":""}]}`, raw)
	assert.Equal(t, 1, logs.FilterMessage("failed to normalize wallet icon").Len())
}

func TestRefreshWalletAdapters(t *testing.T) {
	lib, lister := newLibrary(t)
	lib.RefreshWalletAdapters()
	lib.RefreshWalletAdapters()
	assert.Equal(t, 2, lister.refreshes)
}

func TestGetTransactionFromStr(t *testing.T) {
	f := wallettest.NewFake("W", wallet.ReadyStateInstalled)
	lib, _ := newLibrary(t)

	tx, err := lib.GetTransactionFromStr(payload(t, f, false))
	require.NoError(t, err)
	assert.Equal(t, soltx.FormatLegacy, tx.Format)

	tx, err = lib.GetTransactionFromStr(payload(t, f, true))
	require.NoError(t, err)
	assert.Equal(t, soltx.FormatVersioned, tx.Format)
	assert.True(t, tx.Tx.Message.AccountKeys[0].Equals(f.Key.PublicKey()))

	_, err = lib.GetTransactionFromStr("AAAA")
	assert.ErrorIs(t, err, wallet.ErrMalformedPayload)
}
