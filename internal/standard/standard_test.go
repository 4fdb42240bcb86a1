package standard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/standard"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/standard/standardtest"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet/wallettest"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestIsCompatible(t *testing.T) {
	assert.True(t, standard.IsCompatible(standardtest.New("Full")))
	assert.True(t, standard.IsCompatible(standardtest.New("SendOnly", standard.FeatureSolanaSignTransaction)))
	assert.True(t, standard.IsCompatible(standardtest.New("NoDisconnect", standard.FeatureDisconnect)))

	assert.False(t, standard.IsCompatible(standardtest.New("NoConnect", standard.FeatureConnect)))
	assert.False(t, standard.IsCompatible(standardtest.New("NoEvents", standard.FeatureEvents)))
	assert.False(t, standard.IsCompatible(standardtest.New("NoSolana",
		standard.FeatureSolanaSignTransaction, standard.FeatureSolanaSignAndSendTransaction)))
	assert.False(t, standard.IsCompatible(nil))
}

func TestWrap_FiltersAndKeepsOrder(t *testing.T) {
	wallets := []standard.Wallet{
		standardtest.New("A"),
		standardtest.New("Broken", standard.FeatureConnect),
		standardtest.New("B"),
		standardtest.New("C", standard.FeatureSolanaSignMessage),
	}

	adapters := standard.Wrap(wallets, zaptest.NewLogger(t))
	require.Len(t, adapters, 3)
	assert.Equal(t, "A", adapters[0].Name())
	assert.Equal(t, "B", adapters[1].Name())
	assert.Equal(t, "C", adapters[2].Name())
	for _, a := range adapters {
		assert.Equal(t, wallet.ReadyStateInstalled, a.ReadyState())
		assert.False(t, a.Connected())
	}

	assert.Empty(t, standard.Wrap(nil, nil))
}

func TestAdapter_ConnectAndSign(t *testing.T) {
	ctx := context.Background()
	w := standardtest.New("Backpack")
	a := standard.NewAdapter(w, zaptest.NewLogger(t))

	require.NoError(t, a.Connect(ctx))
	require.True(t, a.Connected())
	assert.Equal(t, w.Key.PublicKey(), *a.PublicKey())
	assert.Equal(t, 1, w.Listeners())

	// already connected is a no-op
	require.NoError(t, a.Connect(ctx))
	assert.Equal(t, 1, w.Listeners())

	signer, ok := wallet.CanSignOneTransaction(a)
	require.True(t, ok)
	tx := wallettest.Transfer(w.Key.PublicKey(), true)
	signed, err := signer.SignTransaction(ctx, tx)
	require.NoError(t, err)
	require.NoError(t, signed.VerifySignatures())
	assert.Equal(t, solana.MessageVersionV0, signed.Message.GetVersion())

	batch, ok := wallet.CanSignManyTransactions(a)
	require.True(t, ok)
	many, err := batch.SignAllTransactions(ctx, []*solana.Transaction{
		wallettest.Transfer(w.Key.PublicKey(), false),
		wallettest.Transfer(w.Key.PublicKey(), true),
	})
	require.NoError(t, err)
	require.Len(t, many, 2)
	for _, s := range many {
		assert.NoError(t, s.VerifySignatures())
	}

	msgSigner, ok := wallet.CanSignMessage(a)
	require.True(t, ok)
	sig, err := msgSigner.SignMessage(ctx, []byte("hello"))
	require.NoError(t, err)
	assert.True(t, solana.SignatureFromBytes(sig).Verify(w.Key.PublicKey(), []byte("hello")))

	require.NoError(t, a.Disconnect(ctx))
	assert.False(t, a.Connected())
	assert.Nil(t, a.PublicKey())
	assert.Equal(t, 0, w.Listeners())
}

func TestAdapter_ReportsFeatureMap(t *testing.T) {
	a := standard.NewAdapter(standardtest.New("NoMessage", standard.FeatureSolanaSignMessage), nil)
	_, ok := wallet.CanSignMessage(a)
	assert.False(t, ok)
	_, ok = wallet.CanSignOneTransaction(a)
	assert.True(t, ok)

	a = standard.NewAdapter(standardtest.New("SendOnly", standard.FeatureSolanaSignTransaction), nil)
	_, ok = wallet.CanSignOneTransaction(a)
	assert.False(t, ok)
	_, ok = wallet.CanSignManyTransactions(a)
	assert.False(t, ok)
}

func TestAdapter_SignBeforeConnect(t *testing.T) {
	w := standardtest.New("Early")
	a := standard.NewAdapter(w, nil)

	_, err := a.SignTransaction(context.Background(), wallettest.Transfer(w.Key.PublicKey(), false))
	assert.ErrorIs(t, err, wallet.ErrNotConnected)
	_, err = a.SignMessage(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, wallet.ErrNotConnected)
}

func TestAdapter_ConnectFailure(t *testing.T) {
	w := standardtest.New("Rejecting")
	w.ConnectErr = errors.New("user rejected the request")
	a := standard.NewAdapter(w, nil)

	err := a.Connect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, w.ConnectErr)
	assert.False(t, a.Connected())
	assert.False(t, a.Connecting())
}

func TestAdapter_AccountChange(t *testing.T) {
	ctx := context.Background()
	w := standardtest.New("Switcher")
	a := standard.NewAdapter(w, zaptest.NewLogger(t))
	require.NoError(t, a.Connect(ctx))

	next, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	w.SwitchAccount(&next)
	assert.Equal(t, next.PublicKey(), *a.PublicKey())

	w.SwitchAccount(nil)
	assert.False(t, a.Connected())
	assert.Equal(t, 0, w.Listeners())
}

func TestAdapter_Release(t *testing.T) {
	ctx := context.Background()
	w := standardtest.New("Released")
	a := standard.NewAdapter(w, zaptest.NewLogger(t))
	require.NoError(t, a.Connect(ctx))
	require.Equal(t, 1, w.Listeners())

	a.Release()
	assert.False(t, a.Connected())
	assert.Nil(t, a.PublicKey())
	assert.Equal(t, 0, w.Listeners())
	// the wallet keeps its own session
	assert.NotEmpty(t, w.Accounts())

	// a released adapter no longer follows the wallet
	require.NoError(t, a.Connect(ctx))
	assert.Equal(t, 0, w.Listeners())
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := standard.NewHub(zaptest.NewLogger(t))

	var registered, unregistered []string
	offReg := hub.On(standard.EventRegister, func(ws ...standard.Wallet) {
		for _, w := range ws {
			registered = append(registered, w.Name())
		}
	})
	hub.On(standard.EventUnregister, func(ws ...standard.Wallet) {
		for _, w := range ws {
			unregistered = append(unregistered, w.Name())
		}
	})

	unregA := hub.Register(standardtest.New("A"), standardtest.New("B"))
	hub.Register(standardtest.New("C"))
	require.Len(t, hub.Get(), 3)
	assert.Equal(t, []string{"A", "B", "C"}, registered)

	unregA()
	unregA()
	require.Len(t, hub.Get(), 1)
	assert.Equal(t, "C", hub.Get()[0].Name())
	assert.Equal(t, []string{"A", "B"}, unregistered)

	offReg()
	hub.Register(standardtest.New("D"))
	assert.Equal(t, []string{"A", "B", "C"}, registered)
	assert.Len(t, hub.Get(), 2)
}
