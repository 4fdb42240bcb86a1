package session

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet/wallettest"
	soltx "github.com/AlexZinkM/wallet-adapter-bridge/solana"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingOpener struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (o *recordingOpener) Open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return o.err
}

func newBridge(t *testing.T) (*Bridge, *recordingOpener, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	opener := &recordingOpener{}
	return NewBridge(opener, zap.New(core)), opener, logs
}

func encoded(t *testing.T, f *wallettest.Fake, versioned bool) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(wallettest.Encode(wallettest.Transfer(f.Key.PublicKey(), versioned)))
}

func connected(t *testing.T, f *wallettest.Fake) *wallettest.Fake {
	t.Helper()
	require.NoError(t, f.Connect(context.Background()))
	return f
}

func TestConnect_NotReadyOpensInstallPage(t *testing.T) {
	b, opener, _ := newBridge(t)
	f := wallettest.NewFake("Phantom", wallet.ReadyStateNotDetected)

	err := b.Connect(context.Background(), f)
	require.Error(t, err)
	assert.ErrorIs(t, err, wallet.ErrNotReady)
	assert.Equal(t, []string{f.URL()}, opener.urls)
	assert.False(t, f.Connecting())
	assert.False(t, f.Connected())
	assert.Equal(t, 0, f.ConnectCalls())

	// opener failures do not change the outcome
	opener.err = errors.New("no browser")
	err = b.Connect(context.Background(), wallettest.NewFake("X", wallet.ReadyStateUnsupported))
	assert.ErrorIs(t, err, wallet.ErrNotReady)
}

func TestConnect_Ready(t *testing.T) {
	b, opener, _ := newBridge(t)
	for _, state := range []wallet.ReadyState{wallet.ReadyStateInstalled, wallet.ReadyStateLoadable} {
		f := wallettest.NewFake("W", state)
		require.NoError(t, b.Connect(context.Background(), f))
		assert.True(t, f.Connected())
		assert.NotNil(t, f.PublicKey())
	}
	assert.Empty(t, opener.urls)
}

func TestConnect_AlreadyConnected(t *testing.T) {
	b, _, _ := newBridge(t)
	f := connected(t, wallettest.NewFake("W", wallet.ReadyStateInstalled))

	require.NoError(t, b.Connect(context.Background(), f))
	assert.Equal(t, 1, f.ConnectCalls())
}

func TestConnect_ConcurrentCallsDelegateOnce(t *testing.T) {
	b, _, _ := newBridge(t)
	f := wallettest.NewFake("W", wallet.ReadyStateInstalled)
	f.Gate = make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, b.Connect(context.Background(), f))
		}()
	}
	close(f.Gate)
	wg.Wait()

	assert.Equal(t, 1, f.ConnectCalls())
	assert.True(t, f.Connected())
}

func TestConnect_FailureIsLogged(t *testing.T) {
	b, _, logs := newBridge(t)
	f := wallettest.NewFake("W", wallet.ReadyStateInstalled)
	f.ConnectErr = errors.New("user rejected")

	require.NoError(t, b.Connect(context.Background(), f))
	assert.False(t, f.Connected())
	assert.False(t, f.Connecting())

	entries := logs.FilterMessage("Wallet error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "W", entries[0].ContextMap()["wallet"])
}

func TestSignTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("not connected", func(t *testing.T) {
		b, _, logs := newBridge(t)
		f := wallettest.NewFake("W", wallet.ReadyStateInstalled)
		res := b.SignTransaction(ctx, f, encoded(t, f, false))
		assert.False(t, res.Present())
		assert.ErrorIs(t, res.Reason(), wallet.ErrNotConnected)
		assert.Equal(t, 0, f.SignCalls())
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("capability absent", func(t *testing.T) {
		b, _, _ := newBridge(t)
		f := connected(t, wallettest.NewFake("W", wallet.ReadyStateInstalled).WithCaps(wallet.CapabilitySignMessage))
		res := b.SignTransaction(ctx, f, encoded(t, f, false))
		assert.ErrorIs(t, res.Reason(), wallet.ErrUnsupportedOperation)
		assert.Equal(t, 0, f.SignCalls())
	})

	t.Run("no signing methods", func(t *testing.T) {
		b, _, _ := newBridge(t)
		p := wallettest.NewPlain("P", wallet.ReadyStateInstalled)
		require.NoError(t, p.Connect(ctx))
		res := b.SignTransaction(ctx, p, "AA==")
		assert.ErrorIs(t, res.Reason(), wallet.ErrUnsupportedOperation)
	})

	t.Run("malformed payload", func(t *testing.T) {
		b, _, _ := newBridge(t)
		f := connected(t, wallettest.NewFake("W", wallet.ReadyStateInstalled))
		for _, payload := range []string{"***", base64.StdEncoding.EncodeToString([]byte("junk"))} {
			res := b.SignTransaction(ctx, f, payload)
			assert.ErrorIs(t, res.Reason(), wallet.ErrMalformedPayload)
		}
		assert.Equal(t, 0, f.SignCalls())
	})

	t.Run("legacy and versioned", func(t *testing.T) {
		b, _, _ := newBridge(t)
		f := connected(t, wallettest.NewFake("W", wallet.ReadyStateInstalled))
		for _, versioned := range []bool{false, true} {
			res := b.SignTransaction(ctx, f, encoded(t, f, versioned))
			signed, ok := res.Get()
			require.True(t, ok)
			assert.NoError(t, signed.VerifySignatures())
		}
	})

	t.Run("wallet failure", func(t *testing.T) {
		b, _, _ := newBridge(t)
		f := connected(t, wallettest.NewFake("W", wallet.ReadyStateInstalled))
		f.SignErr = errors.New("rejected")
		res := b.SignTransaction(ctx, f, encoded(t, f, false))
		assert.False(t, res.Present())
		assert.ErrorIs(t, res.Reason(), f.SignErr)
	})
}

func TestSignAllTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("signs every entry", func(t *testing.T) {
		b, _, _ := newBridge(t)
		f := connected(t, wallettest.NewFake("W", wallet.ReadyStateInstalled))
		res := b.SignAllTransactions(ctx, f, []string{encoded(t, f, false), encoded(t, f, true)})
		signed, ok := res.Get()
		require.True(t, ok)
		require.Len(t, signed, 2)
		for _, tx := range signed {
			assert.NoError(t, tx.VerifySignatures())
		}
	})

	t.Run("one bad entry aborts the batch", func(t *testing.T) {
		b, _, _ := newBridge(t)
		f := connected(t, wallettest.NewFake("W", wallet.ReadyStateInstalled))
		res := b.SignAllTransactions(ctx, f, []string{encoded(t, f, false), "%%%"})
		assert.ErrorIs(t, res.Reason(), wallet.ErrMalformedPayload)
		assert.Equal(t, 0, f.SignCalls())
	})

	t.Run("capability absent", func(t *testing.T) {
		b, _, _ := newBridge(t)
		f := connected(t, wallettest.NewFake("W", wallet.ReadyStateInstalled).WithCaps(wallet.CapabilitySignTransaction))
		res := b.SignAllTransactions(ctx, f, []string{encoded(t, f, false)})
		assert.ErrorIs(t, res.Reason(), wallet.ErrUnsupportedOperation)
	})

	t.Run("not connected", func(t *testing.T) {
		b, _, _ := newBridge(t)
		f := wallettest.NewFake("W", wallet.ReadyStateInstalled)
		res := b.SignAllTransactions(ctx, f, nil)
		assert.ErrorIs(t, res.Reason(), wallet.ErrNotConnected)
	})
}

func TestSignMessage(t *testing.T) {
	ctx := context.Background()

	b, _, _ := newBridge(t)
	f := connected(t, wallettest.NewFake("W", wallet.ReadyStateInstalled))
	res := b.SignMessage(ctx, f, "héllo")
	sig, ok := res.Get()
	require.True(t, ok)
	require.Len(t, sig, 64)

	want, err := f.Key.Sign([]byte("héllo"))
	require.NoError(t, err)
	assert.Equal(t, want[:], sig)

	other := connected(t, wallettest.NewFake("O", wallet.ReadyStateInstalled).WithCaps(wallet.CapabilitySignTransaction))
	assert.ErrorIs(t, b.SignMessage(ctx, other, "x").Reason(), wallet.ErrUnsupportedOperation)

	idle := wallettest.NewFake("I", wallet.ReadyStateInstalled)
	assert.ErrorIs(t, b.SignMessage(ctx, idle, "x").Reason(), wallet.ErrNotConnected)
}

func TestSignTransaction_RoundTripsThroughCodec(t *testing.T) {
	b, _, _ := newBridge(t)
	f := connected(t, wallettest.NewFake("W", wallet.ReadyStateInstalled))

	signed, ok := b.SignTransaction(context.Background(), f, encoded(t, f, true)).Get()
	require.True(t, ok)
	out, err := soltx.EncodeTransactionBase64(signed)
	require.NoError(t, err)

	decoded, err := soltx.DecodeTransactionBase64(out)
	require.NoError(t, err)
	assert.Equal(t, soltx.FormatVersioned, decoded.Format)
}
