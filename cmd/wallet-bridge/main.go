package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/wallet-adapter-bridge/bridge"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/config"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/logger"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/mobile"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: config.IsDebug()})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer l.Sync()

	if err := run(l); err != nil {
		l.Fatal("wallet bridge stopped", zap.Error(err))
	}
}

func run(l *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// a standalone process has no injected providers; embedding hosts pass
	// Providers and Wallets to bridge.New or call Service.Register
	svc, err := bridge.New(bridge.Options{
		Logger:           l,
		MobileDetect:     detectMobile,
		MobileBuild:      buildMobile(l.Named("mobile")),
		OpenInstallLinks: config.GetOpenInstallLinks(),
		IconSize:         config.GetIconSize(),
		IconCacheSize:    config.GetIconCacheSize(),
	})
	if err != nil {
		return err
	}
	defer svc.Close()

	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info("wallet bridge listening", zap.String("addr", srv.Addr), zap.Int("wallets", svc.Wallets()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	l.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func detectMobile() bool {
	return mobile.IsMobileEnvironment(config.GetHostUserAgent(), config.GetHostSecureContext())
}

func buildMobile(l *zap.Logger) func() (wallet.Adapter, error) {
	return func() (wallet.Adapter, error) {
		name, uri, appIcon := config.GetAppIdentity()
		a, err := mobile.NewAdapter(mobile.Config{
			Cluster:      config.GetCluster(),
			ReflectorURL: config.GetMobileReflectorURL(),
			Identity:     mobile.AppIdentity{Name: name, URI: uri, Icon: appIcon},
			Display:      displayQR(l),
			Logger:       l,
		})
		if err != nil {
			return nil, err
		}
		return a, nil
	}
}

// displayQR writes the association QR code where the host can show it
func displayQR(l *zap.Logger) func(mobile.Association) error {
	return func(a mobile.Association) error {
		path := config.GetMobileQRPath()
		if err := os.WriteFile(path, a.QR, 0o644); err != nil {
			return fmt.Errorf("failed to write association qr: %w", err)
		}
		l.Info("scan the QR code with a mobile wallet", zap.String("path", path), zap.String("uri", a.URI))
		return nil
	}
}
