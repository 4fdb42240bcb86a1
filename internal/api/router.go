package api

import (
	"net/http"

	_ "github.com/AlexZinkM/wallet-adapter-bridge/docs"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/facade"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(lib *facade.Library) (http.Handler, error) {
	walletHandler, err := handler.NewWalletHandler(lib)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/connect", walletHandler.Connect)
	mux.HandleFunc("/wallet/sign/transaction", walletHandler.SignTransaction)
	mux.HandleFunc("/wallet/sign/transactions", walletHandler.SignAllTransactions)
	mux.HandleFunc("/wallet/sign/message", walletHandler.SignMessage)
	mux.HandleFunc("/wallet/list", walletHandler.List)
	mux.HandleFunc("/wallet/refresh", walletHandler.Refresh)
	mux.HandleFunc("/wallet/cluster", walletHandler.SetCluster)

	// Transaction endpoints
	mux.HandleFunc("/transaction/decode", walletHandler.DecodeTransaction)

	return mux, nil
}
