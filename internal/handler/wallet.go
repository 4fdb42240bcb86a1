package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/config"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/facade"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/model"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"
	"github.com/AlexZinkM/wallet-adapter-bridge/solana"
)

// WalletHandler exposes the wallet library to the host application
type WalletHandler struct {
	lib *facade.Library
}

// NewWalletHandler creates a new WalletHandler over the library
func NewWalletHandler(lib *facade.Library) (*WalletHandler, error) {
	if lib == nil {
		return nil, errors.New("wallet library not set")
	}
	return &WalletHandler{lib: lib}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Connects the named wallet. publicKey is omitted if the wallet did not connect. Opens the install page of a wallet that is not installed.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ConnectRequest  true  "Wallet name"
// @Success      200      {object}  model.ConnectResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := h.lib.ConnectWallet(r.Context(), req.WalletName)
	if err != nil {
		if wallet.IsNotReadyError(err) {
			writeJSON(w, http.StatusConflict, model.ErrorResponse{Error: err.Error(), Code: "NOT_READY"})
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	pk, _ := res.Get()
	writeJSON(w, http.StatusOK, model.ConnectResponse{PublicKey: pk})
}

// SignTransaction handles POST /wallet/sign/transaction
// @Summary      Sign transaction
// @Description  Signs a base64 legacy or versioned transaction. signedTransaction is omitted if nothing was signed.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignTransactionRequest  true  "Wallet name and transaction"
// @Success      200      {object}  model.SignTransactionResponse
// @Router       /wallet/sign/transaction [post]
func (h *WalletHandler) SignTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SignTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	signed, _ := h.lib.SignTransaction(r.Context(), req.WalletName, req.Transaction).Get()
	writeJSON(w, http.StatusOK, model.SignTransactionResponse{SignedTransaction: signed})
}

// SignAllTransactions handles POST /wallet/sign/transactions
// @Summary      Sign transactions
// @Description  Signs a batch of base64 transactions. One undecodable entry fails the whole batch.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignAllTransactionsRequest  true  "Wallet name and transactions"
// @Success      200      {object}  model.SignAllTransactionsResponse
// @Router       /wallet/sign/transactions [post]
func (h *WalletHandler) SignAllTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SignAllTransactionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	signed, _ := h.lib.SignAllTransactions(r.Context(), req.WalletName, req.Transactions).Get()
	writeJSON(w, http.StatusOK, model.SignAllTransactionsResponse{SignedTransactions: signed})
}

// SignMessage handles POST /wallet/sign/message
// @Summary      Sign message
// @Description  Signs the UTF-8 bytes of a message. signature is base64 and omitted if nothing was signed.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignMessageRequest  true  "Wallet name and message"
// @Success      200      {object}  model.SignMessageResponse
// @Router       /wallet/sign/message [post]
func (h *WalletHandler) SignMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SignMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sig, _ := h.lib.SignMessage(r.Context(), req.WalletName, req.Message).Get()
	writeJSON(w, http.StatusOK, model.SignMessageResponse{Signature: sig})
}

// List handles GET /wallet/list
// @Summary      List wallets
// @Description  Lists available wallets with install state and base64 icon
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletsResponse
// @Router       /wallet/list [get]
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	body, err := h.lib.GetWallets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

// Refresh handles POST /wallet/refresh
// @Summary      Refresh wallets
// @Description  Recomputes the wallet list from bundled, discovered and mobile wallets
// @Tags         wallet
// @Success      204
// @Router       /wallet/refresh [post]
func (h *WalletHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	h.lib.RefreshWalletAdapters()
	w.WriteHeader(http.StatusNoContent)
}

// SetCluster handles PUT /wallet/cluster
// @Summary      Select cluster
// @Description  Selects the network cluster for adapters created afterwards. Call refresh to apply it.
// @Tags         wallet
// @Accept       json
// @Param        request  body  model.ClusterRequest  true  "Cluster: mainnet-beta, devnet, testnet or localnet"
// @Success      204
// @Failure      400  {object}  model.ErrorResponse
// @Router       /wallet/cluster [put]
func (h *WalletHandler) SetCluster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed. Should be PUT", http.StatusMethodNotAllowed)
		return
	}

	var req model.ClusterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cluster, err := solana.ParseCluster(req.Cluster)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	config.SetCluster(cluster.Name)
	w.WriteHeader(http.StatusNoContent)
}

// DecodeTransaction handles POST /transaction/decode
// @Summary      Decode transaction
// @Description  Decodes a base64 transaction, trying legacy encoding before versioned
// @Tags         transaction
// @Accept       json
// @Produce      json
// @Param        request  body      model.DecodeTransactionRequest  true  "Transaction"
// @Success      200      {object}  model.TransactionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /transaction/decode [post]
func (h *WalletHandler) DecodeTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.DecodeTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	decoded, err := h.lib.GetTransactionFromStr(req.Transaction)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := model.NewTransactionResponse(string(decoded.Format), decoded.Tx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
