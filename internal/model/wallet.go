package model

// ConnectRequest represents request for POST /wallet/connect
type ConnectRequest struct {
	WalletName string `json:"walletName" binding:"required"`
}

// ConnectResponse represents response for POST /wallet/connect.
// PublicKey is omitted when the wallet did not end up connected.
type ConnectResponse struct {
	PublicKey string `json:"publicKey,omitempty"`
}

// SignTransactionRequest represents request for POST /wallet/sign/transaction
type SignTransactionRequest struct {
	WalletName  string `json:"walletName" binding:"required"`
	Transaction string `json:"transaction" binding:"required"` // base64
}

// SignTransactionResponse represents response for POST /wallet/sign/transaction
type SignTransactionResponse struct {
	SignedTransaction string `json:"signedTransaction,omitempty"`
}

// SignAllTransactionsRequest represents request for POST /wallet/sign/transactions
type SignAllTransactionsRequest struct {
	WalletName   string   `json:"walletName" binding:"required"`
	Transactions []string `json:"transactions" binding:"required"`
}

// SignAllTransactionsResponse represents response for POST /wallet/sign/transactions
type SignAllTransactionsResponse struct {
	SignedTransactions []string `json:"signedTransactions,omitempty"`
}

// SignMessageRequest represents request for POST /wallet/sign/message
type SignMessageRequest struct {
	WalletName string `json:"walletName" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// SignMessageResponse represents response for POST /wallet/sign/message
type SignMessageResponse struct {
	Signature []byte `json:"signature,omitempty"` // base64 in JSON
}

// WalletInfo is one entry of the wallet list
type WalletInfo struct {
	Name      string `json:"name"`
	Installed bool   `json:"installed"`
	Icon      string `json:"icon"` // base64 PNG or raster payload, no data URL prefix
}

// WalletsResponse represents response for GET /wallet/list
type WalletsResponse struct {
	Wallets []WalletInfo `json:"wallets"`
}

// ClusterRequest represents request for PUT /wallet/cluster
type ClusterRequest struct {
	Cluster string `json:"cluster" binding:"required"`
}
