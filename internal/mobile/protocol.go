package mobile

import "fmt"

const (
	methodAuthorize        = "authorize"
	methodDeauthorize      = "deauthorize"
	methodSignTransactions = "sign_transactions"
	methodSignMessages     = "sign_messages"
)

// AppIdentity is shown to the user by the wallet app during authorization
type AppIdentity struct {
	Name string `json:"name,omitempty"`
	URI  string `json:"uri,omitempty"`
	Icon string `json:"icon,omitempty"`
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type authorizeParams struct {
	Identity AppIdentity `json:"identity"`
	Chain    string      `json:"chain"`
}

type deauthorizeParams struct {
	AuthToken string `json:"auth_token"`
}

type signPayloadsParams struct {
	Payloads []string `json:"payloads"`
}

type signMessagesParams struct {
	Addresses []string `json:"addresses"`
	Payloads  []string `json:"payloads"`
}

// RPCError is an error answered by the wallet app
type RPCError struct {
	Code    int64
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("wallet rpc error %d: %s", e.Code, e.Message)
}
