// Package docs holds the swagger document served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/transaction/decode": {
            "post": {
                "description": "Decodes a base64 transaction, trying legacy encoding before versioned",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transaction"],
                "summary": "Decode transaction",
                "parameters": [
                    {
                        "description": "Transaction",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.DecodeTransactionRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.TransactionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/cluster": {
            "put": {
                "description": "Selects the network cluster for adapters created afterwards. Call refresh to apply it.",
                "consumes": ["application/json"],
                "tags": ["wallet"],
                "summary": "Select cluster",
                "parameters": [
                    {
                        "description": "Cluster: mainnet-beta, devnet, testnet or localnet",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.ClusterRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/connect": {
            "post": {
                "description": "Connects the named wallet. publicKey is omitted if the wallet did not connect. Opens the install page of a wallet that is not installed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Connect wallet",
                "parameters": [
                    {
                        "description": "Wallet name",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.ConnectRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ConnectResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/list": {
            "get": {
                "description": "Lists available wallets with install state and base64 icon",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "List wallets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.WalletsResponse"}}
                }
            }
        },
        "/wallet/refresh": {
            "post": {
                "description": "Recomputes the wallet list from bundled, discovered and mobile wallets",
                "tags": ["wallet"],
                "summary": "Refresh wallets",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/wallet/sign/message": {
            "post": {
                "description": "Signs the UTF-8 bytes of a message. signature is base64 and omitted if nothing was signed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Sign message",
                "parameters": [
                    {
                        "description": "Wallet name and message",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.SignMessageRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SignMessageResponse"}}
                }
            }
        },
        "/wallet/sign/transaction": {
            "post": {
                "description": "Signs a base64 legacy or versioned transaction. signedTransaction is omitted if nothing was signed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Sign transaction",
                "parameters": [
                    {
                        "description": "Wallet name and transaction",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.SignTransactionRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SignTransactionResponse"}}
                }
            }
        },
        "/wallet/sign/transactions": {
            "post": {
                "description": "Signs a batch of base64 transactions. One undecodable entry fails the whole batch.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Sign transactions",
                "parameters": [
                    {
                        "description": "Wallet name and transactions",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.SignAllTransactionsRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SignAllTransactionsResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.ClusterRequest": {
            "type": "object",
            "properties": {"cluster": {"type": "string"}}
        },
        "model.ConnectRequest": {
            "type": "object",
            "properties": {"walletName": {"type": "string"}}
        },
        "model.ConnectResponse": {
            "type": "object",
            "properties": {"publicKey": {"type": "string"}}
        },
        "model.DecodeTransactionRequest": {
            "type": "object",
            "properties": {"transaction": {"type": "string"}}
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "error": {"type": "string"}}
        },
        "model.SignAllTransactionsRequest": {
            "type": "object",
            "properties": {
                "transactions": {"type": "array", "items": {"type": "string"}},
                "walletName": {"type": "string"}
            }
        },
        "model.SignAllTransactionsResponse": {
            "type": "object",
            "properties": {"signedTransactions": {"type": "array", "items": {"type": "string"}}}
        },
        "model.SignMessageRequest": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "walletName": {"type": "string"}}
        },
        "model.SignMessageResponse": {
            "type": "object",
            "properties": {"signature": {"type": "array", "items": {"type": "integer"}}}
        },
        "model.SignTransactionRequest": {
            "type": "object",
            "properties": {"transaction": {"type": "string"}, "walletName": {"type": "string"}}
        },
        "model.SignTransactionResponse": {
            "type": "object",
            "properties": {"signedTransaction": {"type": "string"}}
        },
        "model.TransactionResponse": {
            "type": "object",
            "properties": {
                "accountKeys": {"type": "array", "items": {"type": "string"}},
                "feePayer": {"type": "string"},
                "format": {"type": "string"},
                "numInstructions": {"type": "integer"},
                "recentBlockhash": {"type": "string"},
                "signatures": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.WalletInfo": {
            "type": "object",
            "properties": {
                "icon": {"type": "string"},
                "installed": {"type": "boolean"},
                "name": {"type": "string"}
            }
        },
        "model.WalletsResponse": {
            "type": "object",
            "properties": {"wallets": {"type": "array", "items": {"$ref": "#/definitions/model.WalletInfo"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Wallet Bridge API",
	Description:      "Local bridge between a host application and Solana wallets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
