package solana

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
)

// ParseCluster resolves a cluster selector such as "mainnet-beta" or "devnet"
func ParseCluster(name string) (rpc.Cluster, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mainnet-beta", "mainnet":
		return rpc.MainNetBeta, nil
	case "devnet":
		return rpc.DevNet, nil
	case "testnet":
		return rpc.TestNet, nil
	case "localnet", "localhost":
		return rpc.LocalNet, nil
	case "":
		return rpc.Cluster{}, fmt.Errorf("cluster not set")
	}
	return rpc.Cluster{}, fmt.Errorf("unknown cluster %q", name)
}

// ChainID returns the wallet-standard chain identifier for a cluster
func ChainID(c rpc.Cluster) string {
	switch c.Name {
	case rpc.MainNetBeta.Name:
		return "solana:mainnet"
	case rpc.DevNet.Name:
		return "solana:devnet"
	case rpc.TestNet.Name:
		return "solana:testnet"
	}
	return "solana:localnet"
}
