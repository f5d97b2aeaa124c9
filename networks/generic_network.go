package networks

import (
	"os"
	"strings"
	"time"
)

type GenericNetworkConfig struct {
	Name               string            `json:"name"`
	AlternativeNames   []string          `json:"alternative_names"`
	ChainID            uint64            `json:"chain_id"`
	NativeTokenSymbol  string            `json:"native_token_symbol"`
	NativeTokenDecimal uint64            `json:"native_token_decimal"`
	BlockTime          uint64            `json:"block_time"`
	NodeVariableName   string            `json:"node_variable_name"`
	DefaultNodes       map[string]string `json:"default_nodes"`
	ENSRegistry        string            `json:"ens_registry"`
}

type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	return &GenericNetwork{config: config}
}

func (n *GenericNetwork) GetName() string {
	return n.config.Name
}

func (n *GenericNetwork) GetChainID() uint64 {
	return n.config.ChainID
}

func (n *GenericNetwork) GetAlternativeNames() []string {
	return n.config.AlternativeNames
}

func (n *GenericNetwork) GetNativeTokenSymbol() string {
	return n.config.NativeTokenSymbol
}

func (n *GenericNetwork) GetNativeTokenDecimal() uint64 {
	return n.config.NativeTokenDecimal
}

func (n *GenericNetwork) GetBlockTime() time.Duration {
	return time.Duration(n.config.BlockTime) * time.Second
}

func (n *GenericNetwork) GetNodeVariableName() string {
	return n.config.NodeVariableName
}

// GetDefaultNodes returns the node set. A non empty node env var replaces
// the built-in nodes.
func (n *GenericNetwork) GetDefaultNodes() map[string]string {
	if n.config.NodeVariableName != "" {
		if url := strings.TrimSpace(os.Getenv(n.config.NodeVariableName)); url != "" {
			return map[string]string{"env-node": url}
		}
	}
	result := map[string]string{}
	for name, url := range n.config.DefaultNodes {
		result[name] = url
	}
	return result
}

func (n *GenericNetwork) GetENSRegistry() string {
	return n.config.ENSRegistry
}
