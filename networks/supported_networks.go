package networks

import (
	"fmt"
	"sort"
)

var supportedNetworks = []Network{
	EthereumMainnet,
	Sepolia,
	Dev,
}

var ErrNetworkNotFound = fmt.Errorf("network not found")

var globalSupportedNetworks = newSupportedNetworks()

type networks struct {
	networks     map[string]Network
	networksByID map[uint64]Network
}

func newSupportedNetworks() *networks {
	result := &networks{
		map[string]Network{},
		map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		result.add(n)
	}
	return result
}

func (n *networks) add(network Network) {
	names := append([]string{network.GetName()}, network.GetAlternativeNames()...)
	for _, name := range names {
		if _, found := n.networks[name]; found {
			panic(fmt.Errorf("network with name or alternative name of '%s' already exists", name))
		}
		n.networks[name] = network
	}
	n.networksByID[network.GetChainID()] = network
}

func GetNetwork(name string) (Network, error) {
	res, found := globalSupportedNetworks.networks[name]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func GetNetworkByID(id uint64) (Network, error) {
	res, found := globalSupportedNetworks.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func GetSupportedNetworkNames() []string {
	res := []string{}
	for name := range globalSupportedNetworks.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// NodesFor merges the network's default nodes with extra ones; extra nodes
// with the same name win.
func NodesFor(network Network, extra map[string]string) map[string]string {
	result := network.GetDefaultNodes()
	for name, url := range extra {
		result[name] = url
	}
	return result
}
