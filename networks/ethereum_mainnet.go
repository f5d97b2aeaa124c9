package networks

// Same registry address on every network that deployed ENS.
const ensRegistry = "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"

var EthereumMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "mainnet",
	AlternativeNames:   []string{"ethereum"},
	ChainID:            1,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	BlockTime:          12,
	NodeVariableName:   "ETHEREUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"mainnet-publicnode": "https://ethereum-rpc.publicnode.com",
		"mainnet-llamarpc":   "https://eth.llamarpc.com",
	},
	ENSRegistry: ensRegistry,
})

var Sepolia Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "sepolia",
	ChainID:            11155111,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	BlockTime:          12,
	NodeVariableName:   "ETHEREUM_SEPOLIA_NODE",
	DefaultNodes: map[string]string{
		"sepolia-publicnode": "https://ethereum-sepolia-rpc.publicnode.com",
	},
	ENSRegistry: ensRegistry,
})

// Dev is a local development node such as anvil, hardhat or geth --dev.
var Dev Network = NewGenericNetwork(GenericNetworkConfig{
	Name:               "dev",
	AlternativeNames:   []string{"local", "localhost"},
	ChainID:            1337,
	NativeTokenSymbol:  "ETH",
	NativeTokenDecimal: 18,
	BlockTime:          1,
	NodeVariableName:   "DEV_NODE",
	DefaultNodes: map[string]string{
		"localhost": "http://127.0.0.1:8545",
	},
})
