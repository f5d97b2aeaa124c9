package common

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const erc20abi = `[
{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":false,"inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

const erc721abi = `[
{"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"owner","type":"address"},{"name":"index","type":"uint256"}],"name":"tokenOfOwnerByIndex","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"},{"name":"data","type":"bytes"}],"name":"safeTransferFrom","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

const erc165abi = `[
{"inputs":[{"name":"interfaceId","type":"bytes4"}],"name":"supportsInterface","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"}
]`

const ensregistryabi = `[
{"inputs":[{"name":"node","type":"bytes32"}],"name":"resolver","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

const ensresolverabi = `[
{"inputs":[{"name":"node","type":"bytes32"}],"name":"addr","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

// Interface ids as defined by ERC-165.
var (
	ERC721InterfaceID           = [4]byte{0x80, 0xac, 0x58, 0xcd}
	ERC721EnumerableInterfaceID = [4]byte{0x78, 0x0e, 0x9d, 0x63}
)

var (
	abiOnce sync.Once
	abis    map[string]*abi.ABI
)

func mustParse(def string) *abi.ABI {
	result, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return &result
}

func loadABIs() {
	abiOnce.Do(func() {
		abis = map[string]*abi.ABI{
			"erc20":       mustParse(erc20abi),
			"erc721":      mustParse(erc721abi),
			"erc165":      mustParse(erc165abi),
			"ensregistry": mustParse(ensregistryabi),
			"ensresolver": mustParse(ensresolverabi),
		}
	})
}

func GetERC20ABI() *abi.ABI {
	loadABIs()
	return abis["erc20"]
}

func GetERC721ABI() *abi.ABI {
	loadABIs()
	return abis["erc721"]
}

func GetERC165ABI() *abi.ABI {
	loadABIs()
	return abis["erc165"]
}

func GetENSRegistryABI() *abi.ABI {
	loadABIs()
	return abis["ensregistry"]
}

func GetENSResolverABI() *abi.ABI {
	loadABIs()
	return abis["ensresolver"]
}

func PackERC20Data(function string, params ...interface{}) ([]byte, error) {
	return GetERC20ABI().Pack(function, params...)
}

func PackERC721Data(function string, params ...interface{}) ([]byte, error) {
	return GetERC721ABI().Pack(function, params...)
}
