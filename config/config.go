package config

import (
	"errors"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "TOKENWALLET"
	ConfigName = "config"
)

var (
	Network      string
	Nodes        map[string]string
	From         string
	Keystore     string
	Debug        bool
	Timeout      time.Duration
	PollInterval time.Duration
	PageSize     uint64
	ENSRegistry  string
	AddressBook  string
	// Strict fails classification when the ERC-165 probe gets no answer
	// instead of falling back to ERC-20.
	Strict bool

	GasPrice float64
	TipGas   float64
	GasLimit uint64
	TxType   string
	// Yes skips the confirmation before a transfer is sent.
	Yes bool

	To      string
	Amount  string
	TokenID string
	Data    string
)

func HomeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// Dir is where the optional config file and the address book live.
func Dir() string {
	return filepath.Join(HomeDir(), ".tokenwallet")
}

// NewViper returns a viper instance reading ~/.tokenwallet/config.yaml (when
// present) with TOKENWALLET_* environment variables taking precedence.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("network", "mainnet")
	v.SetDefault("poll-interval", 5*time.Second)
	v.SetDefault("page-size", 0)
	v.SetDefault("address-book", filepath.Join(Dir(), "addresses.json"))
	return v
}

// Load merges the config file and environment into the package variables.
// Values already set from command line flags bound to v win, since viper
// resolves flags before env and file.
func Load(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	Network = v.GetString("network")
	From = v.GetString("from")
	Keystore = v.GetString("keystore")
	Debug = v.GetBool("debug")
	Timeout = v.GetDuration("timeout")
	PollInterval = v.GetDuration("poll-interval")
	PageSize = v.GetUint64("page-size")
	ENSRegistry = v.GetString("ens-registry")
	AddressBook = v.GetString("address-book")
	Strict = v.GetBool("strict")

	Nodes = map[string]string{}
	for name, url := range v.GetStringMapString("nodes") {
		Nodes[name] = url
	}
	if node := v.GetString("node"); node != "" {
		Nodes["custom-node"] = node
	}
	return nil
}
