package provider

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/networks"
	"github.com/tranvictor/tokenwallet/util/account"
	"github.com/tranvictor/tokenwallet/util/broadcaster"
	"github.com/tranvictor/tokenwallet/util/monitor"
	"github.com/tranvictor/tokenwallet/util/reader"
)

type Options struct {
	Network networks.Network
	// Nodes are added to the network's default nodes.
	Nodes map[string]string
	// Keystore is a keystore file or directory. Empty means node managed
	// accounts.
	Keystore string
	// From picks the keystore account when Keystore is a directory.
	From         string
	Password     func(prompt string) (string, error)
	PollInterval time.Duration
	Gas          GasOptions
}

func noProvider(op string, err error) error {
	return twcommon.WrapWithCode(twcommon.CodeNoProvider, op, err)
}

// Dial connects to the configured nodes and requests account access once.
// It fails with a NO_PROVIDER AppError when no node is configured or none
// answers.
func Dial(ctx context.Context, opts Options) (Provider, error) {
	if opts.Network == nil {
		return nil, noProvider("dial", fmt.Errorf("no network selected"))
	}
	nodes := networks.NodesFor(opts.Network, opts.Nodes)
	if len(nodes) == 0 {
		return nil, noProvider("dial", fmt.Errorf("no node configured for %s", opts.Network.GetName()))
	}

	r := reader.NewEthReaderGeneric(nodes)
	chainID, err := r.ChainID(ctx)
	if err != nil {
		return nil, noProvider("dial", err)
	}
	if chainID.Uint64() != opts.Network.GetChainID() {
		fields := []zap.Field{
			zap.String("network", opts.Network.GetName()),
			zap.Uint64("expected", opts.Network.GetChainID()),
			zap.Stringer("got", chainID),
		}
		if known, err := networks.GetNetworkByID(chainID.Uint64()); err == nil {
			fields = append(fields, zap.String("node_network", known.GetName()))
		}
		twcommon.Logger().Warn("node chain id differs from the selected network", fields...)
	}
	m := monitor.NewGenericTxMonitor(r, opts.PollInterval)

	var p Provider
	if opts.Keystore != "" {
		acc, err := openKeystore(opts)
		if err != nil {
			return nil, err
		}
		p = NewKeystore(acc, chainID, opts.Gas, r, broadcaster.NewGenericBroadcaster(nodes), m)
	} else {
		name := primaryNode(nodes)
		client, err := rpc.DialContext(ctx, nodes[name])
		if err != nil {
			return nil, noProvider("dial "+name, err)
		}
		p = NewNode(client, r, m)
	}

	accounts, err := p.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, twcommon.WrapWithCode(twcommon.CodeAccounts, "accounts", twcommon.ErrNoAccounts)
	}
	twcommon.Logger().Debug("provider ready",
		zap.String("network", opts.Network.GetName()),
		zap.Int("nodes", len(nodes)),
		zap.Int("accounts", len(accounts)),
	)
	return p, nil
}

// primaryNode is the node holding the unlocked accounts: the custom node
// when one is given, otherwise the first by name.
func primaryNode(nodes map[string]string) string {
	if _, ok := nodes["custom-node"]; ok {
		return "custom-node"
	}
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0]
}

func openKeystore(opts Options) (*account.Account, error) {
	file := opts.Keystore
	info, err := os.Stat(file)
	if err != nil {
		return nil, twcommon.WrapWithCode(twcommon.CodeKeystore, "open keystore", err)
	}
	if info.IsDir() {
		entries, err := account.ScanKeystoreDir(file)
		if err != nil {
			return nil, twcommon.WrapWithCode(twcommon.CodeKeystore, "scan keystore", err)
		}
		file = ""
		for _, e := range entries {
			if opts.From == "" || strings.EqualFold(e.Address.Hex(), opts.From) {
				file = e.File
				break
			}
		}
		if file == "" {
			return nil, twcommon.WrapWithCode(twcommon.CodeKeystore, "scan keystore",
				fmt.Errorf("no keystore for %q in %s", opts.From, opts.Keystore))
		}
	}
	prompt := opts.Password
	if prompt == nil {
		prompt = PromptPassword
	}
	password, err := prompt(fmt.Sprintf("Passphrase for %s: ", file))
	if err != nil {
		return nil, twcommon.WrapWithCode(twcommon.CodeKeystore, "read passphrase", err)
	}
	acc, err := account.NewKeystoreAccount(file, password)
	if err != nil {
		return nil, twcommon.WrapWithCode(twcommon.CodeKeystore, "unlock keystore", err)
	}
	return acc, nil
}

// IsNoProvider reports whether err means no provider could be reached.
func IsNoProvider(err error) bool {
	return twcommon.HasCode(err, twcommon.CodeNoProvider)
}
