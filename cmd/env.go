package cmd

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/config"
	"github.com/tranvictor/tokenwallet/provider"
	"github.com/tranvictor/tokenwallet/session"
	"github.com/tranvictor/tokenwallet/util/addrbook"
	"github.com/tranvictor/tokenwallet/wallet"
)

func providerOptions() provider.Options {
	return provider.Options{
		Network:      network,
		Nodes:        config.Nodes,
		Keystore:     config.Keystore,
		From:         config.From,
		Password:     provider.PromptPassword,
		PollInterval: config.PollInterval,
		Gas: provider.GasOptions{
			GasPriceGwei: config.GasPrice,
			TipGwei:      config.TipGas,
			GasLimit:     config.GasLimit,
			TxType:       config.TxType,
		},
	}
}

// resolverFor looks a recipient up as an address literal, then in the
// address book, then on ENS when the network has a registry.
func resolverFor(p provider.Provider) (addrbook.Resolver, error) {
	book, err := addrbook.LoadMap(config.AddressBook)
	if err != nil {
		return nil, err
	}
	chain := addrbook.Chain{addrbook.Literal{}, book}

	registry := config.ENSRegistry
	if registry == "" {
		registry = network.GetENSRegistry()
	}
	if registry != "" {
		if !addrbook.IsValidAddress(registry) {
			return nil, fmt.Errorf("ens registry %q: %w", registry, twcommon.ErrInvalidAddress)
		}
		chain = append(chain, addrbook.NewENS(common.HexToAddress(registry), p))
	}
	return chain, nil
}

func newWalletClient(ctx context.Context) (*wallet.Client, error) {
	p, err := dialProvider(ctx, providerOptions())
	if err != nil {
		if provider.IsNoProvider(err) {
			return nil, fmt.Errorf("couldn't reach any %s node, pass --node or set %s: %w",
				network.GetName(), network.GetNodeVariableName(), err)
		}
		return nil, err
	}
	resolver, err := resolverFor(p)
	if err != nil {
		return nil, err
	}
	policy := wallet.TreatAsFungible
	if config.Strict {
		policy = wallet.FailOnIndeterminate
	}
	return wallet.NewClient(p,
		wallet.WithResolver(resolver),
		wallet.WithPolicy(policy),
		wallet.WithLogger(twcommon.Logger()),
		wallet.WithNativeDecimals(network.GetNativeTokenDecimal()),
	), nil
}

// newSession dials the provider and makes the --from account active.
func newSession(ctx context.Context) (*session.Session, error) {
	client, err := newWalletClient(ctx)
	if err != nil {
		return nil, err
	}
	s, err := session.New(ctx, client, int(config.PageSize))
	if err != nil {
		return nil, err
	}
	if config.From != "" {
		if _, err := s.Select(config.From); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// holder is the address args[idx] resolves to, or the account it hints at.
// Without args[idx] it is the active account.
func holder(ctx context.Context, s *session.Session, args []string, idx int) (common.Address, error) {
	if len(args) <= idx {
		return s.Active(), nil
	}
	addr, resolveErr := s.Client().ResolveAddress(ctx, args[idx])
	if resolveErr == nil {
		return addr, nil
	}
	accounts := s.Accounts()
	i, err := session.FindAccount(accounts, args[idx])
	if err != nil {
		return common.Address{}, resolveErr
	}
	return accounts[i], nil
}

func contractArg(ctx context.Context, client *wallet.Client, input string) (common.Address, error) {
	addr, err := client.ResolveAddress(ctx, input)
	if err != nil {
		return common.Address{}, fmt.Errorf("couldn't interpret the contract address: %w", err)
	}
	return addr, nil
}
