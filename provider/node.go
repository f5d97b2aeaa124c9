package provider

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/util/broadcaster"
)

// Node uses accounts unlocked on a node. Signing happens on that node
// through eth_sendTransaction; reads fan out to every configured node.
type Node struct {
	client  broadcaster.RPCCaller
	reader  chainReader
	monitor confirmer
}

func NewNode(client broadcaster.RPCCaller, r chainReader, m confirmer) *Node {
	return &Node{client: client, reader: r, monitor: m}
}

func (n *Node) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := n.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, twcommon.WrapWithCode(twcommon.CodeAccounts, "eth_accounts", err)
	}
	return accounts, nil
}

func (n *Node) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	return n.reader.GetBalance(ctx, addr)
}

func (n *Node) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return n.reader.CallContract(ctx, msg)
}

type sendTxArgs struct {
	From  common.Address `json:"from"`
	To    common.Address `json:"to"`
	Value *hexutil.Big   `json:"value"`
	Data  hexutil.Bytes  `json:"data,omitempty"`
}

func (n *Node) SendTransaction(ctx context.Context, req TxRequest) (common.Hash, error) {
	value := req.Value
	if value == nil {
		value = big.NewInt(0)
	}
	var hash common.Hash
	err := n.client.CallContext(ctx, &hash, "eth_sendTransaction", sendTxArgs{
		From:  req.From,
		To:    req.To,
		Value: (*hexutil.Big)(value),
		Data:  req.Data,
	})
	if err != nil {
		return common.Hash{}, twcommon.WrapWithCode(twcommon.CodeSendTx, "eth_sendTransaction", err)
	}
	twcommon.Logger().Debug("tx submitted to node",
		zap.Stringer("tx", hash), zap.Stringer("from", req.From), zap.Stringer("to", req.To))
	return hash, nil
}

func (n *Node) WaitConfirmed(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return n.monitor.WaitConfirmed(ctx, hash)
}
