package broadcaster

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/tranvictor/tokenwallet/common"
)

// RPCCaller is the slice of *rpc.Client the broadcaster needs.
type RPCCaller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// Broadcaster takes a signed tx and try to broadcast it to all
// nodes that it manages as fast as possible. It reports success when
// at least 1 node accepted the tx.
type Broadcaster struct {
	clients map[string]RPCCaller
}

func (b *Broadcaster) GetNodes() map[string]RPCCaller {
	return b.clients
}

func (b *Broadcaster) BroadcastTx(ctx context.Context, tx *types.Transaction) (string, bool, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return "", false, fmt.Errorf("tx is not valid, couldn't use rlp to encode it: %w", err)
	}
	return b.Broadcast(ctx, hexutil.Encode(data))
}

// data must be hex encoded of the signed tx
func (b *Broadcaster) Broadcast(ctx context.Context, data string) (string, bool, error) {
	hash := common.RawTxToHash(data)
	if len(b.clients) == 0 {
		return hash, false, fmt.Errorf("no node to broadcast to")
	}
	parallelTasks := []func() error{}
	for name := range b.clients {
		name, cli := name, b.clients[name]
		parallelTasks = append(parallelTasks, func() error {
			if err := cli.CallContext(ctx, nil, "eth_sendRawTransaction", data); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	numErrs, err := common.RunParallel(parallelTasks...)
	if numErrs == len(b.clients) {
		return hash, false, err
	}
	if err != nil {
		common.Logger().Debug("some nodes rejected the tx",
			zap.String("tx", hash), zap.Int("failed", numErrs), zap.Error(err))
	}
	return hash, true, nil
}

func NewBroadcaster(clients map[string]RPCCaller) *Broadcaster {
	return &Broadcaster{clients: clients}
}

// NewGenericBroadcaster dials every node and skips the unreachable ones.
func NewGenericBroadcaster(nodes map[string]string) *Broadcaster {
	clients := map[string]RPCCaller{}
	for name, url := range nodes {
		client, err := rpc.Dial(url)
		if err != nil {
			common.Logger().Warn("couldn't connect to node", zap.String("node", name), zap.Error(err))
			continue
		}
		clients[name] = client
	}
	return NewBroadcaster(clients)
}
