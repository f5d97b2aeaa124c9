package monitor

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	twcommon "github.com/tranvictor/tokenwallet/common"
)

const (
	DefaultPollInterval = 5 * time.Second
	DefaultLostAfter    = 3 * time.Minute
)

type TxInfoReader interface {
	TxInfoFromHash(ctx context.Context, hash common.Hash) (twcommon.TxInfo, error)
}

type TxMonitor struct {
	reader       TxInfoReader
	pollInterval time.Duration
	lostAfter    time.Duration
}

func NewGenericTxMonitor(r TxInfoReader, pollInterval time.Duration) *TxMonitor {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &TxMonitor{
		reader:       r,
		pollInterval: pollInterval,
		lostAfter:    DefaultLostAfter,
	}
}

// WithLostAfter sets how long a tx may stay unknown to every node before it
// is reported lost.
func (m *TxMonitor) WithLostAfter(d time.Duration) *TxMonitor {
	m.lostAfter = d
	return m
}

// periodicCheck polls until the tx reaches a final status or ctx is done.
// A tx seen pending once is never reported lost.
func (m *TxMonitor) periodicCheck(ctx context.Context, hash common.Hash, info chan<- twcommon.TxInfo) {
	defer close(info)
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()
	startTime := time.Now()
	isOnNode := false
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			txinfo, err := m.reader.TxInfoFromHash(ctx, hash)
			switch txinfo.Status {
			case twcommon.TxStatusError:
				twcommon.Logger().Debug("polling tx failed", zap.Stringer("tx", hash), zap.Error(err))
				continue
			case twcommon.TxStatusNotFound:
				if t.Sub(startTime) > m.lostAfter && !isOnNode {
					info <- twcommon.TxInfo{Status: twcommon.TxStatusLost}
					return
				}
				continue
			case twcommon.TxStatusPending:
				isOnNode = true
				continue
			case twcommon.TxStatusReverted, twcommon.TxStatusDone:
				info <- txinfo
				return
			}
		}
	}
}

func (m *TxMonitor) MakeWaitChannel(ctx context.Context, hash common.Hash) <-chan twcommon.TxInfo {
	result := make(chan twcommon.TxInfo, 1)
	go m.periodicCheck(ctx, hash, result)
	return result
}

func (m *TxMonitor) BlockingWait(ctx context.Context, hash common.Hash) (twcommon.TxInfo, error) {
	info, ok := <-m.MakeWaitChannel(ctx, hash)
	if !ok {
		return twcommon.TxInfo{Status: twcommon.TxStatusError}, ctx.Err()
	}
	return info, nil
}

// WaitConfirmed blocks until the tx is mined. It returns the receipt of a
// successful tx, ErrTxReverted with the receipt of a failed one and ErrTxLost
// when no node ever knew the tx.
func (m *TxMonitor) WaitConfirmed(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	info, err := m.BlockingWait(ctx, hash)
	if err != nil {
		return nil, err
	}
	switch info.Status {
	case twcommon.TxStatusDone:
		return info.Receipt, nil
	case twcommon.TxStatusReverted:
		return info.Receipt, twcommon.ErrTxReverted
	default:
		return nil, twcommon.ErrTxLost
	}
}
