// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"
	"encoding/json"

	"github.com/vechain/valpool/builtin/pool"
	"github.com/vechain/valpool/eventdb"
	"github.com/vechain/valpool/node"
	"github.com/vechain/valpool/pez"
)

// EraMessage announces a started era.
type EraMessage struct {
	Era           uint32        `json:"era"`
	Block         uint32        `json:"block"`
	Stake         []pez.Address `json:"stake"`
	Parliamentary []pez.Address `json:"parliamentary"`
	Merit         []pez.Address `json:"merit"`
}

func newEraMessage(e *pool.EraStarted) *EraMessage {
	return &EraMessage{
		Era:           e.Era,
		Block:         e.Block,
		Stake:         e.Stake,
		Parliamentary: e.Parliamentary,
		Merit:         e.Merit,
	}
}

// eraReader reads era starts from the block after the last one it returned.
type eraReader struct {
	node *node.Node
	next uint32
}

func newEraReader(n *node.Node, from uint32) *eraReader {
	return &eraReader{node: n, next: from}
}

// Read returns the eras started between the last read and the head.
func (r *eraReader) Read(ctx context.Context) ([]*EraMessage, error) {
	head := r.node.Head()
	if head == nil || head.Number < r.next {
		return nil, nil
	}

	var (
		msgs    []*EraMessage
		missing bool
	)
	for num := r.next; num <= head.Number; num++ {
		b := r.node.RecentBlock(num)
		if b == nil {
			missing = true
			break
		}
		for _, ev := range b.Events {
			if e, ok := ev.(pool.EraStarted); ok {
				msgs = append(msgs, newEraMessage(&e))
			}
		}
	}
	if missing {
		var err error
		if msgs, err = r.readArchive(ctx, head.Number); err != nil {
			return nil, err
		}
	}
	r.next = head.Number + 1
	return msgs, nil
}

// readArchive falls back to the event archive once blocks left the recent cache.
func (r *eraReader) readArchive(ctx context.Context, to uint32) ([]*EraMessage, error) {
	db := r.node.EventDB()
	if db == nil {
		return nil, nil
	}
	events, err := db.Filter(ctx, &eventdb.Filter{
		Range: &eventdb.Range{From: r.next, To: to},
		Name:  pool.EraStarted{}.Name(),
	})
	if err != nil {
		return nil, err
	}
	msgs := make([]*EraMessage, 0, len(events))
	for _, ev := range events {
		var e pool.EraStarted
		if err := json.Unmarshal(ev.Data, &e); err != nil {
			return nil, err
		}
		msgs = append(msgs, newEraMessage(&e))
	}
	return msgs, nil
}
