// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node drives the validator pool block by block. Each block runs the era
// hook, then the queued extrinsics in arrival order, and commits the result.
package node

import (
	"context"
	"encoding/binary"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/valpool/builtin/pool"
	"github.com/vechain/valpool/cache"
	"github.com/vechain/valpool/co"
	"github.com/vechain/valpool/eventdb"
	"github.com/vechain/valpool/health"
	"github.com/vechain/valpool/kv"
	"github.com/vechain/valpool/log"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/randomness"
	"github.com/vechain/valpool/scores"
	"github.com/vechain/valpool/state"
)

var logger = log.WithContext("pkg", "node")

const metaBucket = kv.Bucket("m")

var (
	headKey = []byte("head")

	errNotBootstrapped = errors.New("node is not bootstrapped")
)

// Options for Node.
type Options struct {
	BlockInterval time.Duration
	QueueLimit    int
	RecentBlocks  int
	AllowRoot     bool
	// signed origins are not authenticated, so manager-only calls from them are opt-in
	AllowManagerCalls bool
}

// Head identifies the latest committed block.
type Head struct {
	Number    uint32      `json:"number"`
	ID        pez.Bytes32 `json:"id"`
	ParentID  pez.Bytes32 `json:"parentID"`
	Timestamp uint64      `json:"timestamp"`
}

// Block is a committed block with the pool events it produced.
type Block struct {
	Head
	Events   []pool.Event `json:"-"`
	Receipts []*Receipt   `json:"receipts"`
}

type pending struct {
	x    *Extrinsic
	done chan *Receipt
}

// Node owns the pool storage and is its only writer.
type Node struct {
	store   kv.Store
	meta    kv.Store
	eventDB *eventdb.EventDB
	cfg     pool.Config
	scores  scores.Provider
	beacon  randomness.Source
	opts    Options

	lock   sync.RWMutex
	queue  chan *pending
	head   atomic.Pointer[Head]
	recent *cache.LRU[uint32, *Block]
	signal co.Signal
	health *health.Health
}

// New creates a node over store, resuming from the persisted head if any.
func New(
	store kv.Store,
	eventDB *eventdb.EventDB,
	cfg pool.Config,
	provider scores.Provider,
	beacon randomness.Source,
	opts Options,
) (*Node, error) {
	if opts.BlockInterval <= 0 {
		opts.BlockInterval = time.Duration(pez.BlockInterval) * time.Second
	}
	if opts.QueueLimit <= 0 {
		opts.QueueLimit = 1024
	}
	if opts.RecentBlocks <= 0 {
		opts.RecentBlocks = 128
	}
	recent, err := cache.NewLRU[uint32, *Block](opts.RecentBlocks)
	if err != nil {
		return nil, err
	}

	n := &Node{
		store:   store,
		meta:    metaBucket.NewStore(store),
		eventDB: eventDB,
		cfg:     cfg,
		scores:  provider,
		beacon:  beacon,
		opts:    opts,
		queue:   make(chan *pending, opts.QueueLimit),
		recent:  recent,
		health:  health.New(opts.BlockInterval),
	}

	head, err := n.loadHead()
	if err != nil {
		return nil, err
	}
	if head != nil {
		n.head.Store(head)
		n.health.BootstrapStatus(true)
		logger.Info("resumed from head", "number", head.Number, "id", head.ID.AbbrevString())
	}
	return n, nil
}

func (n *Node) loadHead() (*Head, error) {
	data, err := n.meta.Get(headKey)
	if err != nil {
		if n.meta.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "load head")
	}
	var head Head
	if err := rlp.DecodeBytes(data, &head); err != nil {
		return nil, errors.Wrap(err, "decode head")
	}
	return &head, nil
}

func (n *Node) saveHead(head *Head) error {
	data, err := rlp.EncodeToBytes(head)
	if err != nil {
		return err
	}
	return errors.Wrap(n.meta.Put(headKey, data), "save head")
}

func (n *Node) newPool(st *state.State, emitter pool.Emitter) *pool.Pool {
	return pool.New(pez.PoolContractAddress, st, n.cfg, n.scores, n.beacon, emitter)
}

func (n *Node) Options() Options {
	return n.opts
}

func (n *Node) EventDB() *eventdb.EventDB {
	return n.eventDB
}

func (n *Node) Scores() scores.Provider {
	return n.scores
}

func (n *Node) Health() *health.Health {
	return n.health
}

// Head returns the latest committed block head, nil before bootstrap.
func (n *Node) Head() *Head {
	return n.head.Load()
}

// RecentBlock returns a recently committed block, nil once evicted.
func (n *Node) RecentBlock(number uint32) *Block {
	b, _ := n.recent.Get(number)
	return b
}

// NewWaiter returns a waiter fired after each committed block.
func (n *Node) NewWaiter() co.Waiter {
	return n.signal.NewWaiter()
}

// View runs fn against a read only pool over the committed state.
func (n *Node) View(fn func(p *pool.Pool) error) error {
	n.lock.RLock()
	defer n.lock.RUnlock()

	return fn(n.newPool(state.New(n.store), nil))
}

// Bootstrap builds block zero by running fn on an empty pool. It is a no-op
// when the node already has a head.
func (n *Node) Bootstrap(ctx context.Context, fn func(p *pool.Pool) error) (bool, error) {
	if n.head.Load() != nil {
		return false, nil
	}

	head := &Head{Timestamp: uint64(time.Now().Unix())}
	head.ID = blockID(head)

	block, err := n.execute(ctx, head, fn)
	if err != nil {
		return false, errors.Wrap(err, "bootstrap")
	}
	n.health.BootstrapStatus(true)
	logger.Info("bootstrapped", "id", head.ID.AbbrevString(), "events", len(block.Events))
	return true, nil
}

// Submit queues x for the next block. The returned channel yields its receipt.
func (n *Node) Submit(ctx context.Context, x *Extrinsic) (<-chan *Receipt, error) {
	if err := x.Validate(n.opts); err != nil {
		return nil, err
	}
	pd := &pending{x: x, done: make(chan *Receipt, 1)}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case n.queue <- pd:
		return pd.done, nil
	default:
		return nil, ErrQueueFull
	}
}

// Run produces a block every block interval until ctx is done.
func (n *Node) Run(ctx context.Context) error {
	logger.Debug("enter block loop", "interval", n.opts.BlockInterval)
	defer logger.Debug("leave block loop")

	ticker := time.NewTicker(n.opts.BlockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			n.discard(ctx.Err())
			return nil
		case <-ticker.C:
			if _, err := n.Produce(ctx); err != nil {
				if ctx.Err() != nil {
					n.discard(ctx.Err())
					return nil
				}
				logger.Error("failed to produce block", "err", err)
			}
		}
	}
}

// Produce builds and commits the next block.
func (n *Node) Produce(ctx context.Context) (*Block, error) {
	parent := n.head.Load()
	if parent == nil {
		return nil, errNotBootstrapped
	}
	head := &Head{
		Number:    parent.Number + 1,
		ParentID:  parent.ID,
		Timestamp: uint64(time.Now().Unix()),
	}
	head.ID = blockID(head)

	n.beacon.Feed(parent.Number, parent.ID)

	batch := n.drain()
	receipts := make([]*Receipt, len(batch))

	block, err := n.execute(ctx, head, func(p *pool.Pool) error {
		if err := p.OnInitialize(head.Number); err != nil {
			return errors.Wrap(err, "on initialize")
		}
		for i, pd := range batch {
			receipts[i] = &Receipt{Block: head.Number, Index: i, Call: pd.x.Call}
			if err := pd.x.dispatch(p, head.Number); err != nil {
				if !isRevert(err) {
					return errors.Wrapf(err, "dispatch %s", pd.x.Call)
				}
				receipts[i].Reverted = true
				receipts[i].Error = err.Error()
			}
		}
		return nil
	})
	if err != nil {
		for _, pd := range batch {
			pd.done <- &Receipt{Block: head.Number, Call: pd.x.Call, Reverted: true, Error: err.Error()}
		}
		return nil, err
	}

	block.Receipts = receipts
	for i, pd := range batch {
		pd.done <- receipts[i]
		result := "ok"
		if receipts[i].Reverted {
			result = "reverted"
		}
		metricExtrinsics().AddWithLabel(1, map[string]string{"call": pd.x.Call, "result": result})
	}
	return block, nil
}

// execute runs fn on the state of head, archives its events and commits.
func (n *Node) execute(ctx context.Context, head *Head, fn func(p *pool.Pool) error) (*Block, error) {
	start := time.Now()

	st := state.New(n.store)
	recorder := &pool.Recorder{}
	p := n.newPool(st, recorder)

	if err := fn(p); err != nil {
		return nil, err
	}

	events := recorder.Reset()
	records, err := toRecords(events)
	if err != nil {
		return nil, err
	}

	if err := n.commit(st, head); err != nil {
		return nil, err
	}
	// the archive only ever holds events of committed blocks; state stays authoritative
	if n.eventDB != nil {
		if err := n.eventDB.Insert(ctx, head.Number, records); err != nil {
			logger.Error("failed to archive events", "number", head.Number, "err", err)
		}
	}

	block := &Block{Head: *head, Events: events}
	n.recent.Add(head.Number, block)
	n.signal.Broadcast()

	n.afterCommit(p, block)
	metricBlockDuration().Observe(time.Since(start).Milliseconds())
	logger.Debug("block committed", "number", head.Number, "id", head.ID.AbbrevString(), "events", len(events))
	return block, nil
}

func (n *Node) commit(st *state.State, head *Head) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	if err := st.Stage().Commit(); err != nil {
		return errors.Wrap(err, "commit state")
	}
	if err := n.saveHead(head); err != nil {
		return err
	}
	n.head.Store(head)
	n.health.NewBlock(head.Number, head.ID)
	return nil
}

// afterCommit forwards era changes to the session layer and updates metrics.
func (n *Node) afterCommit(p *pool.Pool, block *Block) {
	for _, ev := range block.Events {
		switch e := ev.(type) {
		case pool.EraStarted:
			if e.Era > 0 {
				p.OnSessionEnd(e.Era - 1)
			}
			p.OnSessionStart(e.Era)
			metricCurrentEra().Set(int64(e.Era))
			logger.Info("era started", "era", e.Era, "block", e.Block,
				"stake", len(e.Stake), "parliamentary", len(e.Parliamentary), "merit", len(e.Merit))
		case pool.RotationFailed:
			metricRotationFailures().Add(1)
		}
	}

	if size, err := p.PoolSize(); err == nil {
		metricPoolSize().Set(int64(size))
	} else {
		logger.Warn("failed to read pool size", "err", err)
	}

	if s, ok := n.scores.(interface{ Stats() *cache.Stats }); ok {
		stats := s.Stats()
		if changed, hit, miss := stats.Stats(); changed {
			logger.Debug("score cache stats updated", "hit", hit, "miss", miss)
		}
		metricScoreCacheHitRate().Set(int64(stats.HitRate() * 100))
	}
}

// drain takes everything queued so far without blocking.
func (n *Node) drain() []*pending {
	var batch []*pending
	for {
		select {
		case pd := <-n.queue:
			batch = append(batch, pd)
		default:
			return batch
		}
	}
}

func (n *Node) discard(cause error) {
	for _, pd := range n.drain() {
		pd.done <- &Receipt{Call: pd.x.Call, Reverted: true, Error: cause.Error()}
	}
}

func blockID(h *Head) pez.Bytes32 {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], h.Number)
	binary.BigEndian.PutUint64(b[4:], h.Timestamp)
	return pez.Blake2b(h.ParentID[:], b[:])
}
