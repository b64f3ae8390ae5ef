// Package node runs the contract: one command at a time, each against its
// own state transaction, with outbound messages handed to the dispatcher
// only after the transaction commits.
package node

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/multierr"

	"xdao.co/jumpring/contract"
	"xdao.co/jumpring/dispatch"
	"xdao.co/jumpring/metrics"
	"xdao.co/jumpring/model"
	"xdao.co/jumpring/state"
	"xdao.co/jumpring/storage"
)

var log = logging.Logger("jumpring/node")

var errNoTransport = errors.New("node: no transport configured")

// Options configures a Node.
type Options struct {
	// Contract is the identity the node executes as and sends from.
	Contract model.Identity
	// Authority overrides contract.DefaultAuthority when set.
	Authority model.Identity

	Querier         contract.Querier
	Transport       dispatch.Transport
	DispatchTimeout time.Duration

	// Metrics is optional.
	Metrics *metrics.Metrics
}

// Node owns a state store and the dispatcher for its outbound messages.
type Node struct {
	mu      sync.Mutex
	store   *state.Store
	env     contract.Env
	querier contract.Querier
	metrics *metrics.Metrics

	disp      *dispatch.Dispatcher
	replyDone chan struct{}
	replyMu   sync.Mutex
	replyErrs []error

	drainOnce sync.Once
	drainErr  error
}

// New starts a node over store. The node takes ownership of store.
func New(ctx context.Context, store *state.Store, opts Options) (*Node, error) {
	if store == nil {
		return nil, storage.ErrNoBackend
	}
	if opts.Contract.Empty() {
		return nil, model.NewError(model.KindInvalidRequest, "node: contract identity is required")
	}
	transport := opts.Transport
	if transport == nil {
		transport = noTransport{}
	}

	n := &Node{
		store:     store,
		env:       contract.Env{Contract: opts.Contract, Authority: opts.Authority},
		querier:   opts.Querier,
		metrics:   opts.Metrics,
		replyDone: make(chan struct{}),
	}
	n.disp = dispatch.New(ctx, transport, dispatch.Options{
		Timeout: opts.DispatchTimeout,
		Observe: func(_ dispatch.Envelope, err error) { n.metrics.ObserveOutbound(err) },
	})
	go n.replyLoop()
	return n, nil
}

// Instantiate creates the contract config.
func (n *Node) Instantiate(ctx context.Context, info contract.MessageInfo, msg contract.InstantiateMsg) (contract.Response, error) {
	return n.transition(ctx, "instantiate", func(deps contract.Deps) (contract.Response, error) {
		return contract.Instantiate(ctx, deps, info, msg)
	})
}

// Execute runs one command. On error no state is written and nothing is
// dispatched.
func (n *Node) Execute(ctx context.Context, info contract.MessageInfo, msg contract.ExecuteMsg) (contract.Response, error) {
	return n.transition(ctx, msg.Name(), func(deps contract.Deps) (contract.Response, error) {
		return contract.Execute(ctx, deps, n.env, info, msg)
	})
}

// Query answers a read-only request against committed state.
func (n *Node) Query(ctx context.Context, msg contract.QueryMsg) (any, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return contract.Query(ctx, n.store.View(), msg)
}

// Root returns the current state root.
func (n *Node) Root(ctx context.Context) (cid.Cid, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.store.Root(ctx)
}

func (n *Node) transition(ctx context.Context, command string, fn func(contract.Deps) (contract.Response, error)) (contract.Response, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	txn := n.store.Begin()
	resp, err := fn(contract.Deps{Storage: txn, Querier: n.querier})
	if err != nil {
		txn.Discard()
		n.metrics.ObserveCommand(command, string(model.KindOf(err)))
		log.Infow("command rejected", "command", command, "kind", model.KindOf(err), "error", err)
		return contract.Response{}, err
	}
	writes := len(txn.Writes())
	if err := txn.Commit(ctx); err != nil {
		n.metrics.ObserveCommand(command, string(model.KindStorage))
		log.Errorw("commit failed", "command", command, "error", err)
		return contract.Response{}, model.WrapError(model.KindStorage, "commit", err)
	}
	n.metrics.ObserveCommand(command, "")
	n.updateSwigs(ctx)
	log.Infow("command applied", "command", command, "writes", writes, "messages", len(resp.Messages))

	if len(resp.Messages) > 0 {
		// The state is committed, so a caller cancelling now must not drop
		// the messages that go with it.
		ids, err := n.disp.Submit(context.WithoutCancel(ctx), n.env.Contract, resp.Messages)
		if err != nil {
			log.Errorw("dispatch after commit failed", "command", command, "queued", len(ids), "error", err)
			for _, m := range resp.Messages[len(ids):] {
				n.metrics.ObserveOutbound(err)
				if m.ReplyOn.Wants(false) {
					n.handleReply(contract.Reply{ID: m.ID, Error: err.Error()})
				}
			}
			return resp, err
		}
	}
	return resp, nil
}

func (n *Node) updateSwigs(ctx context.Context) {
	cfg, err := n.store.View().LoadConfig(ctx)
	if err != nil {
		return
	}
	n.metrics.SetSwigs(cfg.Swigs)
}

func (n *Node) replyLoop() {
	defer close(n.replyDone)
	for r := range n.disp.Replies() {
		n.handleReply(r)
	}
}

// handleReply writes no state, so it does not take the command lock.
func (n *Node) handleReply(r contract.Reply) {
	_, err := contract.HandleReply(r)
	if err == nil {
		log.Debugw("reply handled", "reply_id", r.ID)
		return
	}
	n.replyMu.Lock()
	n.replyErrs = append(n.replyErrs, err)
	n.replyMu.Unlock()
	if model.IsKind(err, model.KindDownstreamRejected) {
		n.metrics.ObserveRejected()
	}
	log.Warnw("reply handled with error", "reply_id", r.ID, "error", err)
}

// Drain stops accepting commands that would dispatch, waits for every queued
// delivery and reply, and returns the errors the reply handler raised.
//
// A command that commits after Drain keeps its state writes, but its
// messages can no longer be queued. Each one is counted as a failed
// delivery and, when it asked for failure replies, handled as one; the
// command itself returns dispatch.ErrClosed.
func (n *Node) Drain() error {
	n.drainOnce.Do(func() {
		_ = n.disp.Close()
		<-n.replyDone
		n.replyMu.Lock()
		n.drainErr = multierr.Combine(n.replyErrs...)
		n.replyMu.Unlock()
	})
	return n.drainErr
}

// Close drains the node and closes its store. Reply errors are not part of
// the result; use Drain to observe them.
func (n *Node) Close() error {
	_ = n.Drain()
	return n.store.Close()
}

type noTransport struct{}

func (noTransport) Deliver(context.Context, model.Identity, contract.WasmExecute) error {
	return errNoTransport
}
