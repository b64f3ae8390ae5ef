// Package dispatch delivers the outbound messages produced by contract
// transitions and feeds requested outcomes back as replies.
//
// A single worker delivers envelopes in submission order. Each delivery is
// attempted once; failures are never retried.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"

	"xdao.co/jumpring/contract"
	"xdao.co/jumpring/model"
)

var log = logging.Logger("jumpring/dispatch")

// ErrClosed is returned by Submit once Close has been called.
var ErrClosed = errors.New("dispatch: dispatcher is closed")

// Transport performs one outbound execute call on behalf of sender.
type Transport interface {
	Deliver(ctx context.Context, sender model.Identity, msg contract.WasmExecute) error
}

// Envelope is one queued SubMsg.
type Envelope struct {
	ID     uuid.UUID
	Sender model.Identity
	Sub    contract.SubMsg
}

type Options struct {
	// Timeout bounds each delivery when non-zero.
	Timeout time.Duration

	// QueueSize is the capacity of the submission and reply queues.
	QueueSize int

	// Observe, if set, is called by the worker after every delivery.
	Observe func(env Envelope, err error)
}

const defaultQueueSize = 64

// Dispatcher owns the delivery worker.
type Dispatcher struct {
	transport Transport
	opts      Options

	mu     sync.RWMutex
	closed bool
	queue  chan Envelope

	replies chan contract.Reply
	cancel  context.CancelFunc
	done    chan struct{}
}

// New starts a dispatcher. The worker stops when ctx is cancelled or Close
// is called.
func New(ctx context.Context, t Transport, opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	ctx, cancel := context.WithCancel(ctx)
	d := &Dispatcher{
		transport: t,
		opts:      opts,
		queue:     make(chan Envelope, opts.QueueSize),
		replies:   make(chan contract.Reply, opts.QueueSize),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go d.run(ctx)
	return d
}

// Submit queues msgs in order. It returns the envelope IDs assigned.
func (d *Dispatcher) Submit(ctx context.Context, sender model.Identity, msgs []contract.SubMsg) ([]uuid.UUID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil, ErrClosed
	}
	ids := make([]uuid.UUID, 0, len(msgs))
	for _, m := range msgs {
		env := Envelope{ID: uuid.New(), Sender: sender, Sub: m}
		select {
		case d.queue <- env:
			ids = append(ids, env.ID)
		case <-ctx.Done():
			return ids, ctx.Err()
		}
	}
	return ids, nil
}

// Replies yields the outcomes whose SubMsg asked for them. The channel is
// closed once the worker has stopped. It must be drained; a full reply queue
// stalls delivery.
func (d *Dispatcher) Replies() <-chan contract.Reply {
	return d.replies
}

// Close stops accepting submissions, delivers what is already queued and
// waits for the worker to exit.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
	d.cancel()
	return nil
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)
	defer close(d.replies)

	for env := range d.queue {
		err := d.deliver(ctx, env)
		if d.opts.Observe != nil {
			d.opts.Observe(env, err)
		}
		if err != nil {
			log.Warnw("delivery failed", "envelope", env.ID, "contract", env.Sub.Msg.Contract, "reply_id", env.Sub.ID, "error", err)
		} else {
			log.Debugw("delivered", "envelope", env.ID, "contract", env.Sub.Msg.Contract)
		}

		if !env.Sub.ReplyOn.Wants(err == nil) {
			continue
		}
		reply := contract.Reply{ID: env.Sub.ID}
		if err != nil {
			reply.Error = err.Error()
		}
		select {
		case d.replies <- reply:
		case <-ctx.Done():
			log.Errorw("dropping reply after shutdown", "envelope", env.ID, "reply_id", reply.ID)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.Timeout)
		defer cancel()
	}
	return d.transport.Deliver(ctx, env.Sender, env.Sub.Msg)
}
