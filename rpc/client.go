package rpc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/jumpring/contract"
	"xdao.co/jumpring/dispatch"
	"xdao.co/jumpring/model"
)

// DialOptions configures the connections a Directory opens.
type DialOptions struct {
	// Timeout applies per RPC when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int

	// Extra is appended to the default dial options.
	Extra []grpc.DialOption
}

// Directory resolves peer identities to gRPC targets. It answers portal
// queries for the contract and delivers outbound execute calls for the
// dispatcher. Connections are created on first use and shared by identity
// target.
type Directory struct {
	targets map[model.Identity]string
	opts    DialOptions

	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

var (
	_ contract.Querier   = (*Directory)(nil)
	_ dispatch.Transport = (*Directory)(nil)
)

func NewDirectory(targets map[model.Identity]string, opts DialOptions) *Directory {
	t := make(map[model.Identity]string, len(targets))
	for id, target := range targets {
		t[id] = target
	}
	return &Directory{targets: t, opts: opts, conns: map[string]*grpc.ClientConn{}}
}

func (d *Directory) conn(id model.Identity) (*grpc.ClientConn, error) {
	target, ok := d.targets[id]
	if !ok || target == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPeer, id)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if cc, ok := d.conns[target]; ok {
		return cc, nil
	}

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if d.opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(d.opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(d.opts.MaxMsgBytes),
			),
		)
	}
	dialOpts = append(dialOpts, d.opts.Extra...)

	cc, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("rpc: dial %s (%s): %w", id, target, err)
	}
	d.conns[target] = cc
	return cc, nil
}

// MinimumSapience asks portal for its admission minimum.
func (d *Directory) MinimumSapience(ctx context.Context, portal model.Identity) (model.SapienceLevel, error) {
	cc, err := d.conn(portal)
	if err != nil {
		return model.SapienceNone, err
	}
	ctx, cancel := d.ctx(ctx)
	defer cancel()

	reply, err := NewPortalClient(cc).MinimumSapience(ctx, &emptypb.Empty{})
	if err != nil {
		return model.SapienceNone, mapRPC(err)
	}
	return model.ParseSapienceLevel(reply.GetValue())
}

// Deliver performs one outbound execute call. Funds cannot be forwarded over
// this transport.
func (d *Directory) Deliver(ctx context.Context, sender model.Identity, msg contract.WasmExecute) error {
	if len(msg.Funds) > 0 {
		return model.NewError(model.KindInvalidRequest, "rpc transport cannot forward funds")
	}
	cc, err := d.conn(msg.Contract)
	if err != nil {
		return err
	}
	ctx, cancel := d.ctx(withSender(ctx, sender))
	defer cancel()

	switch {
	case msg.Msg.JumpRingTravel != nil:
		_, err = NewPortalClient(cc).JumpRingTravel(ctx, wrapperspb.String(msg.Msg.JumpRingTravel.To.String()))
	case msg.Msg.Snitch != nil:
		in, encErr := snitchToStruct(*msg.Msg.Snitch)
		if encErr != nil {
			return encErr
		}
		_, err = NewAuthorityClient(cc).Snitch(ctx, in)
	default:
		return model.NewError(model.KindInvalidRequest, "execute message has no payload")
	}
	return mapRPC(err)
}

// Close closes every connection opened so far.
func (d *Directory) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var err error
	for target, cc := range d.conns {
		err = multierr.Append(err, cc.Close())
		delete(d.conns, target)
	}
	return err
}

func (d *Directory) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if d.opts.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d.opts.Timeout)
}
