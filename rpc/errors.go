package rpc

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/jumpring/model"
)

var (
	ErrUnknownPeer = errors.New("rpc: no target configured for identity")
	ErrRejected    = errors.New("rpc: rejected by peer")
	ErrUnavailable = errors.New("rpc: peer unavailable")
)

// mapRPC turns a client-side status into a package sentinel where one fits.
func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.PermissionDenied, codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.InvalidArgument:
		return model.NewError(model.KindInvalidRequest, st.Message())
	default:
		return err
	}
}

// mapErr turns a backend error into a status for the wire.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch model.KindOf(err) {
	case model.KindInvalidRequest, model.KindOutOfRange:
		return status.Error(codes.InvalidArgument, err.Error())
	case model.KindNotRegistered:
		return status.Error(codes.NotFound, err.Error())
	case model.KindIneligibleProfile, model.KindInsufficientCapability,
		model.KindInsufficientFunds, model.KindDownstreamRejected:
		return status.Error(codes.PermissionDenied, err.Error())
	case model.KindResourceExhausted:
		return status.Error(codes.ResourceExhausted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
