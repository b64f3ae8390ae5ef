package rpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/jumpring/contract"
	"xdao.co/jumpring/model"
)

// PortalBackend is what a portal daemon implements.
type PortalBackend interface {
	MinimumSapience(ctx context.Context) (model.SapienceLevel, error)
	Travel(ctx context.Context, sender, to model.Identity) error
}

// AuthorityBackend is what an authority daemon implements.
type AuthorityBackend interface {
	Snitch(ctx context.Context, sender model.Identity, s contract.Snitch) error
}

// PortalService exposes a PortalBackend over the Portal gRPC service.
type PortalService struct {
	UnimplementedPortalServer
	Backend PortalBackend
}

func (s *PortalService) MinimumSapience(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	if s == nil || s.Backend == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing portal backend")
	}
	level, err := s.Backend.MinimumSapience(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	b, err := level.MarshalText()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.String(string(b)), nil
}

func (s *PortalService) JumpRingTravel(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if s == nil || s.Backend == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing portal backend")
	}
	sender, err := senderFrom(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	to := model.Identity(in.GetValue())
	if to.Empty() {
		return nil, status.Error(codes.InvalidArgument, "destination is required")
	}
	if err := s.Backend.Travel(ctx, sender, to); err != nil {
		return nil, mapErr(err)
	}
	return &emptypb.Empty{}, nil
}

// AuthorityService exposes an AuthorityBackend over the Authority gRPC service.
type AuthorityService struct {
	UnimplementedAuthorityServer
	Backend AuthorityBackend
}

func (s *AuthorityService) Snitch(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	if s == nil || s.Backend == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing authority backend")
	}
	sender, err := senderFrom(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	snitch, err := snitchFromStruct(in)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := s.Backend.Snitch(ctx, sender, snitch); err != nil {
		return nil, mapErr(err)
	}
	return &emptypb.Empty{}, nil
}
