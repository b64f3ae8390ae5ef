package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Both services use protobuf well-known types so no protoc/codegen step is
// needed. Proto definitions: portal.proto and authority.proto.

const (
	portalService    = "jumpring.portal.v1.Portal"
	authorityService = "jumpring.authority.v1.Authority"

	methodMinimumSapience = "/" + portalService + "/MinimumSapience"
	methodJumpRingTravel  = "/" + portalService + "/JumpRingTravel"
	methodSnitch          = "/" + authorityService + "/Snitch"
)

// PortalServer is the server API for the Portal service.
type PortalServer interface {
	// MinimumSapience returns the display name of the lowest admitted level.
	MinimumSapience(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	// JumpRingTravel moves the calling contract's traveler to the identity
	// in the request. The caller identity travels in SenderMetadataKey.
	JumpRingTravel(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// UnimplementedPortalServer can be embedded to have forward compatible implementations.
type UnimplementedPortalServer struct{}

func (UnimplementedPortalServer) MinimumSapience(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method MinimumSapience not implemented")
}
func (UnimplementedPortalServer) JumpRingTravel(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method JumpRingTravel not implemented")
}

// RegisterPortalServer registers the Portal service on a gRPC server.
func RegisterPortalServer(s grpc.ServiceRegistrar, srv PortalServer) {
	s.RegisterService(&Portal_ServiceDesc, srv)
}

// AuthorityServer is the server API for the Authority service.
type AuthorityServer interface {
	// Snitch records a registration. The struct carries address, name and a
	// nested species object.
	Snitch(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

// UnimplementedAuthorityServer can be embedded to have forward compatible implementations.
type UnimplementedAuthorityServer struct{}

func (UnimplementedAuthorityServer) Snitch(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Snitch not implemented")
}

// RegisterAuthorityServer registers the Authority service on a gRPC server.
func RegisterAuthorityServer(s grpc.ServiceRegistrar, srv AuthorityServer) {
	s.RegisterService(&Authority_ServiceDesc, srv)
}

// PortalClient is the client API for the Portal service.
type PortalClient interface {
	MinimumSapience(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	JumpRingTravel(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type portalClient struct{ cc grpc.ClientConnInterface }

func NewPortalClient(cc grpc.ClientConnInterface) PortalClient { return &portalClient{cc: cc} }

func (c *portalClient) MinimumSapience(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, methodMinimumSapience, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *portalClient) JumpRingTravel(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, methodJumpRingTravel, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AuthorityClient is the client API for the Authority service.
type AuthorityClient interface {
	Snitch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type authorityClient struct{ cc grpc.ClientConnInterface }

func NewAuthorityClient(cc grpc.ClientConnInterface) AuthorityClient {
	return &authorityClient{cc: cc}
}

func (c *authorityClient) Snitch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, methodSnitch, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _Portal_MinimumSapience_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PortalServer).MinimumSapience(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodMinimumSapience}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PortalServer).MinimumSapience(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Portal_JumpRingTravel_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PortalServer).JumpRingTravel(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodJumpRingTravel}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PortalServer).JumpRingTravel(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Authority_Snitch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthorityServer).Snitch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodSnitch}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AuthorityServer).Snitch(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Portal_ServiceDesc is the grpc.ServiceDesc for the Portal service.
var Portal_ServiceDesc = grpc.ServiceDesc{
	ServiceName: portalService,
	HandlerType: (*PortalServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "MinimumSapience", Handler: _Portal_MinimumSapience_Handler},
		{MethodName: "JumpRingTravel", Handler: _Portal_JumpRingTravel_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "portal.proto",
}

// Authority_ServiceDesc is the grpc.ServiceDesc for the Authority service.
var Authority_ServiceDesc = grpc.ServiceDesc{
	ServiceName: authorityService,
	HandlerType: (*AuthorityServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Snitch", Handler: _Authority_Snitch_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "authority.proto",
}
