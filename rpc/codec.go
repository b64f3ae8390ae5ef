package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"xdao.co/jumpring/contract"
	"xdao.co/jumpring/model"
)

// SenderMetadataKey carries the identity of the calling contract.
const SenderMetadataKey = "x-jumpring-sender"

func withSender(ctx context.Context, sender model.Identity) context.Context {
	return metadata.AppendToOutgoingContext(ctx, SenderMetadataKey, sender.String())
}

func senderFrom(ctx context.Context) (model.Identity, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", model.NewError(model.KindInvalidRequest, "missing request metadata")
	}
	vals := md.Get(SenderMetadataKey)
	if len(vals) == 0 || vals[0] == "" {
		return "", model.NewError(model.KindInvalidRequest, "missing "+SenderMetadataKey)
	}
	return model.Identity(vals[0]), nil
}

func snitchToStruct(s contract.Snitch) (*structpb.Struct, error) {
	level, err := s.Species.SapienceLevel.MarshalText()
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(map[string]any{
		"address": s.Address.String(),
		"name":    s.Name,
		"species": map[string]any{
			"name":           s.Species.Name,
			"sapience_level": string(level),
		},
	})
}

func snitchFromStruct(st *structpb.Struct) (contract.Snitch, error) {
	var s contract.Snitch
	fields := st.GetFields()

	addr := fields["address"].GetStringValue()
	if addr == "" {
		return s, model.NewError(model.KindInvalidRequest, "snitch: address is required")
	}
	s.Address = model.Identity(addr)
	s.Name = fields["name"].GetStringValue()

	species := fields["species"].GetStructValue().GetFields()
	s.Species.Name = species["name"].GetStringValue()
	level, err := model.ParseSapienceLevel(species["sapience_level"].GetStringValue())
	if err != nil {
		return s, fmt.Errorf("snitch: %w", err)
	}
	s.Species.SapienceLevel = level
	return s, nil
}
