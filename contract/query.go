package contract

import (
	"context"

	"xdao.co/jumpring/model"
	"xdao.co/jumpring/state"
	"xdao.co/jumpring/storage"
)

// NumberOfSwigsQuery returns the remaining registration budget.
func NumberOfSwigsQuery(ctx context.Context, r state.Reader) (SwigResponse, error) {
	cfg, err := r.LoadConfig(ctx)
	if err != nil {
		return SwigResponse{}, configError(err)
	}
	return SwigResponse{Swigs: cfg.Swigs}, nil
}

// ImbiberLookup returns the record registered for addr.
func ImbiberLookup(ctx context.Context, r state.Reader, addr model.Identity) (model.Imbiber, error) {
	rec, err := r.LoadImbiber(ctx, addr)
	if err != nil {
		if storage.IsNotFound(err) {
			return model.Imbiber{}, notRegistered(addr, err)
		}
		return model.Imbiber{}, storageError("load imbiber", err)
	}
	return rec, nil
}

// Query routes a read-only request. The result is a SwigResponse or a
// model.Imbiber.
func Query(ctx context.Context, r state.Reader, msg QueryMsg) (any, error) {
	switch {
	case msg.NumberOfSwigs != nil && msg.Imbiber == nil:
		return NumberOfSwigsQuery(ctx, r)
	case msg.Imbiber != nil && msg.NumberOfSwigs == nil:
		return ImbiberLookup(ctx, r, msg.Imbiber.Address)
	default:
		return nil, model.NewError(model.KindInvalidRequest, "query message must set exactly one query")
	}
}
