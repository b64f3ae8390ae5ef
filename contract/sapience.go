package contract

import (
	"context"
	"fmt"

	"xdao.co/jumpring/model"
	"xdao.co/jumpring/storage"
)

// CheckSapienceLevel asks portal for its admission minimum and compares it
// with the sapience level the sender registered with. Only ordinals are
// compared.
func CheckSapienceLevel(ctx context.Context, deps Deps, sender, portal model.Identity) error {
	if deps.Querier == nil {
		return model.NewError(model.KindQuery, "no querier configured")
	}
	minimum, err := deps.Querier.MinimumSapience(ctx, portal)
	if err != nil {
		return model.WrapError(model.KindQuery, fmt.Sprintf("query minimum sapience of %s", portal), err)
	}

	rec, err := deps.Storage.LoadImbiber(ctx, sender)
	if err != nil {
		if storage.IsNotFound(err) {
			return notRegistered(sender, err)
		}
		return storageError("load imbiber", err)
	}

	level := rec.Species.SapienceLevel
	if !level.AtLeast(minimum) {
		return model.NewError(model.KindInsufficientCapability,
			fmt.Sprintf("sapience %s is below the %s required by %s", level, minimum, portal))
	}
	return nil
}
