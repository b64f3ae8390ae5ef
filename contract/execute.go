package contract

import (
	"context"

	"xdao.co/jumpring/model"
)

// Execute routes an inbound command to its handler.
func Execute(ctx context.Context, deps Deps, env Env, info MessageInfo, msg ExecuteMsg) (Response, error) {
	switch {
	case msg.ImbibePotion != nil && msg.StepThroughJumpRing == nil:
		m := msg.ImbibePotion
		return ImbibePotionHandler(ctx, deps, env, info, m.Name, m.Species)
	case msg.StepThroughJumpRing != nil && msg.ImbibePotion == nil:
		m := msg.StepThroughJumpRing
		return StepThroughJumpRingHandler(ctx, deps, info, m.Portal, m.Destination, m.Traveler)
	default:
		return Response{}, model.NewError(model.KindInvalidRequest, "execute message must set exactly one command")
	}
}

// Name returns the command name used in logs and metrics.
func (m ExecuteMsg) Name() string {
	switch {
	case m.ImbibePotion != nil:
		return "imbibe_potion"
	case m.StepThroughJumpRing != nil:
		return "step_through_jump_ring"
	default:
		return "unknown"
	}
}
