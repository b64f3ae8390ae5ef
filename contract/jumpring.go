package contract

import (
	"context"

	"xdao.co/jumpring/model"
)

// StepThroughJumpRingHandler gates a transfer through portal.
//
// Checks run in order and the first failure wins: sapience against the
// portal's minimum, then the cyberdized profile flag, then the jump fee. The
// handler never writes state; on success its only effect is one execute call
// to portal carrying no funds.
func StepThroughJumpRingHandler(ctx context.Context, deps Deps, info MessageInfo, portal, destination model.Identity, traveler model.Traveler) (Response, error) {
	if err := requireSender(info); err != nil {
		return Response{}, err
	}
	if portal.Empty() || destination.Empty() {
		return Response{}, model.NewError(model.KindInvalidRequest, "portal and destination are required")
	}

	if err := CheckSapienceLevel(ctx, deps, info.Sender, portal); err != nil {
		return Response{}, err
	}

	if !traveler.Cyberdized {
		return Response{}, model.NewError(model.KindIneligibleProfile, "only cyberdized travelers may use the jump ring")
	}

	fee := JumpFee()
	if err := CheckSentRequiredPayment(info.Funds, &fee); err != nil {
		return Response{}, err
	}

	travel := SubMsg{
		ReplyOn: ReplyNever,
		Msg: WasmExecute{
			Contract: portal,
			Msg:      PortalExecuteMsg{JumpRingTravel: &JumpRingTravel{To: destination}},
			Funds:    []model.Coin{},
		},
	}
	resp := Response{Messages: []SubMsg{travel}}
	return resp.
		addAttribute("action", "step_through_jumpring").
		addAttribute("portal", portal.String()).
		addAttribute("destination", destination.String()), nil
}
