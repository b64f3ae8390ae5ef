package contract

import (
	"context"

	"xdao.co/jumpring/model"
	"xdao.co/jumpring/state"
)

const (
	// DefaultSwigs is the registration budget granted at instantiation.
	DefaultSwigs uint8 = 3

	// DefaultAuthority is the fixed address notified of every registration.
	DefaultAuthority model.Identity = "wasm_secret_address_do_not_reveal_to_anyone"

	// JumpFeeDenom is the denomination a traveler must pay the jump fee in.
	JumpFeeDenom = "PORT"

	// ReplyNotify correlates the authority notification with its Reply.
	ReplyNotify uint64 = 1
)

// JumpFee is the minimum payment attached to StepThroughJumpRing.
func JumpFee() model.Coin { return model.NewCoin(1, JumpFeeDenom) }

// Env describes the contract instance executing a command.
type Env struct {
	Contract  model.Identity
	Authority model.Identity
}

// MessageInfo describes who sent a command and what funds came with it.
type MessageInfo struct {
	Sender model.Identity
	Funds  []model.Coin
}

// Querier answers synchronous read-only questions of other contracts.
type Querier interface {
	// MinimumSapience returns the lowest sapience level portal admits.
	MinimumSapience(ctx context.Context, portal model.Identity) (model.SapienceLevel, error)
}

// Deps is the explicit handle a transition gets on the outside world.
type Deps struct {
	Storage state.Storage
	Querier Querier
}

func (e Env) authority() model.Identity {
	if e.Authority.Empty() {
		return DefaultAuthority
	}
	return e.Authority
}
