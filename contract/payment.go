package contract

import (
	"fmt"

	"github.com/filecoin-project/go-state-types/big"

	"xdao.co/jumpring/model"
)

// CheckSentRequiredPayment succeeds when some sent coin has the required
// denomination and at least the required amount. A nil or non-positive
// requirement is always met.
func CheckSentRequiredPayment(sent []model.Coin, required *model.Coin) error {
	if required == nil || required.Amount.Nil() || big.Cmp(required.Amount, big.Zero()) <= 0 {
		return nil
	}
	for _, c := range sent {
		if c.Denom != required.Denom || c.Amount.Nil() {
			continue
		}
		if c.Amount.GreaterThanEqual(required.Amount) {
			return nil
		}
	}
	return model.NewError(model.KindInsufficientFunds, fmt.Sprintf("at least %s is required", required))
}
