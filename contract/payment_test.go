package contract

import (
	"testing"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/require"

	"xdao.co/jumpring/model"
)

func TestCheckSentRequiredPayment(t *testing.T) {
	fee := JumpFee()
	zero := model.NewCoin(0, "PORT")
	unset := model.Coin{Denom: "PORT", Amount: big.Int{}}

	cases := []struct {
		name     string
		sent     []model.Coin
		required *model.Coin
		ok       bool
	}{
		{"no requirement", nil, nil, true},
		{"zero requirement", nil, &zero, true},
		{"unset requirement", nil, &unset, true},
		{"exact", []model.Coin{model.NewCoin(1, "PORT")}, &fee, true},
		{"overpaid", []model.Coin{model.NewCoin(50, "PORT")}, &fee, true},
		{"among other denoms", []model.Coin{model.NewCoin(9, "ATOM"), model.NewCoin(1, "PORT")}, &fee, true},
		{"nothing sent", nil, &fee, false},
		{"wrong denom", []model.Coin{model.NewCoin(100, "port")}, &fee, false},
		{"too little", []model.Coin{model.NewCoin(0, "PORT")}, &fee, false},
		{"amounts are not summed", []model.Coin{model.NewCoin(1, "PO"), model.NewCoin(1, "RT")}, &fee, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckSentRequiredPayment(tc.sent, tc.required)
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.True(t, model.IsKind(err, model.KindInsufficientFunds), "got %v", err)
		})
	}
}
