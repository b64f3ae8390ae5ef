package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshot_Imbiber_JSONShape(t *testing.T) {
	rec := Imbiber{
		Address:   "wasm1imbiber",
		Species:   Species{Name: "Cyborg", SapienceLevel: SapienceMedium},
		Name:      "Seven",
		CyborgDNA: []byte{2, 8, 5},
	}

	b, err := json.MarshalIndent(rec, "", "  ")
	require.NoError(t, err)

	const want = "{\n" +
		"  \"address\": \"wasm1imbiber\",\n" +
		"  \"species\": {\n" +
		"    \"name\": \"Cyborg\",\n" +
		"    \"sapience_level\": \"Medium\"\n" +
		"  },\n" +
		"  \"name\": \"Seven\",\n" +
		"  \"cyborg_dna\": \"AggF\"\n" +
		"}"
	require.Equal(t, want, string(b))
}

func TestSapienceLevel_OrdinalOrder(t *testing.T) {
	levels := []SapienceLevel{SapienceNone, SapienceLow, SapienceMedium, SapienceHigh}
	for i, l := range levels {
		require.Equal(t, uint8(i), l.Ordinal())
		require.True(t, l.Valid())
		for j, other := range levels {
			require.Equal(t, i >= j, l.AtLeast(other), "%s AtLeast %s", l, other)
		}
	}
	require.False(t, SapienceLevel(4).Valid())
}

func TestSapienceLevel_TextRoundTrip(t *testing.T) {
	var sp Species
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Raven","sapience_level":"Medium"}`), &sp))
	require.Equal(t, SapienceMedium, sp.SapienceLevel)

	err := json.Unmarshal([]byte(`{"name":"Raven","sapience_level":"medium"}`), &sp)
	require.Error(t, err)

	_, err = SapienceLevel(9).MarshalText()
	require.Error(t, err)
}

func TestErrorKinds(t *testing.T) {
	cause := NewError(KindStorage, "disk")
	err := WrapError(KindNotRegistered, "no record", cause)

	require.True(t, IsKind(err, KindNotRegistered))
	require.Equal(t, KindNotRegistered, KindOf(err))
	require.ErrorIs(t, err, cause)
	require.Equal(t, Kind(""), KindOf(nil))
	require.Contains(t, err.Error(), "NotRegistered: no record")
}

func TestCoinString(t *testing.T) {
	require.Equal(t, "1PORT", NewCoin(1, "PORT").String())
	require.Equal(t, "0PORT", Coin{Denom: "PORT"}.String())
}

func TestParseCoin(t *testing.T) {
	c, err := ParseCoin("12PORT")
	require.NoError(t, err)
	require.Equal(t, "PORT", c.Denom)
	require.Equal(t, "12PORT", c.String())

	for _, bad := range []string{"", "PORT", "12", "-1PORT"} {
		_, err := ParseCoin(bad)
		require.True(t, IsKind(err, KindInvalidRequest), "%q: got %v", bad, err)
	}
}
