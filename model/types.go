package model

import (
	"fmt"
	"strings"

	"github.com/filecoin-project/go-state-types/big"
)

// Identity is an opaque actor address (a contract, a portal, a caller).
//
// Identities are compared and keyed by their raw bytes.
type Identity string

func (id Identity) String() string { return string(id) }

// Bytes returns the raw key bytes used by the registry table.
func (id Identity) Bytes() []byte { return []byte(id) }

// Empty reports whether the identity is unset.
func (id Identity) Empty() bool { return id == "" }

// SapienceLevel is an ordered capability classification.
//
// The ordinal is the only representation used for comparisons. The display
// names ("None", "Low", "Medium", "High") exist only at serialization
// boundaries through MarshalText/UnmarshalText.
type SapienceLevel uint8

const (
	SapienceNone SapienceLevel = iota
	SapienceLow
	SapienceMedium
	SapienceHigh
)

var sapienceNames = [...]string{
	SapienceNone:   "None",
	SapienceLow:    "Low",
	SapienceMedium: "Medium",
	SapienceHigh:   "High",
}

// Ordinal returns the stable integer 0..3 for the level.
func (l SapienceLevel) Ordinal() uint8 { return uint8(l) }

// Valid reports whether l is one of the four defined levels.
func (l SapienceLevel) Valid() bool { return l <= SapienceHigh }

// AtLeast reports whether l is greater than or equal to min.
func (l SapienceLevel) AtLeast(min SapienceLevel) bool { return l.Ordinal() >= min.Ordinal() }

func (l SapienceLevel) String() string {
	if !l.Valid() {
		return fmt.Sprintf("SapienceLevel(%d)", uint8(l))
	}
	return sapienceNames[l]
}

func (l SapienceLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("model: invalid sapience level %d", uint8(l))
	}
	return []byte(sapienceNames[l]), nil
}

func (l *SapienceLevel) UnmarshalText(b []byte) error {
	v, err := ParseSapienceLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseSapienceLevel maps a display name back to its level.
func ParseSapienceLevel(s string) (SapienceLevel, error) {
	for i, name := range sapienceNames {
		if name == s {
			return SapienceLevel(i), nil
		}
	}
	return SapienceNone, NewError(KindInvalidRequest, fmt.Sprintf("unknown sapience level %q", s))
}

// Species pairs a display name with a sapience level.
type Species struct {
	Name          string        `json:"name" cbor:"name"`
	SapienceLevel SapienceLevel `json:"sapience_level" cbor:"sapience_level"`
}

// Traveler is the caller-asserted profile presented at a jump ring.
type Traveler struct {
	Name       string   `json:"name"`
	Home       Identity `json:"home"`
	Species    Species  `json:"species"`
	Cyberdized bool     `json:"cyberdized"`
}

// Coin is an amount of a single denomination attached to a command.
type Coin struct {
	Denom  string  `json:"denom"`
	Amount big.Int `json:"amount"`
}

// NewCoin returns a coin of amount units of denom.
func NewCoin(amount int64, denom string) Coin {
	return Coin{Denom: denom, Amount: big.NewInt(amount)}
}

// ParseCoin parses the "<amount><denom>" form produced by Coin.String,
// for example "1PORT".
func ParseCoin(s string) (Coin, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if i <= 0 || i == len(s) {
		return Coin{}, NewError(KindInvalidRequest, fmt.Sprintf("invalid coin %q", s))
	}
	amount, err := big.FromString(s[:i])
	if err != nil {
		return Coin{}, WrapError(KindInvalidRequest, fmt.Sprintf("invalid coin amount %q", s[:i]), err)
	}
	return Coin{Denom: s[i:], Amount: amount}, nil
}

func (c Coin) String() string {
	if c.Amount.Nil() {
		return "0" + c.Denom
	}
	return c.Amount.String() + c.Denom
}

// Config is the singleton contract configuration.
type Config struct {
	Owner      Identity `json:"owner" cbor:"owner"`
	DNALength  uint     `json:"dna_length" cbor:"dna_length"`
	DNAModulus uint8    `json:"dna_modulus" cbor:"dna_modulus"`
	Swigs      uint8    `json:"swigs" cbor:"swigs"`
}

// Imbiber is the per-actor registration record, keyed by Address.
type Imbiber struct {
	Address   Identity `json:"address" cbor:"address"`
	Species   Species  `json:"species" cbor:"species"`
	Name      string   `json:"name" cbor:"name"`
	CyborgDNA []byte   `json:"cyborg_dna" cbor:"cyborg_dna"`
}
