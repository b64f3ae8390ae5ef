package contract

import (
	"xdao.co/jumpring/model"
)

// InstantiateMsg carries the one-time derivation parameters.
type InstantiateMsg struct {
	DNALength  uint  `json:"dna_length"`
	DNAModulus uint8 `json:"dna_modulus"`
}

// ExecuteMsg is the inbound command. Exactly one field must be set.
type ExecuteMsg struct {
	ImbibePotion        *ImbibePotion        `json:"imbibe_potion,omitempty"`
	StepThroughJumpRing *StepThroughJumpRing `json:"step_through_jump_ring,omitempty"`
}

// ImbibePotion registers the sender as an imbiber.
type ImbibePotion struct {
	Name    string        `json:"name"`
	Species model.Species `json:"species"`
}

// StepThroughJumpRing asks portal to move the sender to destination.
type StepThroughJumpRing struct {
	Portal      model.Identity `json:"portal"`
	Destination model.Identity `json:"destination"`
	Traveler    model.Traveler `json:"traveler"`
}

// QueryMsg is the inbound read-only request. Exactly one field must be set.
type QueryMsg struct {
	NumberOfSwigs *NumberOfSwigs `json:"number_of_swigs,omitempty"`
	Imbiber       *ImbiberQuery  `json:"imbiber,omitempty"`
}

type NumberOfSwigs struct{}

type ImbiberQuery struct {
	Address model.Identity `json:"address"`
}

// SwigResponse answers NumberOfSwigs.
type SwigResponse struct {
	Swigs uint8 `json:"swigs"`
}

// PortalExecuteMsg is the payload of an outbound execute call. Exactly one
// field is set.
type PortalExecuteMsg struct {
	JumpRingTravel *JumpRingTravel `json:"jump_ring_travel,omitempty"`
	Snitch         *Snitch         `json:"snitch,omitempty"`
}

// JumpRingTravel instructs a portal to move the sender to To.
type JumpRingTravel struct {
	To model.Identity `json:"to"`
}

// Snitch notifies the authority of a new registration.
type Snitch struct {
	Address model.Identity `json:"address"`
	Name    string         `json:"name"`
	Species model.Species  `json:"species"`
}

// WasmExecute is an outbound execute call against another contract.
type WasmExecute struct {
	Contract model.Identity   `json:"contract_addr"`
	Msg      PortalExecuteMsg `json:"msg"`
	Funds    []model.Coin     `json:"funds"`
}

// ReplyOn selects which outcomes of a SubMsg are reported back via Reply.
type ReplyOn uint8

const (
	ReplyNever ReplyOn = iota
	ReplyOnSuccess
	ReplyOnError
	ReplyAlways
)

// Wants reports whether an outcome (ok or not) must be fed back to Reply.
func (r ReplyOn) Wants(ok bool) bool {
	switch r {
	case ReplyAlways:
		return true
	case ReplyOnSuccess:
		return ok
	case ReplyOnError:
		return !ok
	default:
		return false
	}
}

func (r ReplyOn) String() string {
	switch r {
	case ReplyNever:
		return "never"
	case ReplyOnSuccess:
		return "success"
	case ReplyOnError:
		return "error"
	case ReplyAlways:
		return "always"
	default:
		return "unknown"
	}
}

// SubMsg is a pending outbound request. ID correlates the eventual Reply.
type SubMsg struct {
	ID      uint64      `json:"id"`
	Msg     WasmExecute `json:"msg"`
	ReplyOn ReplyOn     `json:"reply_on"`
}

// Attribute is a key/value audit annotation on a Response.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response is everything a successful transition produces besides state
// writes: the outbound messages to dispatch, in order, and audit attributes.
type Response struct {
	Messages   []SubMsg    `json:"messages,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

func (r Response) addAttribute(key, value string) Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// Attribute returns the value of the first attribute named key.
func (r Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Reply is the asynchronous outcome of a dispatched SubMsg. An empty Error
// means the downstream call succeeded.
type Reply struct {
	ID    uint64 `json:"id"`
	Error string `json:"error,omitempty"`
}

func (r Reply) OK() bool { return r.Error == "" }
