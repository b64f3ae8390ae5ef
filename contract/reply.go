package contract

import (
	"fmt"

	"xdao.co/jumpring/model"
)

// HandleReply applies the follow-up policy for the outcome of a dispatched
// SubMsg. Success is a no-op. A failed authority notification surfaces as
// DownstreamRejected; nothing is rolled back or retried, so the swig and the
// record written by the registration stay in place.
func HandleReply(msg Reply) (Response, error) {
	if msg.ID != ReplyNotify {
		return Response{}, model.NewError(model.KindInvalidRequest, fmt.Sprintf("unknown reply id %d", msg.ID))
	}
	if msg.OK() {
		return Response{}, nil
	}
	return Response{}, model.NewError(model.KindDownstreamRejected, "authority rejected notification: "+msg.Error)
}
