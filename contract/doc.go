// Package contract implements the jump-ring contract's state transitions.
//
// Every entry point is a function of its inputs and the Deps it is handed:
// state is read and written only through state.Storage, external services are
// reached only through the Querier (synchronous reads) or by returning SubMsgs
// in the Response (asynchronous writes). Nothing here blocks on delivery of an
// outbound message; the outcome of a message that asked for a reply arrives
// later through Reply.
package contract
