// Package rpc carries the contract's cross-contract calls over gRPC.
//
// A portal serves jumpring.portal.v1.Portal (MinimumSapience, JumpRingTravel)
// and the authority serves jumpring.authority.v1.Authority (Snitch). The
// Directory maps peer identities to dial targets and implements both the
// contract's Querier and the dispatcher's Transport.
package rpc
