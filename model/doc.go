// Package model defines the boundary types shared by the contract, the state
// store and the transports.
//
// Sapience levels are ordinals internally; their display names appear only
// when a value crosses a JSON or RPC boundary.
package model
