package main

import (
	"math/big"

	"charm-approve-tui/reconcile"
	"charm-approve-tui/rpc"
	"charm-approve-tui/store"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// rpcConnectedMsg contains result of RPC connection attempt
type rpcConnectedMsg struct {
	client  *rpc.Client
	chainID *big.Int
	err     error
}

// assetDetailsMsg carries a fresh read of the token being approved
type assetDetailsMsg struct {
	d rpc.AssetDetails
}

// pollTickMsg asks for another asset and nonce refresh
type pollTickMsg struct{}

// classifyResultMsg answers one contract check. Stale tickets are dropped.
type classifyResultMsg struct {
	ticket     reconcile.Ticket
	isContract bool
	err        error
}

// nextNonceMsg contains the node's next nonce for the sender
type nextNonceMsg struct {
	nonce uint64
	err   error
}

// storeChangedMsg carries the store state after a dispatch
type storeChangedMsg struct {
	state store.State
}

// feeMsg contains the network fee estimate
type feeMsg struct {
	fee rpc.Fee
	err error
}

// packageApprovalMsg contains the EIP-681 URI for the QR panel
type packageApprovalMsg struct {
	uri    string
	custom bool
	err    error
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct {
	what string
}

// clearClipboardMsg hides the copy feedback
type clearClipboardMsg struct{}
