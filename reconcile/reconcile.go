// Package reconcile keeps the editable fields of a confirmation screen in
// step with upstream suggestions that keep changing while the user types.
//
// Nothing here is safe for concurrent use. The owner (the bubbletea model)
// is the only writer.
package reconcile

import (
	"fmt"

	"charm-approve-tui/approval"
)

// FormState is the locally owned, user-editable part of the screen
type FormState struct {
	// CustomAmount is "" until the first upstream amount or user edit
	CustomAmount string
	CustomNonce  *uint64
	Warning      string
}

// UpstreamSnapshot is what the collaborators currently suggest
type UpstreamSnapshot struct {
	SuggestedAmount   string
	SuggestedNonce    *uint64
	IsContractAddress bool
}

// Reconciler merges upstream updates into FormState without clobbering
// user edits.
type Reconciler struct {
	form FormState

	prevAmount      string
	prevNextNonce   *uint64
	prevCustomNonce *uint64

	Contract ContractCheck
}

// New returns a reconciler that remembers initialAmount as the last upstream
// amount. Pass "" when nothing is known yet.
func New(initialAmount string) *Reconciler {
	return &Reconciler{prevAmount: initialAmount}
}

// Form returns a copy of the current form state
func (r *Reconciler) Form() FormState {
	f := r.form
	f.CustomNonce = copyNonce(r.form.CustomNonce)
	return f
}

// Upstream returns the last observed upstream values
func (r *Reconciler) Upstream() UpstreamSnapshot {
	return UpstreamSnapshot{
		SuggestedAmount:   r.prevAmount,
		SuggestedNonce:    copyNonce(r.prevNextNonce),
		IsContractAddress: r.Contract.IsContract(),
	}
}

// OnUpstreamAmountChanged follows newAmount unless the user has diverged
// from the previous suggestion. The previous upstream amount is always
// replaced.
func (r *Reconciler) OnUpstreamAmountChanged(newAmount string) {
	if r.form.CustomAmount == "" || approval.SameAmount(r.form.CustomAmount, r.prevAmount) {
		r.form.CustomAmount = newAmount
	}
	r.prevAmount = newAmount
}

// SetCustomAmount records a user edit. It sticks until cleared.
func (r *Reconciler) SetCustomAmount(v string) {
	r.form.CustomAmount = v
}

// ClearCustomAmount drops the user edit and goes back to the suggestion
func (r *Reconciler) ClearCustomAmount() {
	r.form.CustomAmount = r.prevAmount
}

// Diverged reports whether the user holds an amount whose value differs
// from the current suggestion. "1000.0" and "1000" are the same amount.
func (r *Reconciler) Diverged() bool {
	return r.form.CustomAmount != "" && !approval.SameAmount(r.form.CustomAmount, r.prevAmount)
}

// OnNonceChanged recomputes the nonce warning when either input differs from
// what was seen last time. It returns true when it recomputed.
func (r *Reconciler) OnNonceChanged(nextNonce, customNonce *uint64) bool {
	if sameNonce(r.prevNextNonce, nextNonce) && sameNonce(r.prevCustomNonce, customNonce) {
		return false
	}
	r.prevNextNonce = copyNonce(nextNonce)
	r.prevCustomNonce = copyNonce(customNonce)
	r.form.CustomNonce = copyNonce(customNonce)
	r.form.Warning = NonceWarning(nextNonce, customNonce)
	return true
}

// NonceWarning is the warning for a custom nonce above the suggested one.
// An absent suggestion never warns.
func NonceWarning(nextNonce, customNonce *uint64) string {
	if nextNonce == nil || customNonce == nil {
		return ""
	}
	if *customNonce > *nextNonce {
		return fmt.Sprintf("Nonce is higher than suggested nonce of %d", *nextNonce)
	}
	return ""
}

func sameNonce(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyNonce(n *uint64) *uint64 {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
