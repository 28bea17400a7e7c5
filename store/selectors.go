package store

import (
	"math/big"
	"strconv"

	"charm-approve-tui/config"
)

// NextSuggestedNonce returns a copy of the node's next nonce, or nil
func NextSuggestedNonce(s State) *uint64 {
	if s.NextNonce == nil {
		return nil
	}
	n := *s.NextNonce
	return &n
}

// CustomNonce parses the custom nonce value. Unparseable input counts as no
// custom nonce.
func CustomNonce(s State) *uint64 {
	if s.CustomNonceValue == "" {
		return nil
	}
	n, err := strconv.ParseUint(s.CustomNonceValue, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// CustomNonceValue returns the custom nonce as typed
func CustomNonceValue(s State) string { return s.CustomNonceValue }

// UseNonceField reports whether the nonce row is shown
func UseNonceField(s State) bool { return s.UseNonceField }

// CurrentModal returns the open modal, or ModalNone
func CurrentModal(s State) string { return s.Modal }

// CurrentPage returns the page on screen
func CurrentPage(s State) config.Page { return s.Page }

// MostRecentOverviewPage is where cancel and reject navigate back to
func MostRecentOverviewPage(s State) config.Page { return s.MostRecentOverviewPage }

// NativeCurrency returns the fee currency symbol, ETH when unset
func NativeCurrency(s State) string {
	if s.NativeCurrency == "" {
		return "ETH"
	}
	return s.NativeCurrency
}

// CurrentChainID returns a copy of the connected chain id, or nil
func CurrentChainID(s State) *big.Int {
	if s.ChainID == nil {
		return nil
	}
	return new(big.Int).Set(s.ChainID)
}

// SubjectMetadata returns what is known about origin, or a zero Subject
func SubjectMetadata(origin string) func(State) Subject {
	return func(s State) Subject {
		return s.Subjects[origin]
	}
}

// SubjectIcon returns the icon URL registered for origin, or ""
func SubjectIcon(origin string) func(State) string {
	return func(s State) string {
		return s.Subjects[origin].IconURL
	}
}

// ExplorerAddressURL links an address on the configured block explorer
func ExplorerAddressURL(addr string) func(State) string {
	return func(s State) string {
		if s.ExplorerURL == "" || addr == "" {
			return ""
		}
		return s.ExplorerURL + "/address/" + addr
	}
}
