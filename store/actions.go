package store

import (
	"math/big"
	"strings"

	"charm-approve-tui/config"
)

// Action is a state transition
type Action interface {
	reduce(State) State
}

// UpdateCustomNonce stores the user's nonce override. Blank clears it.
type UpdateCustomNonce struct{ Value string }

func (a UpdateCustomNonce) reduce(s State) State {
	s.CustomNonceValue = strings.TrimSpace(a.Value)
	return s
}

// SetNextNonce records the nonce suggested by the node. Nil means unknown.
type SetNextNonce struct{ Nonce *uint64 }

func (a SetNextNonce) reduce(s State) State {
	if a.Nonce == nil {
		s.NextNonce = nil
		return s
	}
	n := *a.Nonce
	s.NextNonce = &n
	return s
}

// ShowModal opens a named modal
type ShowModal struct{ Name string }

func (a ShowModal) reduce(s State) State {
	s.Modal = a.Name
	return s
}

// HideModal closes whatever modal is open
type HideModal struct{}

func (HideModal) reduce(s State) State {
	s.Modal = ModalNone
	return s
}

// Navigate switches page. Home counts as an overview page.
type Navigate struct{ Page config.Page }

func (a Navigate) reduce(s State) State {
	if a.Page == config.PageHome {
		s.MostRecentOverviewPage = a.Page
	}
	s.Page = a.Page
	s.Modal = ModalNone
	return s
}

// SetChain records the connected chain
type SetChain struct{ ChainID *big.Int }

func (a SetChain) reduce(s State) State {
	if a.ChainID == nil {
		s.ChainID = nil
		return s
	}
	s.ChainID = new(big.Int).Set(a.ChainID)
	return s
}

// SetSubjectMetadata records name and icon for an origin
type SetSubjectMetadata struct {
	Origin  string
	Subject Subject
}

func (a SetSubjectMetadata) reduce(s State) State {
	subjects := make(map[string]Subject, len(s.Subjects)+1)
	for k, v := range s.Subjects {
		subjects[k] = v
	}
	subjects[a.Origin] = a.Subject
	s.Subjects = subjects
	return s
}

// SetUseNonceField toggles the nonce line on confirmation screens
type SetUseNonceField struct{ Enabled bool }

func (a SetUseNonceField) reduce(s State) State {
	s.UseNonceField = a.Enabled
	return s
}
