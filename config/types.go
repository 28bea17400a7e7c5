package config

// Page identifies the screen the app is showing
type Page int

const (
	PageHome Page = iota
	PageConfirmApprove
	PageCreateNFT
)

func (p Page) String() string {
	switch p {
	case PageConfirmApprove:
		return "confirm-approve"
	case PageCreateNFT:
		return "create-nft"
	default:
		return "home"
	}
}

// TxParams are the fields of a pending transaction request
type TxParams struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Data  string `json:"data"`
	Gas   string `json:"gas,omitempty"`
	Value string `json:"value,omitempty"`
}

// ApprovalRequest is a pending approval handed to the app by a dApp bridge
type ApprovalRequest struct {
	ID       string   `json:"id"`
	Origin   string   `json:"origin"`
	TxParams TxParams `json:"txParams"`
}

// Subject is display metadata for a requesting site
type Subject struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}
