package rpc

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"charm-approve-tui/approval"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Read-only token methods.
//
//	name()                     → 0x06fdde03
//	symbol()                   → 0x95d89b41
//	decimals()                 → 0x313ce567
//	balanceOf(address)         → 0x70a08231
//	supportsInterface(bytes4)  → 0x01ffc9a7
const tokenABIJSON = `[
  {"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"supportsInterface","stateMutability":"view","inputs":[{"name":"interfaceId","type":"bytes4"}],"outputs":[{"name":"","type":"bool"}]}
]`

var tokenABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(tokenABIJSON))
	if err != nil {
		panic(fmt.Sprintf("token abi: %v", err))
	}
	tokenABI = parsed
}

// ERC-165 interface ids
var (
	erc721InterfaceID  = [4]byte{0x80, 0xac, 0x58, 0xcd}
	erc1155InterfaceID = [4]byte{0xd9, 0xb6, 0x7a, 0x26}
)

// AssetDetails is everything the approval screen shows about the asset
type AssetDetails struct {
	Standard     approval.Standard
	AssetAddress string
	Name         string
	Symbol       string
	Decimals     uint8
	Balance      *big.Int
	UserBalance  string // Balance scaled by Decimals
	ToAddress    string // spender or operator
	TokenAmount  string // approved amount scaled by Decimals
	TokenID      string
	Approved     bool
	LoadedAt     time.Time
	ErrMessage   string
}

// Known reports whether any token metadata was found
func (d AssetDetails) Known() bool {
	return d.Symbol != "" || d.Name != "" || d.AssetAddress != ""
}

// LoadAssetDetails reads token metadata and decodes the approval in data
func LoadAssetDetails(b Backend, token, owner common.Address, data []byte) AssetDetails {
	return LoadAssetDetailsWithTimeout(b, token, owner, data, 12*time.Second)
}

// LoadAssetDetailsWithTimeout reads asset details with a custom timeout.
// Individual call failures leave the matching field empty.
func LoadAssetDetailsWithTimeout(b Backend, token, owner common.Address, data []byte, timeout time.Duration) AssetDetails {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	d := AssetDetails{LoadedAt: time.Now()}

	if b == nil {
		d.ErrMessage = "No RPC client (set ETH_RPC_URL)."
		return d
	}

	appr, err := approval.DecodeApproval(data)
	if err != nil {
		d.ErrMessage = "Transaction is not a token approval."
		return d
	}
	d.ToAddress = appr.Spender.Hex()
	d.Approved = appr.Approved

	d.Standard = detectStandard(ctx, b, token)

	found := false
	if s, err := callString(ctx, b, token, "symbol"); err == nil {
		d.Symbol = s
		found = true
	}
	if s, err := callString(ctx, b, token, "name"); err == nil {
		d.Name = s
		found = true
	}
	if d.Standard == approval.ERC20 {
		if dec, err := callDecimals(ctx, b, token); err == nil {
			d.Decimals = dec
		}
	}
	if bal, err := callBalance(ctx, b, token, owner); err == nil {
		d.Balance = bal
		d.UserBalance = approval.CalcTokenAmount(bal, d.Decimals)
		found = true
	}
	if found || d.Standard != approval.Unknown {
		d.AssetAddress = token.Hex()
	}

	switch {
	case appr.Method != "approve":
	case d.Standard == approval.ERC20:
		d.TokenAmount = approval.CalcTokenAmount(appr.Value, d.Decimals)
	default:
		d.TokenID = appr.Value.String()
	}

	return d
}

// detectStandard probes ERC-165 first; a token that answers decimals() is
// treated as ERC-20.
func detectStandard(ctx context.Context, b Backend, token common.Address) approval.Standard {
	if ok, err := callSupports(ctx, b, token, erc721InterfaceID); err == nil && ok {
		return approval.ERC721
	}
	if ok, err := callSupports(ctx, b, token, erc1155InterfaceID); err == nil && ok {
		return approval.ERC1155
	}
	if _, err := callDecimals(ctx, b, token); err == nil {
		return approval.ERC20
	}
	return approval.Unknown
}

func call(ctx context.Context, b Backend, token common.Address, method string, args ...interface{}) ([]interface{}, error) {
	input, err := tokenABI.Pack(method, args...)
	if err != nil {
		return nil, err
	}
	out, err := b.CallContract(ctx, ethereum.CallMsg{To: &token, Data: input}, nil)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty response", method)
	}
	vals, err := tokenABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if len(vals) != 1 {
		return nil, fmt.Errorf("%s: got %d values", method, len(vals))
	}
	return vals, nil
}

func callString(ctx context.Context, b Backend, token common.Address, method string) (string, error) {
	vals, err := call(ctx, b, token, method)
	if err != nil {
		return "", err
	}
	s, ok := vals[0].(string)
	if !ok {
		return "", fmt.Errorf("%s: unexpected type %T", method, vals[0])
	}
	return s, nil
}

func callDecimals(ctx context.Context, b Backend, token common.Address) (uint8, error) {
	vals, err := call(ctx, b, token, "decimals")
	if err != nil {
		return 0, err
	}
	dec, ok := vals[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals: unexpected type %T", vals[0])
	}
	return dec, nil
}

func callBalance(ctx context.Context, b Backend, token, owner common.Address) (*big.Int, error) {
	vals, err := call(ctx, b, token, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	bal, ok := vals[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("balanceOf: unexpected type %T", vals[0])
	}
	return bal, nil
}

func callSupports(ctx context.Context, b Backend, token common.Address, id [4]byte) (bool, error) {
	vals, err := call(ctx, b, token, "supportsInterface", id)
	if err != nil {
		return false, err
	}
	ok, isBool := vals[0].(bool)
	if !isBool {
		return false, fmt.Errorf("supportsInterface: unexpected type %T", vals[0])
	}
	return ok, nil
}
