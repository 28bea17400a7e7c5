// Package approval decodes and rewrites token approval calldata.
package approval

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Standard is the token standard of the asset being approved
type Standard string

const (
	Unknown Standard = ""
	ERC20   Standard = "ERC20"
	ERC721  Standard = "ERC721"
	ERC1155 Standard = "ERC1155"
)

// Approval methods covered by approvalABI.
//
//	approve(address,uint256)           → 0x095ea7b3
//	setApprovalForAll(address,bool)    → 0xa22cb465
const approvalABIJSON = `[
  {"type":"function","name":"approve","stateMutability":"nonpayable",
   "inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"setApprovalForAll","stateMutability":"nonpayable",
   "inputs":[{"name":"operator","type":"address"},{"name":"approved","type":"bool"}],
   "outputs":[]}
]`

var approvalABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(approvalABIJSON))
	if err != nil {
		panic(fmt.Sprintf("approval abi: %v", err))
	}
	approvalABI = parsed
}

var ErrNotApproval = errors.New("calldata is not an approval")

// Approval is a decoded approve or setApprovalForAll call
type Approval struct {
	Method  string
	Spender common.Address
	// Value is the raw amount for ERC-20 or the token id for ERC-721
	Value *big.Int
	// Approved is only meaningful for setApprovalForAll
	Approved bool
}

// DecodeApproval decodes approval calldata
func DecodeApproval(data []byte) (Approval, error) {
	if len(data) < 4 {
		return Approval{}, ErrNotApproval
	}
	method, err := approvalABI.MethodById(data[:4])
	if err != nil {
		return Approval{}, ErrNotApproval
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return Approval{}, fmt.Errorf("unpack %s: %w", method.Name, err)
	}
	if len(args) != 2 {
		return Approval{}, fmt.Errorf("unpack %s: got %d args", method.Name, len(args))
	}

	spender, ok := args[0].(common.Address)
	if !ok {
		return Approval{}, fmt.Errorf("unpack %s: bad address arg", method.Name)
	}
	a := Approval{Method: method.Name, Spender: spender}
	switch v := args[1].(type) {
	case *big.Int:
		a.Value = v
	case bool:
		a.Approved = v
	}
	return a, nil
}

// CustomTxParamsData rewrites the amount of an approve call. customAmount is
// a decimal string in token units and is scaled by decimals.
func CustomTxParamsData(data []byte, customAmount string, decimals uint8) ([]byte, error) {
	a, err := DecodeApproval(data)
	if err != nil {
		return nil, err
	}
	if a.Method != "approve" {
		return data, nil
	}
	amount, err := ToBaseUnits(customAmount, decimals)
	if err != nil {
		return nil, err
	}
	return approvalABI.Pack("approve", a.Spender, amount)
}

// EncodeApprove builds approve(spender, amount) calldata
func EncodeApprove(spender common.Address, amount *big.Int) ([]byte, error) {
	return approvalABI.Pack("approve", spender, amount)
}

// EncodeSetApprovalForAll builds setApprovalForAll(operator, approved) calldata
func EncodeSetApprovalForAll(operator common.Address, approved bool) ([]byte, error) {
	return approvalABI.Pack("setApprovalForAll", operator, approved)
}
