package approval

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EIP681 renders approval calldata as an EIP-681 payment request an external
// wallet can scan and sign.
func EIP681(token common.Address, chainID *big.Int, data []byte) (string, error) {
	a, err := DecodeApproval(data)
	if err != nil {
		return "", err
	}
	target := token.Hex()
	if chainID != nil && chainID.Sign() > 0 {
		target += "@" + chainID.String()
	}
	switch a.Method {
	case "approve":
		return fmt.Sprintf("ethereum:%s/approve?address=%s&uint256=%s", target, a.Spender.Hex(), a.Value.String()), nil
	default:
		return fmt.Sprintf("ethereum:%s/setApprovalForAll?address=%s&bool=%t", target, a.Spender.Hex(), a.Approved), nil
	}
}
