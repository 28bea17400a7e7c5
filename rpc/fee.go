package rpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// Fee is the node's estimate for a transaction, for display only
type Fee struct {
	Gas      uint64
	GasPrice *big.Int
	TotalWei *big.Int
}

// EstimateFee asks the node for gas and gas price. A non-zero gasLimit from
// the request is used as-is.
func EstimateFee(b Backend, from, to common.Address, data []byte, gasLimit uint64) (Fee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	if b == nil {
		return Fee{}, fmt.Errorf("no RPC client")
	}

	gas := gasLimit
	if gas == 0 {
		est, err := b.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Data: data})
		if err != nil {
			return Fee{}, fmt.Errorf("estimate gas: %w", err)
		}
		gas = est
	}

	price, err := b.SuggestGasPrice(ctx)
	if err != nil {
		return Fee{}, fmt.Errorf("gas price: %w", err)
	}

	total := new(big.Int).Mul(new(big.Int).SetUint64(gas), price)
	return Fee{Gas: gas, GasPrice: price, TotalWei: total}, nil
}
