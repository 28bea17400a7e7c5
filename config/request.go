package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"charm-approve-tui/helpers"
)

// LoadRequest reads a pending approval request from path, or stdin when
// path is "-".
func LoadRequest(path string) (ApprovalRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return ApprovalRequest{}, fmt.Errorf("read request: %w", err)
	}
	return ParseRequest(data)
}

// ParseRequest decodes and validates an approval request
func ParseRequest(data []byte) (ApprovalRequest, error) {
	var req ApprovalRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return ApprovalRequest{}, fmt.Errorf("decode request: %w", err)
	}
	if !helpers.IsValidEthAddress(req.TxParams.To) {
		return ApprovalRequest{}, fmt.Errorf("invalid token address %q", req.TxParams.To)
	}
	if !helpers.IsValidEthAddress(req.TxParams.From) {
		return ApprovalRequest{}, fmt.Errorf("invalid sender address %q", req.TxParams.From)
	}
	if len(req.TxParams.Data) < 10 {
		return ApprovalRequest{}, fmt.Errorf("request has no calldata")
	}
	return req, nil
}
