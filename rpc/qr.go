package rpc

import (
	"strings"

	"github.com/mdp/qrterminal/v3"
)

// GenerateQRCode renders content as a half-block QR code for the terminal
func GenerateQRCode(content string) string {
	if content == "" {
		return ""
	}
	var sb strings.Builder
	qrterminal.GenerateHalfBlock(content, qrterminal.L, &sb)
	return sb.String()
}
