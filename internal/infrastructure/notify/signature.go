package notify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader carries the hex HMAC of the request body
const SignatureHeader = "X-Webhook-Signature"

// SignHMAC computes a sha256 HMAC hex signature for a payload
func SignHMAC(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC verifies a sha256 HMAC hex signature against payload and secret
func VerifyHMAC(secret string, payload []byte, signatureHex string) bool {
	if secret == "" || signatureHex == "" {
		return false
	}
	expected := SignHMAC(secret, payload)
	return hmac.Equal([]byte(expected), []byte(signatureHex))
}
