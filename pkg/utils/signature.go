package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignHMACSHA256 returns the lowercase hex HMAC-SHA256 of message keyed by secret.
func SignHMACSHA256(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignRequestTimestamp signs the epoch-seconds timestamp sent as current_time
// to the Housing.com lead API. Callers must reject an empty secret first.
func SignRequestTimestamp(secret, epochSeconds string) string {
	return SignHMACSHA256(secret, epochSeconds)
}
