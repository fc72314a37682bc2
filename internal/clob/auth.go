package clob

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// hmacSignature builds the L2 authentication signature:
// HMAC-SHA256(secret, timestamp + method + path + body), with the secret
// decoded and the digest encoded using URL-safe base64, matching the
// official client implementations.
func (c *Client) hmacSignature(timestamp, method, path string, body []byte) (string, error) {
	secretBytes, err := base64.URLEncoding.DecodeString(c.secret)
	if err != nil {
		return "", fmt.Errorf("decode secret: %w", err)
	}

	h := hmac.New(sha256.New, secretBytes)
	h.Write([]byte(timestamp + method + path))
	h.Write(body)

	return base64.URLEncoding.EncodeToString(h.Sum(nil)), nil
}
