package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/fleetgrid/ownerconsole/internal/webhook/domain"
)

const secretPrefix = "whsec_"

// decodeSecret strips the provider's key prefix if present and decodes
// the remainder to the raw HMAC key bytes.
func decodeSecret(secret string) ([]byte, error) {
	value := strings.TrimPrefix(secret, secretPrefix)
	key, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode webhook secret: %w", err)
	}
	return key, nil
}

// verifySignature checks the signed content "<id>.<timestamp>.<body>"
// against every v1 candidate in the signature header. The header may
// carry multiple comma-separated version=signature pairs; one matching
// v1 pair is enough.
func verifySignature(payload []byte, headers domain.Headers, secret string) error {
	if headers.EventID == "" || headers.Timestamp == "" || headers.Signature == "" {
		return domain.ErrInvalidSignature
	}

	key, err := decodeSecret(secret)
	if err != nil {
		return domain.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.", headers.EventID, headers.Timestamp)
	_, _ = mac.Write(payload)
	expected := mac.Sum(nil)

	for _, pair := range strings.Split(headers.Signature, ",") {
		version, signature, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || version != "v1" || signature == "" {
			continue
		}
		candidate, err := base64.StdEncoding.DecodeString(signature)
		if err != nil {
			continue
		}
		if len(candidate) == len(expected) && hmac.Equal(candidate, expected) {
			return nil
		}
	}

	return domain.ErrInvalidSignature
}
