package activation

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// groupKey turns the first 16 characters of an uppercase hex digest into
// the XXXX-XXXX-XXXX-XXXX presentation both sides of key exchange use.
func groupKey(h string) string {
	return h[:4] + "-" + h[4:8] + "-" + h[8:12] + "-" + h[12:16]
}

// deriveKey computes the expected activation key for the given holder
// identity, hardware id and issuer secret. Inputs are normalized first so
// cosmetic differences in case or whitespace do not change the key.
func deriveKey(email, mobile, hwid, secret string) string {
	cleanEmail := strings.ToLower(strings.TrimSpace(email))
	cleanMobile := strings.TrimSpace(mobile)
	cleanHWID := strings.ToUpper(strings.TrimSpace(hwid))

	sum := sha256.Sum256([]byte(cleanEmail + cleanMobile + cleanHWID + secret))
	return groupKey(strings.ToUpper(hex.EncodeToString(sum[:])))
}

// GenerateKey issues a key for the given identity. It is used by the
// operator-side tooling that hands keys to customers.
func GenerateKey(email, mobile, hwid, secret string) string {
	return deriveKey(email, mobile, hwid, secret)
}

// VerifyKey reports whether providedKey matches the expected derivation.
// It returns false, never an error, when the secret is unset, when any
// identity field is empty, or on mismatch.
func VerifyKey(email, mobile, hwid, providedKey, secret string) bool {
	if secret == "" {
		return false
	}
	if strings.TrimSpace(email) == "" || strings.TrimSpace(mobile) == "" ||
		strings.TrimSpace(hwid) == "" || strings.TrimSpace(providedKey) == "" {
		return false
	}

	expected := deriveKey(email, mobile, hwid, secret)
	return strings.ToUpper(strings.TrimSpace(providedKey)) == expected
}
