package gateway

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/url"
)

// ===========================================================================
// Webhook Signature Verification
// The gateway signs webhook deliveries with X-Twilio-Signature:
// HMAC-SHA1 over the full request URL concatenated with every POST
// parameter name+value in lexical key order, base64 encoded.
// ===========================================================================

// ValidateSignature checks a webhook signature against the account auth
// token. requestURL must be the exact public URL the gateway called.
func ValidateSignature(signature, requestURL string, form url.Values, authToken string) bool {
	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(requestURL))

	for _, key := range sortedFormKeys(form) {
		mac.Write([]byte(key))
		mac.Write([]byte(form.Get(key)))
	}

	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
