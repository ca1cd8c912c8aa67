package lnurl

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/sunboyy/lnurlcli/pkg/signer"
)

// authQueryKeys is the fixed set of keys a challenge query may carry.
var authQueryKeys = map[string]bool{
	"tag":    true,
	"k1":     true,
	"hmac":   true,
	"action": true,
}

// KeyProvider returns the linking key for a challenge callback. The
// callback is passed in because HMAC and mnemonic derivation commit to
// its host.
type KeyProvider func(callback string) (*btcec.PrivateKey, error)

// AuthResult reports the identity used for a successful authentication.
type AuthResult struct {
	// PublicKey is the hex compressed public key submitted as `key`.
	PublicKey string

	// URL is the signed submission URL.
	URL string
}

// Auth runs the LNURL-auth flow: resolve and parse the challenge, derive
// the linking key, sign k1 and submit the signature. The challenge query
// is validated strictly before any key material is touched or any request
// is sent.
func Auth(cfg *Config, input string, provider KeyProvider) (*AuthResult, error) {
	target, err := Classify(FlowAuth, input)
	if err != nil {
		return nil, err
	}

	cfg.logf(1, "resolved challenge: %s", target.URL)

	callback, query, err := splitChallenge(target.URL)
	if err != nil {
		return nil, err
	}

	k1, err := parseChallengeQuery(query)
	if err != nil {
		return nil, err
	}

	priv, err := provider(callback)
	if err != nil {
		return nil, err
	}

	sig, err := signer.Sign(priv, k1)
	if err != nil {
		return nil, err
	}

	cfg.logf(1, "linking key: %s", sig.PublicKeyHex())

	submitURL := fmt.Sprintf("%s&sig=%s&key=%s",
		target.URL, sig.DERHex(), sig.PublicKeyHex())

	var resp AuthResponse
	if err := cfg.getJSON(submitURL, &resp); err != nil {
		return nil, err
	}
	if resp.Status == nil {
		return nil, fmt.Errorf("%w: status", ErrMissingField)
	}
	if *resp.Status != StatusOK {
		return nil, serviceError(resp.Reason)
	}

	return &AuthResult{
		PublicKey: sig.PublicKeyHex(),
		URL:       submitURL,
	}, nil
}

// splitChallenge splits the decoded URL on the first '?' into callback
// and query. Anything other than exactly two parts is malformed.
func splitChallenge(decoded string) (string, string, error) {
	parts := strings.SplitN(decoded, "?", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", ErrMalformedChallenge
	}

	return parts[0], parts[1], nil
}

// parseChallengeQuery validates the challenge query strictly and returns
// the decoded k1 bytes. Every key must be recognized and unique, the tag
// must be "login" and k1 must be present, non-empty hex. The hmac and
// action keys are accepted without further checks.
func parseChallengeQuery(query string) ([]byte, error) {
	vars := make(map[string]string)
	for _, pair := range strings.Split(query, "&") {
		kv := strings.Split(pair, "=")
		if len(kv) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedQuery, pair)
		}

		key, value := kv[0], kv[1]
		if !authQueryKeys[key] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownQueryKey, key)
		}
		if _, ok := vars[key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateQueryKey, key)
		}
		vars[key] = value
	}

	if tag := vars["tag"]; tag != TagLogin {
		return nil, fmt.Errorf("%w: expected %q, got %q", ErrWrongTag,
			TagLogin, tag)
	}

	k1Hex := vars["k1"]
	if k1Hex == "" {
		return nil, fmt.Errorf("%w: k1 missing or empty", ErrInvalidChallenge)
	}

	k1, err := hex.DecodeString(k1Hex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChallenge, err)
	}

	return k1, nil
}
