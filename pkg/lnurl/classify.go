package lnurl

import (
	"strings"

	"github.com/sunboyy/lnurlcli/pkg/bech32"
)

// Flow selects which protocol a classified input is dispatched to. The
// pay-only classification rules (literal invoice, lightning address) are
// inactive for the auth flow.
type Flow int

const (
	// FlowPay is the LNURL-pay protocol.
	FlowPay Flow = iota

	// FlowAuth is the LNURL-auth protocol.
	FlowAuth
)

// Target is the canonical request target a user-supplied string resolves
// to. Exactly one of URL and Invoice is set.
type Target struct {
	// URL is the resolved endpoint for the flow's first round-trip.
	URL string

	// Invoice is set when the input already is a payment request and no
	// negotiation is needed.
	Invoice string
}

// flowScheme is the flow-specific URL scheme accepted by rule 2.
func (f Flow) flowScheme() string {
	if f == FlowAuth {
		return "keyauth://"
	}
	return "lnurlp://"
}

// Classify maps a user-supplied string to its canonical request target.
// The rules are tried in a fixed precedence order and the first match
// wins:
//
//  1. lightning:// wrapper: recurse on the first path segment.
//  2. flow scheme (keyauth:// or lnurlp://): first path segment is a bare
//     host completed with the inferred transport scheme.
//  3. (pay) lnbc prefix: the input is already an invoice.
//  4. lnurl prefix: bech32-decode the embedded URL.
//  5. (pay) lightning address user@domain.
//  6. http:// or https:// URL, used verbatim.
//  7. bare domain (contains a dot), completed with the inferred scheme.
//  8. otherwise the string itself is treated as bech32.
func Classify(flow Flow, input string) (*Target, error) {
	if strings.HasPrefix(input, "lightning://") {
		return Classify(flow, firstSegment(strings.TrimPrefix(input, "lightning://")))
	}

	if scheme := flow.flowScheme(); strings.HasPrefix(input, scheme) {
		host := firstSegment(strings.TrimPrefix(input, scheme))
		return &Target{URL: inferScheme(host) + host}, nil
	}

	if flow == FlowPay &&
		(strings.HasPrefix(input, "lnbc") || strings.HasPrefix(input, "LNBC")) {

		return &Target{Invoice: input}, nil
	}

	if strings.HasPrefix(input, "lnurl") || strings.HasPrefix(input, "LNURL") {
		url, err := bech32.DecodeURL(input)
		if err != nil {
			return nil, err
		}
		return &Target{URL: url}, nil
	}

	if flow == FlowPay && strings.Contains(input, "@") {
		parts := strings.SplitN(input, "@", 2)
		user, domain := parts[0], parts[1]
		return &Target{
			URL: inferScheme(domain) + domain + "/.well-known/lnurlp/" + user,
		}, nil
	}

	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return &Target{URL: input}, nil
	}

	if strings.Contains(input, ".") {
		return &Target{URL: inferScheme(input) + input}, nil
	}

	url, err := bech32.DecodeURL(input)
	if err != nil {
		return nil, err
	}

	return &Target{URL: url}, nil
}

// inferScheme picks the transport scheme for a bare host: plain HTTP for
// Tor hidden services, HTTPS for everything else.
func inferScheme(host string) string {
	if strings.Contains(host, ".onion") {
		return "http://"
	}
	return "https://"
}

// firstSegment returns everything before the first path separator.
func firstSegment(s string) string {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[:i]
	}
	return s
}
