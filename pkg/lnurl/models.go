package lnurl

// TagPayRequest is the tag value a pay endpoint must advertise.
const TagPayRequest = "payRequest"

// TagLogin is the tag value an auth challenge must carry.
const TagLogin = "login"

// StatusOK is the success status of an auth submission.
const StatusOK = "OK"

// PayParams is the first pay-flow response. All fields are pointers so
// that an absent field is distinguishable from a present zero value; the
// presence of Status marks the payload as an error envelope regardless of
// its value.
type PayParams struct {
	// Callback is the URL which will accept the pay request parameters.
	Callback *string `json:"callback"`

	// Tag must equal TagPayRequest.
	Tag *string `json:"tag"`

	// MinSendable is the minimum amount the service accepts, in
	// millisatoshi.
	MinSendable *int64 `json:"minSendable"`

	// MaxSendable is the maximum amount the service accepts, in
	// millisatoshi.
	MaxSendable *int64 `json:"maxSendable"`

	// CommentAllowed is the maximum accepted comment length. Absence
	// means comments are rejected.
	CommentAllowed *int64 `json:"commentAllowed"`

	// Metadata is an opaque JSON string, passed through untouched.
	Metadata *string `json:"metadata"`

	Status *string `json:"status"`
	Reason *string `json:"reason"`
}

// InvoiceResponse is the second pay-flow response.
type InvoiceResponse struct {
	// PR is the bech32-encoded payment request, returned verbatim.
	PR *string `json:"pr"`

	Status *string `json:"status"`
	Reason *string `json:"reason"`
}

// AuthResponse is the auth submission response.
type AuthResponse struct {
	Status *string `json:"status"`
	Reason *string `json:"reason"`
}
