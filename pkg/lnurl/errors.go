package lnurl

import "errors"

var (
	// ErrAmountForInvoice indicates an amount or comment was supplied
	// together with a literal invoice, which needs no negotiation.
	ErrAmountForInvoice = errors.New("lnurl: amount not valid for invoice")

	// ErrMalformedChallenge indicates the decoded auth URL does not split
	// into a callback and a query string.
	ErrMalformedChallenge = errors.New("lnurl: malformed challenge URL")

	// ErrMalformedQuery indicates a query pair does not split into
	// exactly one key and one value.
	ErrMalformedQuery = errors.New("lnurl: malformed query pair")

	// ErrUnknownQueryKey indicates the challenge query carries a key
	// outside the recognized set.
	ErrUnknownQueryKey = errors.New("lnurl: unknown query key")

	// ErrDuplicateQueryKey indicates a recognized key appears more than
	// once in the challenge query.
	ErrDuplicateQueryKey = errors.New("lnurl: duplicate query key")

	// ErrWrongTag indicates the service advertised a tag other than the
	// one the active flow requires.
	ErrWrongTag = errors.New("lnurl: unexpected tag")

	// ErrMissingField indicates a required JSON field is absent from a
	// service response.
	ErrMissingField = errors.New("lnurl: missing required field")

	// ErrServiceError indicates the service answered with an explicit
	// status payload instead of flow data.
	ErrServiceError = errors.New("lnurl: service returned error status")

	// ErrAmountRequired indicates no amount was supplied for a target
	// that still needs an invoice negotiated.
	ErrAmountRequired = errors.New("lnurl: amount required")

	// ErrAmountOutOfBounds indicates the amount violates the advertised
	// minSendable/maxSendable range.
	ErrAmountOutOfBounds = errors.New("lnurl: amount out of sendable bounds")

	// ErrCommentNotAllowed indicates a comment was supplied but the
	// service does not accept comments.
	ErrCommentNotAllowed = errors.New("lnurl: comments not allowed by service")

	// ErrCommentTooLong indicates the comment exceeds the advertised
	// maximum length.
	ErrCommentTooLong = errors.New("lnurl: comment too long")

	// ErrInvalidChallenge indicates the k1 challenge is missing, empty or
	// not valid hexadecimal.
	ErrInvalidChallenge = errors.New("lnurl: invalid k1 challenge")
)
