package lnurl

import (
	"fmt"
	"net/url"
	"strings"
)

// PayRequest is one invocation of the pay flow.
type PayRequest struct {
	// Input is the raw user-supplied identifier.
	Input string

	// AmountMsat is the payment amount in millisatoshi. It must be nil
	// when Input already is an invoice and set otherwise.
	AmountMsat *int64

	// Comment is an optional comment for the receiving service.
	Comment string
}

// PayResult is the outcome of a completed pay flow.
type PayResult struct {
	// Invoice is the payment request to pay. Empty in decode-only mode.
	Invoice string

	// URL is the resolved endpoint, reported in decode-only mode.
	URL string

	// Params are the advertised pay parameters. Nil when the input was a
	// literal invoice or in decode-only mode.
	Params *PayParams
}

// Pay runs the LNURL-pay flow: resolve the endpoint, fetch and validate
// the pay parameters, then request an invoice for the amount. A literal
// invoice input short-circuits the flow, and decode-only mode stops after
// endpoint resolution without any network I/O.
func Pay(cfg *Config, req *PayRequest) (*PayResult, error) {
	target, err := Classify(FlowPay, req.Input)
	if err != nil {
		return nil, err
	}

	if target.Invoice != "" {
		if req.AmountMsat != nil || req.Comment != "" {
			return nil, ErrAmountForInvoice
		}

		cfg.logf(1, "input is already an invoice")
		return &PayResult{Invoice: target.Invoice}, nil
	}

	cfg.logf(1, "resolved endpoint: %s", target.URL)

	if cfg.DecodeOnly {
		return &PayResult{URL: target.URL}, nil
	}

	var params PayParams
	if err := cfg.getJSON(target.URL, &params); err != nil {
		return nil, err
	}
	if err := validatePayParams(&params); err != nil {
		return nil, err
	}
	if err := validateAmount(&params, req); err != nil {
		return nil, err
	}

	invoiceURL := amendCallback(*params.Callback, *req.AmountMsat, req.Comment)

	var invoice InvoiceResponse
	if err := cfg.getJSON(invoiceURL, &invoice); err != nil {
		return nil, err
	}
	if invoice.Status != nil {
		return nil, serviceError(invoice.Reason)
	}
	if invoice.PR == nil {
		return nil, fmt.Errorf("%w: pr", ErrMissingField)
	}

	return &PayResult{
		Invoice: *invoice.PR,
		Params:  &params,
	}, nil
}

// validatePayParams checks the first response for an error envelope, the
// required fields and the payRequest tag.
func validatePayParams(params *PayParams) error {
	if params.Status != nil {
		return serviceError(params.Reason)
	}

	switch {
	case params.Callback == nil:
		return fmt.Errorf("%w: callback", ErrMissingField)
	case params.Tag == nil:
		return fmt.Errorf("%w: tag", ErrMissingField)
	case params.MinSendable == nil:
		return fmt.Errorf("%w: minSendable", ErrMissingField)
	case params.MaxSendable == nil:
		return fmt.Errorf("%w: maxSendable", ErrMissingField)
	}

	if *params.Tag != TagPayRequest {
		return fmt.Errorf("%w: expected %q, got %q", ErrWrongTag,
			TagPayRequest, *params.Tag)
	}

	return nil
}

// validateAmount enforces the sendable bounds and the comment rules. A
// commentAllowed of zero takes the same branch as an absent field: both
// reject comments.
func validateAmount(params *PayParams, req *PayRequest) error {
	if req.AmountMsat == nil {
		return fmt.Errorf("%w: between %d and %d millisatoshi",
			ErrAmountRequired, *params.MinSendable, *params.MaxSendable)
	}

	amount := *req.AmountMsat
	if amount < *params.MinSendable || amount > *params.MaxSendable {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrAmountOutOfBounds,
			amount, *params.MinSendable, *params.MaxSendable)
	}

	if req.Comment != "" {
		if params.CommentAllowed == nil || *params.CommentAllowed == 0 {
			return ErrCommentNotAllowed
		}
		if int64(len(req.Comment)) > *params.CommentAllowed {
			return fmt.Errorf("%w: %d characters, at most %d accepted",
				ErrCommentTooLong, len(req.Comment), *params.CommentAllowed)
		}
	}

	return nil
}

// amendCallback appends the amount (and optional comment) to the callback
// URL, respecting an existing query string.
func amendCallback(callback string, amountMsat int64, comment string) string {
	delim := "?"
	if strings.Contains(callback, "?") {
		delim = "&"
	}

	amended := fmt.Sprintf("%s%samount=%d", callback, delim, amountMsat)
	if comment != "" {
		amended += "&comment=" + url.QueryEscape(comment)
	}

	return amended
}

func serviceError(reason *string) error {
	if reason != nil {
		return fmt.Errorf("%w: %s", ErrServiceError, *reason)
	}
	return ErrServiceError
}
