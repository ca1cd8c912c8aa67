package cmd

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
	"github.com/sunboyy/lnurlcli/pkg/lnurl"
)

var (
	payDecodeOnly bool
	payShowQR     bool
)

func init() {
	payCmd.Flags().BoolVarP(
		&payDecodeOnly,
		"decode",
		"d",
		false,
		"only resolve and print the endpoint URL, without contacting it",
	)
	payCmd.Flags().BoolVar(
		&payShowQR,
		"qr",
		false,
		"render the returned invoice as a QR code on stderr",
	)
	rootCmd.AddCommand(payCmd)
}

var payCmd = &cobra.Command{
	Use:   "pay <data> [amount_sat] [comment]",
	Short: "request an invoice from an LNURL-pay endpoint",
	Long: `Pay resolves <data> to an LNURL-pay endpoint, validates the advertised
parameters and requests an invoice for the given amount (in satoshis).
When <data> already is a bolt11 invoice it is printed unchanged and no
amount or comment may be given.`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &lnurl.PayRequest{Input: args[0]}

		if len(args) >= 2 {
			msats, err := parseAmountMsat(args[1])
			if err != nil {
				return err
			}
			req.AmountMsat = &msats
		}
		if len(args) == 3 {
			req.Comment = args[2]
		}

		result, err := lnurl.Pay(newConfig(payDecodeOnly), req)
		if err != nil {
			return err
		}

		if payDecodeOnly && result.Invoice == "" {
			fmt.Println(result.URL)
			return nil
		}

		fmt.Println(result.Invoice)

		if payShowQR {
			qr, err := qrcode.New(result.Invoice, qrcode.Medium)
			if err != nil {
				return fmt.Errorf("rendering QR code: %w", err)
			}
			fmt.Fprint(os.Stderr, qr.ToSmallString(false))
		}

		return nil
	},
}

// parseAmountMsat converts a satoshi amount argument to millisatoshi,
// rejecting values that would overflow the conversion.
func parseAmountMsat(arg string) (int64, error) {
	sats, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", arg, err)
	}

	if sats > math.MaxInt64/1000 || sats < math.MinInt64/1000 {
		return 0, fmt.Errorf("amount %d sat does not fit in millisatoshi", sats)
	}

	return sats * 1000, nil
}
