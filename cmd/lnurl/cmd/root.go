package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/sunboyy/lnurlcli/pkg/lnurl"
)

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "lnurl",
	Short: "LNURL pay and auth client",
	Long: `lnurl talks to LNURL services over a local SOCKS proxy. It accepts
bech32-encoded LNURLs, lightning: links, lnurlp:// and keyauth:// schemes,
lightning addresses, plain URLs and bare domains, and runs either the pay
flow (returning an invoice) or the auth flow (challenge-response login).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(
		&verbosity,
		"verbose",
		"v",
		"increase verbosity (-v flow progress, -vv wire detail)",
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newConfig builds the per-invocation flow configuration from the global
// flags.
func newConfig(decodeOnly bool) *lnurl.Config {
	return &lnurl.Config{
		DecodeOnly: decodeOnly,
		Verbosity:  verbosity,
		Log:        os.Stderr,
	}
}
