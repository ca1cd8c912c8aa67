package cmd

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/spf13/cobra"
	"github.com/sunboyy/lnurlcli/pkg/lnurl"
	"github.com/sunboyy/lnurlcli/pkg/signer"
)

var (
	authLinkingKey bool
	authHexInput   bool
	authNoHMAC     bool
	authMnemonic   bool
)

func init() {
	authCmd.Flags().BoolVar(
		&authLinkingKey,
		"linking-key",
		false,
		"stdin holds the 32-byte linking key itself instead of a secret",
	)
	authCmd.Flags().BoolVar(
		&authHexInput,
		"hex",
		false,
		"decode the stdin line as hexadecimal before use",
	)
	authCmd.Flags().BoolVar(
		&authNoHMAC,
		"no-hmac",
		false,
		"use SHA256(secret) directly, skipping the per-host HMAC step",
	)
	authCmd.Flags().BoolVar(
		&authMnemonic,
		"mnemonic",
		false,
		"stdin holds a BIP-39 mnemonic; derive the key via the m/138' path",
	)
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth <data>",
	Short: "authenticate against an LNURL-auth challenge",
	Long: `Auth resolves <data> to a login challenge, signs its k1 value with a
linking key derived from the secret read as a single line from stdin, and
submits the signature. The default derivation binds the key to the
service host, giving a stable pseudonymous identity per service.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if authMnemonic && (authLinkingKey || authHexInput || authNoHMAC) {
			return errors.New("--mnemonic cannot be combined with other key flags")
		}

		line, err := readSecretLine(os.Stdin)
		if err != nil {
			return err
		}

		provider, err := keyProvider(line)
		if err != nil {
			return err
		}

		result, err := lnurl.Auth(newConfig(false), args[0], provider)
		if err != nil {
			return err
		}

		fmt.Printf("authenticated as %s\n", result.PublicKey)

		return nil
	},
}

// keyProvider translates the auth flags into a linking-key source.
func keyProvider(line string) (lnurl.KeyProvider, error) {
	if authMnemonic {
		return func(callback string) (*btcec.PrivateKey, error) {
			return signer.LinkingKeyFromMnemonic(line, callback)
		}, nil
	}

	material := []byte(line)
	if authHexInput {
		decoded, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		material = decoded
	}

	if authLinkingKey {
		priv, err := signer.LinkingKeyFromRaw(material)
		if err != nil {
			return nil, err
		}
		return func(string) (*btcec.PrivateKey, error) {
			return priv, nil
		}, nil
	}

	return func(callback string) (*btcec.PrivateKey, error) {
		return signer.LinkingKeyFromSecret(material, callback, !authNoHMAC)
	}, nil
}

// readSecretLine reads the single line of key material from r. A final
// line without a trailing newline is accepted.
func readSecretLine(r *os.File) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading secret from stdin: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}
