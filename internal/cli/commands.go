package cli

import (
	"fmt"

	"github.com/ModChain/k1"
	"github.com/ModChain/k1/ecckd"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *App) keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a private key and print it with its compressed public key.",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			key, err := k1.GeneratePrivateKey(nil)
			if err != nil {
				return errors.WithMessage(err, "failed to generate private key")
			}
			logger.Debug("generated key", zap.Binary("pubkey", key.PubKey().SerializeCompressed()))

			printHex(cmd.OutOrStdout(), key.Serialize())
			printHex(cmd.OutOrStdout(), key.PubKey().SerializeCompressed())
			return nil
		}),
	}
}

func (a *App) pubkeyCmd() *cobra.Command {
	var uncompressed bool
	cmd := &cobra.Command{
		Use:   "pubkey <key>",
		Short: "Print the public key of a hex encoded private key.",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			key, err := parsePrivKey(args[0])
			if err != nil {
				return err
			}
			if uncompressed {
				printHex(cmd.OutOrStdout(), key.PubKey().SerializeUncompressed())
				return nil
			}
			printHex(cmd.OutOrStdout(), key.PubKey().SerializeCompressed())
			return nil
		}),
	}
	cmd.Flags().BoolVar(&uncompressed, "uncompressed", false, "print the 65-byte uncompressed form")
	return cmd
}

func (a *App) hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <message>",
		Short: "Print the digest of a message.",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			algorithm := a.viper.GetString("digest.algorithm")
			d, err := digest(algorithm, []byte(args[0]))
			if err != nil {
				return err
			}
			logger.Debug("hashed message", zap.String("algorithm", algorithm))
			printHex(cmd.OutOrStdout(), d)
			return nil
		}),
	}
}

func (a *App) signCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <key> <digest>",
		Short: "Sign a 32-byte digest with a private key.",
		Args:  cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			key, err := parsePrivKey(args[0])
			if err != nil {
				return err
			}
			hash, err := decodeHex("digest", args[1])
			if err != nil {
				return err
			}

			format := a.viper.GetString("signature.format")
			var sig []byte
			switch format {
			case formatRaw, formatDER:
				s, err := k1.Sign(key, hash)
				if err != nil {
					return errors.WithMessage(err, "failed to sign digest")
				}
				sig = s.Serialize()
				if format == formatDER {
					sig = s.SerializeDER()
				}
			case formatCompact:
				sig, err = k1.SignCompact(key, hash, true)
				if err != nil {
					return errors.WithMessage(err, "failed to sign digest")
				}
			default:
				return errors.Errorf("unsupported signature format: %s", format)
			}

			logger.Debug("signed digest", zap.String("format", format), zap.Binary("digest", hash))
			printHex(cmd.OutOrStdout(), sig)
			return nil
		}),
	}
}

func (a *App) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <pubkey> <digest> <signature>",
		Short: "Verify a signature over a 32-byte digest.",
		Args:  cobra.ExactArgs(3),
		RunE: a.run(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			pub, err := parsePubKey(args[0])
			if err != nil {
				return err
			}
			hash, err := decodeHex("digest", args[1])
			if err != nil {
				return err
			}
			raw, err := decodeHex("signature", args[2])
			if err != nil {
				return err
			}
			format := a.viper.GetString("signature.format")
			sig, err := parseSignature(format, raw)
			if err != nil {
				return err
			}

			policy := k1.AcceptHighS
			if a.viper.GetBool("verify.strict") {
				policy = k1.RejectHighS
			}
			logger.Debug("verifying signature", zap.String("format", format), zap.Stringer("policy", policy))
			if err := k1.VerifyWithPolicy(pub, hash, sig, policy); err != nil {
				return errors.WithMessage(err, "signature is not valid")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		}),
	}
}

func (a *App) recoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recover <digest> <compact-signature>",
		Short: "Recover the public key of a compact signature.",
		Args:  cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			hash, err := decodeHex("digest", args[0])
			if err != nil {
				return err
			}
			sig, err := decodeHex("signature", args[1])
			if err != nil {
				return err
			}
			pub, compressed, err := k1.RecoverCompact(sig, hash)
			if err != nil {
				return errors.WithMessage(err, "failed to recover public key")
			}
			if compressed {
				printHex(cmd.OutOrStdout(), pub.SerializeCompressed())
				return nil
			}
			printHex(cmd.OutOrStdout(), pub.SerializeUncompressed())
			return nil
		}),
	}
}

func (a *App) ecdhCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ecdh <key> <pubkey>",
		Short: "Print the x coordinate of the shared ECDH point.",
		Args:  cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			key, err := parsePrivKey(args[0])
			if err != nil {
				return err
			}
			pub, err := parsePubKey(args[1])
			if err != nil {
				return err
			}
			secret, err := key.ECDH(pub)
			if err != nil {
				return errors.WithMessage(err, "failed to compute shared secret")
			}
			printHex(cmd.OutOrStdout(), secret)
			return nil
		}),
	}
}

func (a *App) deriveCmd() *cobra.Command {
	var public bool
	cmd := &cobra.Command{
		Use:   "derive <extended-key> <path>",
		Short: "Derive a BIP32 child key along a path such as m/0'/1.",
		Args:  cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string, logger *zap.Logger) error {
			key, err := ecckd.FromString(args[0])
			if err != nil {
				return errors.Wrap(err, "invalid extended key")
			}
			path, err := ecckd.ParsePath(args[1])
			if err != nil {
				return err
			}
			child, err := key.Derive(path)
			if err != nil {
				return errors.Wrapf(err, "failed to derive %s", args[1])
			}
			if public {
				if child, err = child.Public(); err != nil {
					return err
				}
			}
			logger.Debug("derived key", zap.Int("depth", len(path)), zap.Bool("private", child.IsPrivate()))
			fmt.Fprintln(cmd.OutOrStdout(), child.String())
			return nil
		}),
	}
	cmd.Flags().BoolVar(&public, "public", false, "print the extended public key")
	return cmd
}

func parsePrivKey(s string) (*k1.PrivateKey, error) {
	b, err := decodeHex("private key", s)
	if err != nil {
		return nil, err
	}
	return k1.PrivKeyFromBytes(b)
}

func parsePubKey(s string) (*k1.PublicKey, error) {
	b, err := decodeHex("public key", s)
	if err != nil {
		return nil, err
	}
	return k1.ParsePubKey(b)
}

// parseSignature decodes a signature in the given format. The recovery code
// of a compact signature is not needed for verification and is dropped.
func parseSignature(format string, b []byte) (*k1.Signature, error) {
	switch format {
	case formatRaw:
		return k1.ParseSignature(b)
	case formatDER:
		return k1.ParseDERSignature(b)
	case formatCompact:
		if len(b) != k1.CompactSigSize {
			return nil, k1.Error{
				Err: k1.ErrInvalidSignatureEncoding,
				Description: fmt.Sprintf("malformed compact signature: %d bytes instead of %d",
					len(b), k1.CompactSigSize),
			}
		}
		return k1.ParseSignature(b[1:])
	}
	return nil, errors.Errorf("unsupported signature format: %s", format)
}
