// Package cli implements the k1sig command, a thin harness around the k1
// signing primitives.
package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/ModChain/k1"
	"github.com/ModChain/k1/internal/flogging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CmdRoot is the name of the command and the prefix of its environment
// variables.
const CmdRoot = "k1sig"

// Signature formats accepted by the signature.format setting.
const (
	formatRaw     = "raw"
	formatDER     = "der"
	formatCompact = "compact"
)

// App holds the configuration and loggers shared by the subcommands.
type App struct {
	viper   *viper.Viper
	logging *flogging.Logging
	logger  *zap.Logger
}

// NewRootCommand returns the k1sig command with all of its subcommands.
// Configuration is read, in increasing order of precedence, from the file
// named by --config, from K1SIG_* environment variables and from flags.
func NewRootCommand() *cobra.Command {
	app := &App{viper: newViper()}

	rootCmd := &cobra.Command{
		Use:           CmdRoot,
		Short:         "Sign and verify secp256k1 ECDSA signatures.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initialize(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "configuration file (yaml, json or toml)")
	flags.String("logging-level", "", "logging specification, defaulting to $K1SIG_LOGGING_SPEC or info")
	flags.String("logging-format", "console", "log format: console, json or logfmt")
	flags.Bool("strict", false, "reject signatures whose S value is greater than N/2")
	flags.String("format", formatRaw, "signature format: raw, der or compact")
	flags.String("digest", "sha256", "digest algorithm of the hash command: sha256, sha256d or blake256")

	app.viper.BindPFlag("config", flags.Lookup("config"))
	app.viper.BindPFlag("logging.level", flags.Lookup("logging-level"))
	app.viper.BindPFlag("logging.format", flags.Lookup("logging-format"))
	app.viper.BindPFlag("verify.strict", flags.Lookup("strict"))
	app.viper.BindPFlag("signature.format", flags.Lookup("format"))
	app.viper.BindPFlag("digest.algorithm", flags.Lookup("digest"))

	rootCmd.AddCommand(
		app.keygenCmd(),
		app.pubkeyCmd(),
		app.hashCmd(),
		app.signCmd(),
		app.verifyCmd(),
		app.recoverCmd(),
		app.ecdhCmd(),
		app.deriveCmd(),
	)
	return rootCmd
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(CmdRoot)
	v.AutomaticEnv()
	replacer := strings.NewReplacer(".", "_")
	v.SetEnvKeyReplacer(replacer)
	return v
}

// initialize loads the configuration file, if any, and sets up logging.
func (a *App) initialize(cmd *cobra.Command) error {
	if path := a.viper.GetString("config"); path != "" {
		a.viper.SetConfigFile(path)
		if err := a.viper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	logging, err := flogging.New(flogging.Config{
		Format:  a.viper.GetString("logging.format"),
		LogSpec: a.viper.GetString("logging.level"),
		Writer:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return errors.WithMessage(err, "failed to initialize logging")
	}
	a.logging = logging
	a.logger = logging.Logger(CmdRoot)
	return nil
}

// run wraps the body of a subcommand so that it is logged on entry and on
// failure.
func (a *App) run(fn func(cmd *cobra.Command, args []string, logger *zap.Logger) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := a.logger.Named(cmd.Name())
		logger.Debug("running command", zap.Int("args", len(args)))
		if err := fn(cmd, args, logger); err != nil {
			logger.Warn("command failed", zap.Error(err))
			return err
		}
		return nil
	}
}

// ErrorMessage formats err for display, leading with the k1 error kind when
// there is one.
func ErrorMessage(err error) string {
	var kerr k1.Error
	if errors.As(err, &kerr) {
		return fmt.Sprintf("%s: %v", kerr.Err, err)
	}
	return err.Error()
}

func decodeHex(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "%s is not valid hex", name)
	}
	return b, nil
}

func printHex(w io.Writer, b []byte) {
	fmt.Fprintln(w, hex.EncodeToString(b))
}
