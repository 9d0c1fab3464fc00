package flogging_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/ModChain/k1/internal/flogging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	logging, err := flogging.New(flogging.Config{})
	assert.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, logging.DefaultLevel())

	_, err = flogging.New(flogging.Config{
		LogSpec: "::=borken=::",
	})
	assert.EqualError(t, err, "invalid logging specification '::=borken=::': bad segment '=borken='")

	_, err = flogging.New(flogging.Config{Format: "xml"})
	assert.EqualError(t, err, "unsupported log format: xml")
}

func TestNewWithEnvironment(t *testing.T) {
	oldSpec, set := os.LookupEnv("K1SIG_LOGGING_SPEC")
	if set {
		defer os.Setenv("K1SIG_LOGGING_SPEC", oldSpec)
	}

	os.Setenv("K1SIG_LOGGING_SPEC", "fatal")
	logging, err := flogging.New(flogging.Config{})
	assert.NoError(t, err)
	assert.Equal(t, zapcore.FatalLevel, logging.DefaultLevel())

	os.Unsetenv("K1SIG_LOGGING_SPEC")
	logging, err = flogging.New(flogging.Config{})
	assert.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, logging.DefaultLevel())
}

func TestActivateSpec(t *testing.T) {
	tests := []struct {
		spec   string
		levels map[string]zapcore.Level
		normal string
	}{
		{
			spec:   "debug",
			levels: map[string]zapcore.Level{"k1sig": zapcore.DebugLevel},
			normal: "debug",
		},
		{
			spec: "k1sig.sign=debug:warning",
			levels: map[string]zapcore.Level{
				"k1sig":            zapcore.WarnLevel,
				"k1sig.sign":       zapcore.DebugLevel,
				"k1sig.sign.nonce": zapcore.DebugLevel,
				"k1sig.verify":     zapcore.WarnLevel,
			},
			normal: "k1sig.sign=debug:warn",
		},
		{
			spec: "a,b=error:c=CRITICAL:info",
			levels: map[string]zapcore.Level{
				"a": zapcore.ErrorLevel,
				"b": zapcore.ErrorLevel,
				"c": zapcore.ErrorLevel,
				"d": zapcore.InfoLevel,
			},
			normal: "a=error:b=error:c=error:info",
		},
	}

	for _, tc := range tests {
		t.Run(tc.spec, func(t *testing.T) {
			ll := &flogging.LoggerLevels{}
			require.NoError(t, ll.ActivateSpec(tc.spec))
			for name, lvl := range tc.levels {
				assert.Equal(t, lvl, ll.Level(name), "logger %s", name)
			}
			assert.Equal(t, tc.normal, ll.Spec())
		})
	}

	ll := &flogging.LoggerLevels{}
	for _, spec := range []string{"bogus", "=debug", "a=b=c", "a*=debug"} {
		assert.Error(t, ll.ActivateSpec(spec), "spec %q", spec)
	}
}

func TestNameToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, flogging.NameToLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, flogging.NameToLevel("critical"))
	assert.Equal(t, zapcore.DebugLevel, flogging.NameToLevel("DEBUG"))
	assert.Equal(t, zapcore.InfoLevel, flogging.NameToLevel("nonsense"))
}

func TestLoggerFormats(t *testing.T) {
	buf := &bytes.Buffer{}
	logging, err := flogging.New(flogging.Config{Format: "json", Writer: buf})
	require.NoError(t, err)

	logger := logging.Logger("k1sig.sign")
	logger.Info("signed", zap.String("format", "der"))

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "signed", record["msg"])
	assert.Equal(t, "k1sig.sign", record["name"])
	assert.Equal(t, "der", record["format"])
	assert.Equal(t, "info", record["level"])

	buf.Reset()
	require.NoError(t, logging.SetFormat("logfmt"))
	logger.Info("signed", zap.String("format", "raw"))
	assert.Contains(t, buf.String(), "msg=signed")
	assert.Contains(t, buf.String(), "format=raw")
	assert.Contains(t, buf.String(), "name=k1sig.sign")

	buf.Reset()
	require.NoError(t, logging.SetFormat("console"))
	logger.With(zap.Int("attempt", 2)).Warn("retrying")
	assert.Contains(t, buf.String(), "retrying")
	assert.Contains(t, buf.String(), `"attempt": 2`)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	logging, err := flogging.New(flogging.Config{LogSpec: "k1sig.verify=debug:warn", Writer: buf})
	require.NoError(t, err)

	signLogger := logging.Logger("k1sig.sign")
	verifyLogger := logging.Logger("k1sig.verify")

	signLogger.Info("from sign")
	verifyLogger.Debug("from verify")
	assert.NotContains(t, buf.String(), "from sign")
	assert.Contains(t, buf.String(), "from verify")

	require.NoError(t, logging.ActivateSpec("error"))
	assert.False(t, verifyLogger.Core().Enabled(zapcore.DebugLevel))
	verifyLogger.Warn("suppressed")
	assert.NotContains(t, buf.String(), "suppressed")
}

func TestLoggerObserved(t *testing.T) {
	logging, err := flogging.New(flogging.Config{LogSpec: "debug", Writer: &bytes.Buffer{}})
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.Logger("k1sig", zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, core)
	}))
	logger.Named("keygen").Debug("generated key", zap.String("pubkey", "02ab"))

	entries := logs.FilterMessage("generated key").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "k1sig.keygen", entries[0].LoggerName)
	assert.Equal(t, "02ab", entries[0].ContextMap()["pubkey"])
}

func TestInvalidLoggerName(t *testing.T) {
	logging, err := flogging.New(flogging.Config{})
	require.NoError(t, err)

	names := []string{"test*", ".test", "test.", ".", ""}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			msg := fmt.Sprintf("invalid logger name: %s", name)
			assert.PanicsWithValue(t, msg, func() { logging.Logger(name) })
		})
	}
}
