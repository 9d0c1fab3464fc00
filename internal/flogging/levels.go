package flogging

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

const defaultLevel = zapcore.InfoLevel

var loggerNameRegexp = regexp.MustCompile(`^[[:alnum:]_#:-]+(\.[[:alnum:]_#:-]+)*$`)

func isValidLoggerName(loggerName string) bool {
	return loggerNameRegexp.MatchString(loggerName)
}

// NameToLevel converts a level name to a zapcore.Level. The legacy names
// WARNING and CRITICAL are accepted. Unknown names map to InfoLevel.
func NameToLevel(level string) zapcore.Level {
	l, err := nameToLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func nameToLevel(level string) (zapcore.Level, error) {
	switch strings.ToUpper(level) {
	case "WARNING":
		return zapcore.WarnLevel, nil
	case "CRITICAL":
		return zapcore.ErrorLevel, nil
	}

	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return l, errors.Errorf("invalid log level: %s", level)
	}
	return l, nil
}

// LoggerLevels tracks the log level of named loggers. A logger without an
// explicit level inherits the level of its closest dotted parent, or the
// default level when none is set.
type LoggerLevels struct {
	mutex        sync.RWMutex
	specs        map[string]zapcore.Level
	defaultLevel zapcore.Level
	minLevel     zapcore.Level
	spec         string
}

// ActivateSpec replaces the active levels with the ones described by spec:
//
//	[<logger>[,<logger>...]=]<level>[:[<logger>[,<logger>...]=]<level>...]
//
// A segment without a logger name sets the default level.
func (l *LoggerLevels) ActivateSpec(spec string) error {
	defaultLevel := zapcore.InfoLevel
	specs := map[string]zapcore.Level{}
	for _, field := range strings.Split(spec, ":") {
		split := strings.Split(field, "=")
		switch len(split) {
		case 1:
			lvl, err := nameToLevel(field)
			if err != nil {
				return errors.Errorf("invalid logging specification '%s': bad segment '%s'", spec, field)
			}
			defaultLevel = lvl

		case 2:
			if split[0] == "" {
				return errors.Errorf("invalid logging specification '%s': no logger specified in segment '%s'", spec, field)
			}
			lvl, err := nameToLevel(split[1])
			if err != nil {
				return errors.Errorf("invalid logging specification '%s': bad segment '%s'", spec, field)
			}
			for _, name := range strings.Split(split[0], ",") {
				if !isValidLoggerName(name) {
					return errors.Errorf("invalid logging specification '%s': bad logger name '%s'", spec, name)
				}
				specs[name] = lvl
			}

		default:
			return errors.Errorf("invalid logging specification '%s': bad segment '%s'", spec, field)
		}
	}

	minLevel := defaultLevel
	for _, lvl := range specs {
		if lvl < minLevel {
			minLevel = lvl
		}
	}

	l.mutex.Lock()
	l.defaultLevel = defaultLevel
	l.specs = specs
	l.minLevel = minLevel
	l.spec = spec
	l.mutex.Unlock()
	return nil
}

// Level returns the effective level of the named logger.
func (l *LoggerLevels) Level(loggerName string) zapcore.Level {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for name := loggerName; ; {
		if lvl, ok := l.specs[name]; ok {
			return lvl
		}
		idx := strings.LastIndex(name, ".")
		if idx == -1 {
			return l.defaultLevel
		}
		name = name[:idx]
	}
}

// Enabled reports whether any logger is enabled at lvl.
func (l *LoggerLevels) Enabled(lvl zapcore.Level) bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return lvl >= l.minLevel
}

// DefaultLevel returns the level of loggers without an explicit level.
func (l *LoggerLevels) DefaultLevel() zapcore.Level {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.defaultLevel
}

// Spec returns a normalized form of the active logging specification.
func (l *LoggerLevels) Spec() string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var fields []string
	for name, lvl := range l.specs {
		fields = append(fields, name+"="+lvl.String())
	}
	sort.Strings(fields)
	return strings.Join(append(fields, l.defaultLevel.String()), ":")
}
