// SPDX-License-Identifier: ice License 1.0

package log

// Private API.

const (
	loggerYAMLKey = "logger"

	levelDebug = "debug"
	levelInfo  = "info"
	levelWarn  = "warn"
	levelError = "error"
)

type (
	cfg struct {
		Encoder string `yaml:"encoder"`
		Level   string `yaml:"level"`
	}
)

// severity orders the configured level; unknown levels behave like info.
func severity(level string) int {
	switch level {
	case levelDebug:
		return 0
	case levelWarn:
		return 2 //nolint:mnd // .
	case levelError:
		return 3 //nolint:mnd // .
	default:
		return 1
	}
}
