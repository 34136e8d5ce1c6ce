// SPDX-License-Identifier: ice License 1.0
//go:build zerolog

package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/ice-blockchain/credentials/config"
)

const (
	stackFramesToSkip = 2
)

// .
var (
	//nolint:gochecknoglobals // we need only one log for the app, hence it is global
	logger *zerolog.Logger
)

//nolint:gochecknoinits // log is global, so it's initialization can be done in init
func init() {
	var appCfg cfg
	config.MustLoadFromKey(loggerYAMLKey, &appCfg)
	if appCfg.Level == "" {
		appCfg.Level = levelInfo
	}
	isJSON := strings.EqualFold(appCfg.Encoder, "json")

	zerolog.DisableSampling(true)
	zerolog.ErrorStackMarshaler = errorStackMarshaller //nolint:reassign // It is called by an init.
	zerolog.InterfaceMarshalFunc = json.Marshal
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	var err error
	if logger, err = buildLogger(isJSON, appCfg.Level); err != nil {
		panic(errors.Wrap(err, "failed to build logger"))
	}
	stdLibLogger, err := buildLogger(isJSON, appCfg.Level)
	if err != nil {
		panic(errors.Wrap(err, "failed to build std lib logger"))
	}
	log.SetFlags(0)
	log.SetOutput(stdLibLogger)
}

func buildLogger(isJSON bool, level string) (*zerolog.Logger, error) { //nolint:revive // Control coupling is intended here.
	var logWriter io.Writer = os.Stderr
	if !isJSON {
		logWriter = &zerolog.ConsoleWriter{
			Out:        logWriter,
			TimeFormat: time.RFC3339Nano,
			PartsOrder: []string{
				zerolog.LevelFieldName,
				zerolog.TimestampFieldName,
				zerolog.MessageFieldName,
			},
			PartsExclude: []string{
				zerolog.ErrorStackFieldName,
				zerolog.CallerFieldName,
			},
		}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, errors.Wrap(err, "invalid logger level")
	}
	lgr := zerolog.New(logWriter).With().Timestamp().Stack().Logger().Level(lvl)

	return &lgr, nil
}

func errorStackMarshaller(err error) any {
	m := pkgerrors.MarshalStack(err)
	if m == nil {
		return nil
	}
	frames, ok := m.([]map[string]string)
	if !ok || len(frames) <= stackFramesToSkip {
		return nil
	}
	stacks := make([]string, 0, len(frames)-stackFramesToSkip)
	for _, frame := range frames[:len(frames)-stackFramesToSkip] {
		stacks = append(stacks, fmt.Sprintf("%s:%s:%s",
			frame[pkgerrors.StackSourceFileName],
			frame[pkgerrors.StackSourceLineName],
			frame[pkgerrors.StackSourceFunctionName]))
	}

	return strings.Join(stacks, "<<")
}

func send(event *zerolog.Event, msg string, fields []any) {
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}

func Error(err error, fields ...any) {
	if err == nil {
		return
	}
	send(logger.Err(err), "", fields)
}

func Debug(msg string, fields ...any) {
	send(logger.Debug(), msg, fields)
}

func Info(msg string, fields ...any) {
	send(logger.Info(), msg, fields)
}

func Warn(msg string, fields ...any) {
	send(logger.Warn(), msg, fields)
}

func Panic(anything any, fields ...any) {
	if anything == nil {
		return
	}
	switch obj := anything.(type) {
	case error:
		send(logger.Panic().Err(obj), "", fields)
	case string:
		send(logger.Panic().Err(errors.New(obj)), "", fields)
	default:
		send(logger.Panic().Err(errors.Errorf("%#v", obj)), "", fields)
	}
}

func Level() string {
	return logger.GetLevel().String()
}
