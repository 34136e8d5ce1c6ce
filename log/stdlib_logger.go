// SPDX-License-Identifier: ice License 1.0
//go:build !zerolog

package log

import (
	"fmt"
	"log"
	"strings"

	"github.com/pkg/errors"

	"github.com/ice-blockchain/credentials/config"
)

// .
var (
	//nolint:gochecknoglobals // Immutable singleton.
	appCfg cfg
)

//nolint:gochecknoinits // log is global, so it's initialization can be done in init
func init() {
	log.SetFlags(log.LstdFlags | log.Lmsgprefix | log.LUTC | log.Lshortfile | log.Lmicroseconds)
	config.MustLoadFromKey(loggerYAMLKey, &appCfg)
	appCfg.Level = strings.ToLower(appCfg.Level)
}

func Error(err error, fields ...any) {
	if err == nil {
		return
	}
	printf(levelError, err.Error(), fields)
}

func Debug(msg string, fields ...any) {
	printf(levelDebug, msg, fields)
}

func Info(msg string, fields ...any) {
	printf(levelInfo, msg, fields)
}

func Warn(msg string, fields ...any) {
	printf(levelWarn, msg, fields)
}

func Panic(anything any, fields ...any) {
	if anything == nil {
		return
	}
	defer func() {
		panic(anything)
	}()
	switch obj := anything.(type) {
	case error:
		Error(obj, fields...)
	case string:
		Error(errors.New(obj), fields...)
	default:
		Error(errors.Errorf("%#v", obj), fields...)
	}
}

func Level() string {
	return appCfg.Level
}

// printf renders fields as key=value pairs after the message; a dangling key is printed alone.
func printf(level, msg string, fields []any) {
	if severity(level) < severity(appCfg.Level) {
		return
	}
	var sb strings.Builder
	sb.WriteString(strings.ToUpper(level))
	sb.WriteString(":")
	sb.WriteString(msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			fmt.Fprintf(&sb, " %v", fields[i])

			break
		}
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	log.Output(3, sb.String()) //nolint:errcheck,mnd // Nothing to do if stderr is gone; 3 skips printf and its caller.
}
