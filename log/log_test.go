// SPDX-License-Identifier: ice License 1.0

package log

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, levelDebug, Level())
}

func TestSeverity(t *testing.T) {
	t.Parallel()
	assert.Less(t, severity(levelDebug), severity(levelInfo))
	assert.Less(t, severity(levelInfo), severity(levelWarn))
	assert.Less(t, severity(levelWarn), severity(levelError))
	assert.Equal(t, severity(levelInfo), severity("bogus"))
}

func TestLogging(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		Error(nil)
		Error(errors.New("bogus"), "domain", "example.com")
		Debug("bogus", "dangling")
		Info("bogus")
		Warn("bogus", "a", 1, "b", 2)
		Panic(nil)
	})
	assert.Panics(t, func() { Panic("bogus") })
}
