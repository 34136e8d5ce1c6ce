// SPDX-License-Identifier: ice License 1.0

package testing

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/goccy/go-reflect"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RequireKind asserts that err is of the given kind and that its text does not leak any of the secrets.
func RequireKind(tb testing.TB, err, kind error, secrets ...string) {
	tb.Helper()
	require.Error(tb, err)
	require.Truef(tb, errors.Is(err, kind), "expected %q, got %q", kind, err)
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		require.NotContains(tb, err.Error(), secret)
		require.NotContains(tb, MustMarshal(tb, err), secret)
	}
}

// AssertJSONRoundTrip asserts that obj marshals to expectedJSON and that unmarshalling expectedJSON
// yields obj with its `json:"-"` fields zeroed.
func AssertJSONRoundTrip[OBJ any](tb testing.TB, obj *OBJ, expectedJSON string) {
	tb.Helper()
	compacted := new(bytes.Buffer)
	require.NoError(tb, json.Compact(compacted, []byte(expectedJSON)))
	assert.Equal(tb, compacted.String(), MustMarshal(tb, obj))
	zeroValueIgnoredFields(obj)
	assert.EqualValues(tb, obj, MustUnmarshal[OBJ](tb, expectedJSON))
}

func zeroValueIgnoredFields(val any) {
	vType := reflect.TypeOf(val).Elem()
	vValue := reflect.ValueOf(val).Elem()
	for ix := range vType.NumField() {
		field := vType.Field(ix)
		if field.PkgPath != "" {
			continue
		}
		if field.Tag.Get("json") == "-" {
			vValue.Field(ix).Set(reflect.Zero(field.Type))

			continue
		}
		switch vValue.Field(ix).Kind() { //nolint:exhaustive // Only nested structs matter.
		case reflect.Struct:
			zeroValueIgnoredFields(vValue.Field(ix).Addr().Interface())
		case reflect.Ptr:
			if !vValue.Field(ix).IsNil() && vValue.Field(ix).Elem().Kind() == reflect.Struct {
				zeroValueIgnoredFields(vValue.Field(ix).Interface())
			}
		}
	}
}

func MustMarshal(tb testing.TB, val any) string {
	tb.Helper()
	valueBytes, err := json.MarshalContext(context.Background(), val)
	require.NoError(tb, err)

	return string(valueBytes)
}

func MustUnmarshal[T any](tb testing.TB, val string) *T {
	tb.Helper()
	tt := new(T)
	require.NoError(tb, json.UnmarshalContext(context.Background(), []byte(val), tt))

	return tt
}
