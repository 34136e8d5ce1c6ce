// SPDX-License-Identifier: ice License 1.0

package hotp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rfc6238SHA1Secret   = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
	rfc6238SHA256Secret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZA"
	rfc6238SHA512Secret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNA"
)

func TestCode_RFC6238Vectors(t *testing.T) {
	t.Parallel()
	primitive := New()
	for _, tc := range []struct {
		secret    string
		algorithm string
		expected  string
		at        uint64
	}{
		{secret: rfc6238SHA1Secret, algorithm: "SHA1", at: 59, expected: "94287082"},
		{secret: rfc6238SHA1Secret, algorithm: "SHA1", at: 1111111109, expected: "07081804"},
		{secret: rfc6238SHA1Secret, algorithm: "SHA1", at: 1234567890, expected: "89005924"},
		{secret: rfc6238SHA1Secret, algorithm: "SHA1", at: 2000000000, expected: "69279037"},
		{secret: rfc6238SHA256Secret, algorithm: "SHA256", at: 59, expected: "46119246"},
		{secret: rfc6238SHA512Secret, algorithm: "SHA512", at: 59, expected: "90693936"},
	} {
		code, err := primitive.Code(tc.secret, tc.at/30, tc.algorithm, 8)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, code, "%v at %v", tc.algorithm, tc.at)
	}
}

func TestCode_Rejections(t *testing.T) {
	t.Parallel()
	primitive := New()
	_, err := primitive.Code("JBSWY3DPEHPK3PXP", 1, "MD5", 6)
	require.Error(t, err)
	_, err = primitive.Code("JBSWY3DPEHPK3PXP", math.MaxUint64, "SHA1", 6)
	require.Error(t, err)
	_, err = primitive.Code("JBSWY3DPEHPK3PXP", 1, "SHA1", 0)
	require.Error(t, err)
	_, err = primitive.Code("NOT-BASE32!", 1, "SHA1", 6)
	require.Error(t, err)
	_, err = primitive.Code("A", 1, "SHA1", 6)
	require.Error(t, err)
	_, err = primitive.Code("", 1, "SHA1", 6)
	require.Error(t, err)
}
