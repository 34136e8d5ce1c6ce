// SPDX-License-Identifier: ice License 1.0

package totp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credtesting "github.com/ice-blockchain/credentials/testing"
)

const (
	testSecret = "JBSWY3DPEHPK3PXP"
	testURI    = "otpauth://totp/Example:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Example&digits=6&period=30"
)

func TestParse(t *testing.T) {
	t.Parallel()
	descriptor, err := New().Parse(testURI)
	require.NoError(t, err)
	assert.Equal(t, &Descriptor{
		Secret:    testSecret,
		Label:     "alice@example.com",
		Issuer:    "Example",
		Algorithm: SHA1,
		Digits:    6,
		Period:    30,
	}, descriptor)
	require.NoError(t, descriptor.Validate())
	assert.True(t, descriptor.HasDefaultParameters())
	assert.Equal(t,
		"otpauth://totp/Example:alice@example.com?algorithm=SHA1&digits=6&issuer=Example&period=30&secret=JBSWY3DPEHPK3PXP",
		descriptor.URI())
}

func TestParse_AllParameters(t *testing.T) {
	t.Parallel()
	descriptor, err := Parse("otpauth://totp/ACME%20Co:john.doe%40email.com?secret=HXDMVJECJJWSRB3HWIZR4IFUGFTMXBOZ&issuer=ACME%20Co&algorithm=SHA256&digits=8&period=60")
	require.NoError(t, err)
	assert.Equal(t, &Descriptor{
		Secret:    "HXDMVJECJJWSRB3HWIZR4IFUGFTMXBOZ",
		Label:     "john.doe@email.com",
		Issuer:    "ACME Co",
		Algorithm: SHA256,
		Digits:    8,
		Period:    60,
	}, descriptor)
	assert.False(t, descriptor.HasDefaultParameters())
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()
	descriptor, err := Parse("otpauth://totp/alice?secret=" + testSecret)
	require.NoError(t, err)
	assert.Equal(t, &Descriptor{Secret: testSecret, Label: "alice", Algorithm: SHA1, Digits: 6, Period: 30}, descriptor)

	descriptor, err = Parse("otpauth://totp?secret=" + testSecret + "&digits=&period=&algorithm=")
	require.NoError(t, err)
	assert.Equal(t, &Descriptor{Secret: testSecret, Algorithm: SHA1, Digits: 6, Period: 30}, descriptor)
}

func TestParse_Leniency(t *testing.T) {
	t.Parallel()
	expected := &Descriptor{
		Secret:    testSecret,
		Label:     "alice@example.com",
		Issuer:    "Example",
		Algorithm: SHA512,
		Digits:    6,
		Period:    30,
	}
	for _, uri := range []string{
		"  otpauth://totp/Example:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Example&algorithm=SHA512 \n",
		"OTPAUTH://TOTP/Example:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Example&algorithm=sha512",
		"otpauth:totp/Example:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Example&algorithm=SHA-512",
		"otpauth://totp/Example%3Aalice%40example.com?secret=JBSWY3DPEHPK3PXP&issuer=Example&algorithm=SHA512",
		"otpauth://totp/Example:alice@example.com?secret=jbsw%20y3dp%20ehpk%203pxp&issuer=Example&algorithm=SHA512",
		"otpauth://totp/Example:alice@example.com?Secret=JBSWY3DPEHPK3PXP%3D%3D%3D%3D&ISSUER=Example&algorithm=SHA512",
		"otpauth://totp/Example:alice@example.com?secret=JBSWY3DPEHPK3PXP&algorithm=SHA512",
	} {
		descriptor, err := Parse(uri)
		require.NoError(t, err, uri)
		assert.Equal(t, expected, descriptor, uri)
	}
}

func TestParse_PartiallyEncodedLabel(t *testing.T) {
	t.Parallel()
	descriptor, err := Parse("otpauth://totp/My Bank:100%sure%2Ftoday?secret=" + testSecret)
	require.NoError(t, err)
	assert.Equal(t, "My Bank", descriptor.Issuer)
	assert.Equal(t, "100%sure/today", descriptor.Label)

	descriptor, err = Parse("otpauth://totp/Other:alice?secret=" + testSecret + "&issuer=Example")
	require.NoError(t, err)
	assert.Equal(t, "Example", descriptor.Issuer)
	assert.Equal(t, "alice", descriptor.Label)
}

func TestParse_StrayPercents(t *testing.T) {
	t.Parallel()
	for uri, label := range map[string]string{
		"otpauth://totp/al%%41?secret=" + testSecret:  "al%A",
		"otpauth://totp/al%%zz?secret=" + testSecret:  "al%%zz",
		"otpauth://totp/al%4%41?secret=" + testSecret: "al%4A",
		"otpauth://totp/al%?secret=" + testSecret:     "al%",
	} {
		descriptor, err := Parse(uri)
		require.NoError(t, err, uri)
		assert.Equal(t, label, descriptor.Label, uri)
	}
}

func TestParse_CaseVariantParameters(t *testing.T) {
	t.Parallel()
	const otherSecret = "HXDMVJECJJWSRB3HWIZR4IFUGFTMXBOZ"
	for _, tc := range []struct {
		uri    string
		secret Secret
	}{
		{uri: "otpauth://totp/a?secret=" + testSecret + "&SECRET=" + otherSecret, secret: testSecret},
		{uri: "otpauth://totp/a?SECRET=" + otherSecret + "&secret=" + testSecret, secret: testSecret},
		{uri: "otpauth://totp/a?Secret=" + testSecret + "&SECRET=" + otherSecret, secret: otherSecret},
	} {
		for range 50 {
			descriptor, err := Parse(tc.uri)
			require.NoError(t, err)
			require.Equal(t, tc.secret, descriptor.Secret)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		kind error
		uri  string
	}{
		{uri: "", kind: ErrMalformedURI},
		{uri: testSecret, kind: ErrMalformedURI},
		{uri: "https://totp/a?secret=" + testSecret, kind: ErrMalformedURI},
		{uri: "otpauth://hotp/a?secret=" + testSecret, kind: ErrMalformedURI},
		{uri: "otpauth://totp/a", kind: ErrInvalidSecret},
		{uri: "otpauth://totp/a?issuer=Example", kind: ErrInvalidSecret},
		{uri: "otpauth://totp/a?secret=", kind: ErrInvalidSecret},
		{uri: "otpauth://totp/a?secret=NOT-BASE32!", kind: ErrInvalidSecret},
		{uri: "otpauth://totp/a?secret=JBSWY3DPEHPK3PX1", kind: ErrInvalidSecret},
		{uri: "otpauth://totp/a?secret=" + testSecret + "&algorithm=MD5", kind: ErrUnsupportedAlgorithm},
		{uri: "otpauth://totp/a?secret=" + testSecret + "&digits=0", kind: ErrInvalidDigits},
		{uri: "otpauth://totp/a?secret=" + testSecret + "&digits=-6", kind: ErrInvalidDigits},
		{uri: "otpauth://totp/a?secret=" + testSecret + "&digits=5", kind: ErrInvalidDigits},
		{uri: "otpauth://totp/a?secret=" + testSecret + "&digits=11", kind: ErrInvalidDigits},
		{uri: "otpauth://totp/a?secret=" + testSecret + "&digits=six", kind: ErrInvalidDigits},
		{uri: "otpauth://totp/a?secret=" + testSecret + "&digits=300", kind: ErrInvalidDigits},
		{uri: "otpauth://totp/a?secret=" + testSecret + "&period=0", kind: ErrInvalidPeriod},
		{uri: "otpauth://totp/a?secret=" + testSecret + "&period=-30", kind: ErrInvalidPeriod},
		{uri: "otpauth://totp/a?secret=" + testSecret + "&period=thirty", kind: ErrInvalidPeriod},
		{uri: "otpauth://totp/a?secret=" + testSecret + "&period=5000000000", kind: ErrInvalidPeriod},
	} {
		descriptor, err := Parse(tc.uri)
		assert.Nil(t, descriptor, tc.uri)
		credtesting.RequireKind(t, err, tc.kind, testSecret)
		assert.Equal(t, tc.kind, KindOf(err), tc.uri)
	}
}

func TestParse_IsPure(t *testing.T) {
	t.Parallel()
	first, err1 := Parse(testURI)
	second, err2 := Parse(testURI)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)

	_, err1 = Parse("otpauth://totp/a?secret=" + testSecret + "&digits=0")
	_, err2 = Parse("otpauth://totp/a?secret=" + testSecret + "&digits=0")
	assert.Equal(t, err1.Error(), err2.Error())
}

func TestDescriptor_RoundTrip(t *testing.T) {
	t.Parallel()
	for _, descriptor := range []*Descriptor{
		{Secret: testSecret, Label: "alice@example.com", Issuer: "Example", Algorithm: SHA1, Digits: 6, Period: 30},
		{Secret: testSecret, Label: "alice", Algorithm: SHA256, Digits: 8, Period: 60},
		{Secret: testSecret, Issuer: "Example", Algorithm: SHA512, Digits: 10, Period: 1},
		{Secret: testSecret, Algorithm: SHA1, Digits: 7, Period: 90},
		{Secret: testSecret, Label: "a:b/c d?e&f=g%h", Issuer: "Is:su/er & Co", Algorithm: SHA1, Digits: 6, Period: 30},
		{Secret: testSecret, Label: "Example:alice", Issuer: "Example", Algorithm: SHA1, Digits: 6, Period: 30},
		{Secret: "HXDMVJECJJWSRB3HWIZR4IFUGFTMXBOZ", Label: "ünïcödé", Issuer: "日本", Algorithm: SHA1, Digits: 6, Period: 30},
		{Secret: testSecret, Label: " alice ", Issuer: "Example", Algorithm: SHA1, Digits: 6, Period: 30},
	} {
		require.NoError(t, descriptor.Validate())
		parsed, err := Parse(descriptor.URI())
		require.NoError(t, err, descriptor.URI())
		assert.Equal(t, descriptor, parsed, descriptor.URI())
	}

	padded := &Descriptor{Secret: testSecret, Label: "alice", Issuer: " Example ", Algorithm: SHA1, Digits: 6, Period: 30}
	credtesting.RequireKind(t, padded.Validate(), ErrMalformedURI, testSecret)
	parsed, err := Parse(padded.URI())
	require.NoError(t, err)
	require.NoError(t, parsed.Validate())
	assert.Equal(t, "Example", parsed.Issuer)
	reparsed, err := Parse(parsed.URI())
	require.NoError(t, err)
	assert.Equal(t, parsed, reparsed)

	parsed, err = Parse("otpauth://totp/%20Example%20:alice?secret=" + testSecret)
	require.NoError(t, err)
	assert.Equal(t, "Example", parsed.Issuer)
	require.NoError(t, parsed.Validate())
}

func TestDescriptor_Validate(t *testing.T) {
	t.Parallel()
	valid := Descriptor{Secret: testSecret, Algorithm: SHA1, Digits: 6, Period: 30}
	for kind, mutate := range map[error]func(*Descriptor){
		ErrInvalidSecret:        func(d *Descriptor) { d.Secret = "" },
		ErrUnsupportedAlgorithm: func(d *Descriptor) { d.Algorithm = "MD5" },
		ErrInvalidDigits:        func(d *Descriptor) { d.Digits = 0 },
		ErrInvalidPeriod:        func(d *Descriptor) { d.Period = 0 },
		ErrMalformedURI:         func(d *Descriptor) { d.Issuer = "Example\n" },
	} {
		descriptor := valid
		mutate(&descriptor)
		credtesting.RequireKind(t, descriptor.Validate(), kind)
	}
	emptyAlgorithm := valid
	emptyAlgorithm.Algorithm = ""
	credtesting.RequireKind(t, emptyAlgorithm.Validate(), ErrUnsupportedAlgorithm)
}

func TestDescriptor_SecretIsNeverPrinted(t *testing.T) {
	t.Parallel()
	descriptor, err := NewDescriptor(" jbsw y3dp ehpk 3pxp== ")
	require.NoError(t, err)
	assert.Equal(t, Secret(testSecret), descriptor.Secret)
	for _, format := range []string{"%v", "%+v", "%#v", "%s"} {
		assert.NotContains(t, fmt.Sprintf(format, descriptor), testSecret, format)
		assert.NotContains(t, fmt.Sprintf(format, *descriptor), testSecret, format)
	}
	credtesting.AssertJSONRoundTrip(t, descriptor, `{"algorithm":"SHA1","period":30,"digits":6}`)

	_, err = NewDescriptor("   ")
	credtesting.RequireKind(t, err, ErrInvalidSecret)
}
