// SPDX-License-Identifier: ice License 1.0

package totp

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/ice-blockchain/credentials/terror"
)

// .
var (
	//nolint:gochecknoglobals // Immutable.
	base32Alphabet = regexp.MustCompile(`^[A-Z2-7]+$`)
)

// NewDescriptor wraps a bare secret into a descriptor with default parameters.
func NewDescriptor(secret string) (*Descriptor, error) {
	s, err := parseSecret(secret)
	if err != nil {
		return nil, err
	}

	return &Descriptor{Secret: s, Algorithm: DefaultAlgorithm, Digits: DefaultDigits, Period: DefaultPeriod}, nil
}

func (Secret) String() string {
	return redacted
}

func (Secret) GoString() string {
	return redacted
}

func (d *Descriptor) Validate() error {
	if d.Secret == "" || !base32Alphabet.MatchString(string(d.Secret)) {
		return terror.New(ErrInvalidSecret, map[string]any{"reason": "secret must be non-empty base32"})
	}
	if _, err := parseAlgorithm(string(d.Algorithm)); err != nil || d.Algorithm == "" {
		return terror.New(ErrUnsupportedAlgorithm, map[string]any{paramAlgorithm: d.Algorithm})
	}
	if d.Digits < MinDigits || d.Digits > MaxDigits {
		return terror.New(ErrInvalidDigits, map[string]any{paramDigits: d.Digits})
	}
	if d.Period == 0 {
		return terror.New(ErrInvalidPeriod, map[string]any{paramPeriod: d.Period})
	}
	if strings.TrimSpace(d.Issuer) != d.Issuer {
		return terror.New(ErrMalformedURI, map[string]any{"field": paramIssuer, "reason": "surrounding whitespace"})
	}

	return nil
}

func (d *Descriptor) HasDefaultParameters() bool {
	return d.Algorithm == DefaultAlgorithm && d.Digits == DefaultDigits && d.Period == DefaultPeriod
}

// URI renders the canonical otpauth form: every parameter is explicit and the issuer, if any, prefixes the label.
func (d *Descriptor) URI() string {
	label := escapeLabelPart(d.Label)
	if d.Issuer != "" {
		label = escapeLabelPart(d.Issuer) + labelSep + label
	}
	params := make(url.Values, 5) //nolint:mnd // Number of otpauth parameters.
	params.Set(paramSecret, string(d.Secret))
	if d.Issuer != "" {
		params.Set(paramIssuer, d.Issuer)
	}
	params.Set(paramAlgorithm, string(d.Algorithm))
	params.Set(paramDigits, strconv.FormatUint(uint64(d.Digits), 10))
	params.Set(paramPeriod, strconv.FormatUint(uint64(d.Period), 10))

	return scheme + schemeSep + otpType + "/" + label + "?" + params.Encode()
}

func escapeLabelPart(part string) string {
	return strings.ReplaceAll(url.PathEscape(part), labelSep, escapedSep)
}

// canonicalSecret drops whitespace and padding and upper-cases what is left; it does not validate.
func canonicalSecret(raw string) Secret {
	return Secret(strings.TrimRight(strings.ToUpper(strings.Join(strings.Fields(raw), "")), "="))
}

func parseSecret(raw string) (Secret, error) {
	secret := canonicalSecret(raw)
	if secret == "" {
		return "", terror.New(ErrInvalidSecret, map[string]any{"reason": "missing secret"})
	}
	if !base32Alphabet.MatchString(string(secret)) {
		return "", terror.New(ErrInvalidSecret, map[string]any{"reason": "secret is not base32"})
	}

	return secret, nil
}

func parseAlgorithm(raw string) (Algorithm, error) {
	switch Algorithm(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", ""))) {
	case "":
		return DefaultAlgorithm, nil
	case SHA1:
		return SHA1, nil
	case SHA256:
		return SHA256, nil
	case SHA512:
		return SHA512, nil
	default:
		return "", terror.New(ErrUnsupportedAlgorithm, map[string]any{paramAlgorithm: raw})
	}
}

func parseDigits(raw string) (uint8, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		return DefaultDigits, nil
	}
	digits, err := strconv.ParseUint(raw, 10, 8)
	if err != nil || uint8(digits) < MinDigits || uint8(digits) > MaxDigits {
		return 0, terror.Wrap(ErrInvalidDigits, err, map[string]any{paramDigits: raw})
	}

	return uint8(digits), nil
}

func parsePeriod(raw string) (uint32, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		return DefaultPeriod, nil
	}
	period, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || period == 0 {
		return 0, terror.Wrap(ErrInvalidPeriod, err, map[string]any{paramPeriod: raw})
	}

	return uint32(period), nil
}
