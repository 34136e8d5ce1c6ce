// SPDX-License-Identifier: ice License 1.0

package totp

import (
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/ice-blockchain/credentials/terror"
)

func (*totp) Parse(uri string) (*Descriptor, error) {
	return Parse(uri)
}

// Parse reads an otpauth://totp URI. Tolerated deviations: surrounding whitespace, any letter case in the
// scheme, type and parameter names, a missing "//", stray '%' characters in the label, an issuer prefix
// encoded as %3A, and empty parameter values, which fall back to the defaults.
// A parameter given under several spellings takes the lower case one, then the first in sorted order.
func Parse(uri string) (*Descriptor, error) {
	u, err := parseURL(uri)
	if err != nil {
		return nil, err
	}
	params := lowerCaseParams(u.Query())
	secret, err := parseSecret(params[paramSecret])
	if err != nil {
		return nil, err
	}
	algorithm, err := parseAlgorithm(params[paramAlgorithm])
	if err != nil {
		return nil, err
	}
	digits, err := parseDigits(params[paramDigits])
	if err != nil {
		return nil, err
	}
	period, err := parsePeriod(params[paramPeriod])
	if err != nil {
		return nil, err
	}
	issuer, label := parseLabel(u.EscapedPath(), strings.TrimSpace(params[paramIssuer]))

	return &Descriptor{
		Secret:    secret,
		Label:     label,
		Issuer:    issuer,
		Algorithm: algorithm,
		Digits:    digits,
		Period:    period,
	}, nil
}

func looksLikeURI(input string) bool {
	return strings.Contains(strings.ToLower(input), scheme)
}

func parseURL(uri string) (*url.URL, error) {
	u, err := url.Parse(escapeStrayPercents(strings.TrimSpace(uri)))
	if err != nil {
		return nil, malformed(err, "unparsable URI")
	}
	if !strings.EqualFold(u.Scheme, scheme) {
		return nil, malformed(nil, "unsupported scheme")
	}
	if u.Opaque != "" {
		if u, err = url.Parse(scheme + schemeSep + u.Opaque + "?" + u.RawQuery); err != nil {
			return nil, malformed(err, "unparsable URI")
		}
	}
	if !strings.EqualFold(u.Host, otpType) {
		return nil, malformed(nil, "unsupported OTP type")
	}

	return u, nil
}

// malformed never keeps the URI itself, since it carries the secret.
func malformed(cause error, reason string) error {
	var urlErr *url.Error
	if errors.As(cause, &urlErr) {
		cause = urlErr.Err
	}

	return terror.Wrap(ErrMalformedURI, cause, map[string]any{"reason": reason})
}

// escapeStrayPercents turns every '%' that does not start a valid escape into "%25".
func escapeStrayPercents(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for ix := 0; ix < len(raw); ix++ {
		if raw[ix] == '%' && (ix+2 >= len(raw) || !isHex(raw[ix+1]) || !isHex(raw[ix+2])) {
			sb.WriteString("%25")

			continue
		}
		sb.WriteByte(raw[ix])
	}

	return sb.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func lowerCaseParams(values url.Values) map[string]string {
	keys := slices.Sorted(maps.Keys(values))
	params := make(map[string]string, len(values))
	for _, key := range keys {
		if vals := values[key]; len(vals) > 0 && key == strings.ToLower(key) {
			params[key] = vals[0]
		}
	}
	for _, key := range keys {
		lower := strings.ToLower(key)
		if _, found := params[lower]; !found && len(values[key]) > 0 {
			params[lower] = values[key][0]
		}
	}

	return params
}

func parseLabel(escapedPath, issuerParam string) (issuer, label string) {
	escapedLabel := strings.TrimPrefix(escapedPath, "/")
	prefix, account, hasPrefix := strings.Cut(escapedLabel, labelSep)
	if !hasPrefix {
		account = unescapeLabelPart(escapedLabel)
		if issuerParam != "" && strings.HasPrefix(account, issuerParam+labelSep) {
			account = strings.TrimPrefix(account, issuerParam+labelSep)
		}

		return issuerParam, account
	}
	if issuerParam == "" {
		issuerParam = strings.TrimSpace(unescapeLabelPart(prefix))
	}

	return issuerParam, unescapeLabelPart(account)
}

func unescapeLabelPart(part string) string {
	if unescaped, err := url.PathUnescape(part); err == nil {
		return unescaped
	}

	return part
}
