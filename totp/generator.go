// SPDX-License-Identifier: ice License 1.0

package totp

import (
	"crypto/subtle"
	"math"

	"github.com/ice-blockchain/credentials/terror"
)

// GenerateToken accepts either an otpauth URI or a bare secret, which then uses the default parameters.
// A bare secret is only checked by the primitive, so a non base32 one fails with ErrGeneration.
func (t *totp) GenerateToken(input string, at uint64) (*TokenResult, error) {
	descriptor, err := descriptorFor(input)
	if err != nil {
		return nil, err
	}
	token, err := t.code(descriptor, at)
	if err != nil {
		return nil, err
	}

	return &TokenResult{
		Descriptor: descriptor,
		Token:      token,
		Timestamp:  at,
		ExpiresAt:  expiresAt(at, descriptor.Period),
	}, nil
}

func (t *totp) Verify(input string, at uint64, code string) (bool, error) {
	result, err := t.GenerateToken(input, at)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(result.Token), []byte(code)) == 1, nil
}

func descriptorFor(input string) (*Descriptor, error) {
	if looksLikeURI(input) {
		return Parse(input)
	}

	return &Descriptor{
		Secret:    canonicalSecret(input),
		Algorithm: DefaultAlgorithm,
		Digits:    DefaultDigits,
		Period:    DefaultPeriod,
	}, nil
}

func (t *totp) code(descriptor *Descriptor, at uint64) (string, error) {
	if descriptor.Secret == "" {
		return "", terror.New(ErrGeneration, map[string]any{"reason": "missing secret"})
	}
	if descriptor.Period == 0 {
		return "", terror.New(ErrInvalidPeriod, map[string]any{paramPeriod: descriptor.Period})
	}
	token, err := t.primitive.Code(string(descriptor.Secret), at/uint64(descriptor.Period), string(descriptor.Algorithm), int(descriptor.Digits))
	if err != nil {
		return "", terror.Wrap(ErrGeneration, err, map[string]any{"timestamp": at})
	}

	return token, nil
}

func expiresAt(at uint64, period uint32) uint64 {
	start := at - at%uint64(period)
	if start > math.MaxUint64-uint64(period) {
		return math.MaxUint64
	}

	return start + uint64(period)
}
