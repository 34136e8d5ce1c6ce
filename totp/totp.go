// SPDX-License-Identifier: ice License 1.0

package totp

import (
	"github.com/ice-blockchain/credentials/terror"
	"github.com/ice-blockchain/credentials/totp/internal"
	"github.com/ice-blockchain/credentials/totp/internal/hotp"
)

func New() TOTP {
	return newTOTP(hotp.New())
}

func newTOTP(primitive internal.Primitive) TOTP {
	return &totp{primitive: primitive}
}

// KindOf maps err onto the TOTP error taxonomy; foreign errors map to nil.
func KindOf(err error) error {
	return terror.Kind(err,
		ErrMalformedURI,
		ErrInvalidSecret,
		ErrUnsupportedAlgorithm,
		ErrInvalidDigits,
		ErrInvalidPeriod,
		ErrEditRejected,
		ErrGeneration,
	)
}
