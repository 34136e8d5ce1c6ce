// SPDX-License-Identifier: ice License 1.0

package hotp

import (
	"crypto/sha1" //nolint:gosec // RFC 6238 default.
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base32"
	"math"

	"github.com/pkg/errors"
	"github.com/xlzd/gotp"

	"github.com/ice-blockchain/credentials/totp/internal"
)

type (
	gotpPrimitive struct{}
)

// .
var (
	//nolint:gochecknoglobals // Immutable lookup table.
	hashers = map[string]*gotp.Hasher{
		"SHA1":   {HashName: "sha1", Digest: sha1.New},
		"SHA256": {HashName: "sha256", Digest: sha256.New},
		"SHA512": {HashName: "sha512", Digest: sha512.New},
	}
)

func New() internal.Primitive {
	return &gotpPrimitive{}
}

func (*gotpPrimitive) Code(secret string, counter uint64, algorithm string, digits int) (code string, err error) {
	hasher, found := hashers[algorithm]
	if !found {
		return "", errors.Errorf("unsupported algorithm %q", algorithm)
	}
	if counter > math.MaxInt {
		return "", errors.Errorf("counter %v overflows", counter)
	}
	if digits <= 0 {
		return "", errors.Errorf("invalid digits %v", digits)
	}
	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	if err != nil {
		return "", errors.Wrap(err, "secret is not valid base32")
	}
	if len(key) == 0 {
		return "", errors.New("empty secret")
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			code, err = "", errors.Errorf("otp generation panicked: %v", recovered)
		}
	}()

	return gotp.NewHOTP(secret, digits, hasher).At(int(counter)), nil
}
