// SPDX-License-Identifier: ice License 1.0

package totp

import (
	"github.com/pkg/errors"

	"github.com/ice-blockchain/credentials/totp/internal"
)

// Public API.

const (
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA512 Algorithm = "SHA512"

	DefaultAlgorithm        = SHA1
	DefaultDigits    uint8  = 6
	DefaultPeriod    uint32 = 30
	MinDigits        uint8  = 6
	MaxDigits        uint8  = 10
)

var (
	ErrMalformedURI         = errors.New("malformed TOTP URI")
	ErrInvalidSecret        = errors.New("invalid TOTP secret")
	ErrUnsupportedAlgorithm = errors.New("unsupported TOTP algorithm")
	ErrInvalidDigits        = errors.New("invalid TOTP digits")
	ErrInvalidPeriod        = errors.New("invalid TOTP period")
	ErrEditRejected         = errors.New("TOTP edit rejected")
	ErrGeneration           = errors.New("TOTP token generation failed")

	// ErrSecretMismatch is the reason attached to ErrEditRejected when an edit changes the secret.
	ErrSecretMismatch = errors.New("edited secret does not match the original secret")
)

type (
	Algorithm string
	// Secret is a canonical base32 shared secret. It never prints its value.
	Secret     string
	Descriptor struct {
		Label     string    `json:"label,omitempty"`
		Issuer    string    `json:"issuer,omitempty"`
		Algorithm Algorithm `json:"algorithm"`
		Secret    Secret    `json:"-"`
		Period    uint32    `json:"period"`
		Digits    uint8     `json:"digits"`
	}
	TokenResult struct {
		Descriptor *Descriptor `json:"descriptor"`
		Token      string      `json:"token"`
		Timestamp  uint64      `json:"timestamp"`
		ExpiresAt  uint64      `json:"expiresAt"`
	}

	Parser interface {
		Parse(uri string) (*Descriptor, error)
	}
	Sanitizer interface {
		// URIForEditing never fails: unparsable input is handed back trimmed.
		URIForEditing(originalURI string) string
		URIForSaving(originalURI, editedURI string) (string, error)
	}
	Generator interface {
		GenerateToken(input string, at uint64) (*TokenResult, error)
	}
	Verifier interface {
		Verify(input string, at uint64, code string) (bool, error)
	}
	TOTP interface {
		Parser
		Sanitizer
		Generator
		Verifier
	}
)

// Private API.

const (
	scheme     = "otpauth"
	schemeSep  = "://"
	otpType    = "totp"
	labelSep   = ":"
	redacted   = "[REDACTED]"
	escapedSep = "%3A"

	paramSecret    = "secret"
	paramIssuer    = "issuer"
	paramAlgorithm = "algorithm"
	paramDigits    = "digits"
	paramPeriod    = "period"
)

type (
	totp struct {
		primitive internal.Primitive
	}
)
