// SPDX-License-Identifier: ice License 1.0

package totp

import (
	"strings"

	"github.com/ice-blockchain/credentials/terror"
)

// URIForEditing presents a URI carrying nothing but a secret as that bare secret,
// any other parsable URI in canonical form, and anything else trimmed but untouched.
func (*totp) URIForEditing(originalURI string) string {
	trimmed := strings.TrimSpace(originalURI)
	descriptor, err := Parse(trimmed)
	if err != nil {
		return trimmed
	}
	if descriptor.HasDefaultParameters() && descriptor.Label == "" && descriptor.Issuer == "" {
		return string(descriptor.Secret)
	}

	return descriptor.URI()
}

// URIForSaving accepts any edit of the display metadata and parameters, but never a change of a
// well-formed original secret. Clearing the edited text removes the TOTP and yields "".
func (*totp) URIForSaving(originalURI, editedURI string) (string, error) {
	edited := strings.TrimSpace(editedURI)
	if edited == "" {
		return "", nil
	}
	original, _ := Parse(originalURI) //nolint:errcheck // A broken original only loses its label and issuer.
	var descriptor *Descriptor
	if looksLikeURI(edited) {
		var err error
		if descriptor, err = Parse(edited); err != nil {
			return "", err
		}
	} else {
		var err error
		if descriptor, err = NewDescriptor(edited); err != nil {
			return "", err
		}
		if original != nil {
			descriptor.Label, descriptor.Issuer = original.Label, original.Issuer
		}
	}
	if originalSecret, wellFormed := lenientSecret(originalURI); wellFormed && originalSecret != descriptor.Secret {
		return "", terror.Wrap(ErrEditRejected, ErrSecretMismatch, map[string]any{"field": paramSecret})
	}

	return descriptor.URI(), nil
}

// lenientSecret extracts a well-formed secret from either a URI whose other parameters may be broken or a bare secret.
func lenientSecret(original string) (Secret, bool) {
	original = strings.TrimSpace(original)
	if original == "" {
		return "", false
	}
	raw := original
	if looksLikeURI(original) {
		u, err := parseURL(original)
		if err != nil {
			return "", false
		}
		raw = lowerCaseParams(u.Query())[paramSecret]
	}
	secret, err := parseSecret(raw)

	return secret, err == nil
}
