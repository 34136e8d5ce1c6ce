// SPDX-License-Identifier: ice License 1.0

package internal

type (
	// Primitive computes the HMAC based one time code for a counter.
	// The secret is canonical base32 and algorithm is one of SHA1, SHA256, SHA512.
	Primitive interface {
		Code(secret string, counter uint64, algorithm string, digits int) (string, error)
	}
)
