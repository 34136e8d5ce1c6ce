// SPDX-License-Identifier: ice License 1.0

package terror

// Public API.

type (
	// Err pairs an error kind with the cause that produced it and diagnostic data.
	// Data must never contain secret material.
	Err struct {
		error
		Cause error          `json:"-"`
		Data  map[string]any `json:"data,omitempty"`
	}
)
