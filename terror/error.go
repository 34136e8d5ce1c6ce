// SPDX-License-Identifier: ice License 1.0

package terror

import (
	"github.com/pkg/errors"
)

func New(kind error, data map[string]any) *Err {
	return &Err{error: kind, Data: data}
}

func Wrap(kind, cause error, data map[string]any) *Err {
	return &Err{error: kind, Cause: cause, Data: data}
}

func As(err error) *Err {
	var tErr *Err
	if errors.As(err, &tErr) {
		return tErr
	}

	return nil
}

// Kind returns the first of kinds that err matches, or nil.
func Kind(err error, kinds ...error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}

func (e *Err) Error() string {
	if e.Cause == nil {
		return e.error.Error()
	}

	return e.error.Error() + ": " + e.Cause.Error()
}

func (e *Err) Is(er error) bool {
	return errors.Is(er, e.error)
}

func (e *Err) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.error}
	}

	return []error{e.error, e.Cause}
}
