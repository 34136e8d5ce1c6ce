// SPDX-License-Identifier: ice License 1.0

package fixture

import (
	"sync"
	stdlibtime "time"

	"github.com/ice-blockchain/credentials/passkey"
)

const (
	OperationGenerate = "generate"
	OperationResolve  = "resolve"
	OperationRender   = "render"
)

type (
	// Provider is an in-memory passkey.Provider. Configure it before handing it to passkey.New.
	Provider struct {
		GenerateErr  error
		ResolveErr   error
		RenderErr    error
		CloseErr     error
		PanicAt      passkey.Stage
		EmptyPasskey bool
		EmptyRender  bool
		Delay        stdlibtime.Duration

		mx          *sync.Mutex
		calls       []Call
		inFlight    int
		maxInFlight int
		closed      bool
	}
	Call struct {
		Operation string
		Domain    string
	}
)

type (
	responder struct {
		provider *Provider
		payload  any
	}
	creationPayload struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		RpID   string `json:"rpId"`
		Domain string `json:"domain"`
	}
	assertionPayload struct {
		ID        string `json:"id"`
		Type      string `json:"type"`
		RpID      string `json:"rpId"`
		Domain    string `json:"domain"`
		Signature string `json:"signature"`
	}
)
