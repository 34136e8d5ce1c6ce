// SPDX-License-Identifier: ice License 1.0

package passkey

import (
	"context"
	"io"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// Public API.

const (
	StageGeneration          Stage = "generation"
	StageChallengeResolution Stage = "challenge_resolution"
	StageResponseRendering   Stage = "response_rendering"
)

var (
	ErrRuntime                   = errors.New("passkey execution context unavailable")
	ErrGenerationFailed          = errors.New("passkey generation failed")
	ErrResponseRenderingFailed   = errors.New("passkey response rendering failed")
	ErrChallengeResolutionFailed = errors.New("passkey challenge resolution failed")
)

type (
	Stage          string
	CreationResult struct {
		Response        string `json:"response"`
		RpName          string `json:"rpName"`
		UserName        string `json:"userName"`
		UserDisplayName string `json:"userDisplayName"`
		Passkey         []byte `json:"passkey"`
	}
	// RequestSummary is the non secret part of a WebAuthn request, used for diagnostics.
	RequestSummary struct {
		RpID               string `json:"rpId,omitempty"`
		RpName             string `json:"rpName,omitempty"`
		UserName           string `json:"userName,omitempty"`
		UserDisplayName    string `json:"userDisplayName,omitempty"`
		AllowedCredentials int    `json:"allowedCredentials,omitempty"`
	}

	// Responder renders the protocol response of a finished provider operation; rendering may fail on its own.
	Responder interface {
		Response() (string, error)
	}
	GeneratedPasskey struct {
		Responder
		RpName          string
		UserName        string
		UserDisplayName string
		Passkey         []byte
	}
	// Provider is the external credential provider. Its calls may take arbitrarily long;
	// they are always invoked from the manager's execution context, one at a time.
	Provider interface {
		GeneratePasskeyForDomain(ctx context.Context, domain, request string) (*GeneratedPasskey, error)
		ResolveChallengeForDomain(ctx context.Context, domain string, passkey []byte, request string) (Responder, error)
	}

	// Manager blocks every caller until its operation has been driven to completion.
	// There is no cancellation: a provider call that never returns blocks its caller forever.
	// Close releases the execution context; a manager dropped without Close releases it once garbage collected.
	Manager interface {
		io.Closer
		CreatePasskey(domain, request string) (*CreationResult, error)
		ResolveChallenge(domain string, passkey []byte, request string) (string, error)
	}
)

// Private API.

const (
	operationCreatePasskey    = "create_passkey"
	operationResolveChallenge = "resolve_challenge"
)

type (
	manager struct {
		provider           Provider
		session            *executionContext
		applicationYAMLKey string
		cleanup            runtime.Cleanup
	}
	executionContext struct {
		ctx     context.Context //nolint:containedctx // It is the lifetime of the execution context itself.
		cancel  context.CancelFunc
		tasks   chan task
		stopped chan struct{}
		mx      *sync.RWMutex
		closed  bool
	}
	task      func(ctx context.Context)
	operation struct {
		summary            *RequestSummary
		name               string
		id                 string
		domain             string
		applicationYAMLKey string
	}
	config struct {
		WintrPasskey struct {
			QueueSize int `yaml:"queueSize" mapstructure:"queueSize"`
		} `yaml:"wintr/passkey" mapstructure:"wintr/passkey"` //nolint:tagliatelle // Nope.
	}
)
