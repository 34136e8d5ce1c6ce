// SPDX-License-Identifier: ice License 1.0

package fixture

import (
	"context"
	"encoding/base64"
	"sync"
	stdlibtime "time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ice-blockchain/credentials/passkey"
)

const publicKeyType = "public-key"

func NewProvider() *Provider {
	return &Provider{mx: new(sync.Mutex)}
}

func (p *Provider) GeneratePasskeyForDomain(_ context.Context, domain, request string) (*passkey.GeneratedPasskey, error) {
	defer p.enter(OperationGenerate, domain)()
	if p.PanicAt == passkey.StageGeneration {
		panic("generation exploded")
	}
	if p.GenerateErr != nil {
		return nil, p.GenerateErr
	}
	summary, err := passkey.InspectCreationRequest(request)
	if err != nil {
		return nil, errors.Wrapf(err, "can't generate passkey for %v", domain)
	}
	credentialID := uuid.New()
	generated := &passkey.GeneratedPasskey{
		Responder: &responder{provider: p, payload: &creationPayload{
			ID:     base64.RawURLEncoding.EncodeToString(credentialID[:]),
			Type:   publicKeyType,
			RpID:   summary.RpID,
			Domain: domain,
		}},
		RpName:          summary.RpName,
		UserName:        summary.UserName,
		UserDisplayName: summary.UserDisplayName,
	}
	if !p.EmptyPasskey {
		generated.Passkey = credentialID[:]
	}

	return generated, nil
}

func (p *Provider) ResolveChallengeForDomain(
	_ context.Context, domain string, credential []byte, request string,
) (passkey.Responder, error) {
	defer p.enter(OperationResolve, domain)()
	if p.PanicAt == passkey.StageChallengeResolution {
		panic("challenge resolution exploded")
	}
	if p.ResolveErr != nil {
		return nil, p.ResolveErr
	}
	if len(credential) == 0 {
		return nil, errors.Errorf("no passkey to resolve the challenge for %v with", domain)
	}
	summary, err := passkey.InspectAssertionRequest(request)
	if err != nil {
		return nil, errors.Wrapf(err, "can't resolve challenge for %v", domain)
	}

	return &responder{provider: p, payload: &assertionPayload{
		ID:        base64.RawURLEncoding.EncodeToString(credential),
		Type:      publicKeyType,
		RpID:      summary.RpID,
		Domain:    domain,
		Signature: base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString())),
	}}, nil
}

func (r *responder) Response() (string, error) {
	defer r.provider.enter(OperationRender, "")()
	if r.provider.PanicAt == passkey.StageResponseRendering {
		panic("rendering exploded")
	}
	if r.provider.RenderErr != nil {
		return "", r.provider.RenderErr
	}
	if r.provider.EmptyRender {
		return "", nil
	}
	bytes, err := json.Marshal(r.payload)
	if err != nil {
		return "", errors.Wrapf(err, "failed to marshal %#v", r.payload)
	}

	return string(bytes), nil
}

func (p *Provider) Close() error {
	p.mx.Lock()
	defer p.mx.Unlock()
	if p.closed {
		return errors.New("provider already closed")
	}
	p.closed = true

	return p.CloseErr
}

// Calls returns every call received so far, in the order they started.
func (p *Provider) Calls() []Call {
	p.mx.Lock()
	defer p.mx.Unlock()

	return append(make([]Call, 0, len(p.calls)), p.calls...)
}

// MaxConcurrency is the highest number of provider calls ever observed running at the same time.
func (p *Provider) MaxConcurrency() int {
	p.mx.Lock()
	defer p.mx.Unlock()

	return p.maxInFlight
}

func (p *Provider) Closed() bool {
	p.mx.Lock()
	defer p.mx.Unlock()

	return p.closed
}

func (p *Provider) enter(operation, domain string) (exit func()) {
	p.mx.Lock()
	p.calls = append(p.calls, Call{Operation: operation, Domain: domain})
	p.inFlight++
	if p.inFlight > p.maxInFlight {
		p.maxInFlight = p.inFlight
	}
	p.mx.Unlock()
	if p.Delay > 0 {
		stdlibtime.Sleep(p.Delay)
	}

	return func() {
		p.mx.Lock()
		p.inFlight--
		p.mx.Unlock()
	}
}
