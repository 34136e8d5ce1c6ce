// SPDX-License-Identifier: ice License 1.0

package passkey

import (
	"github.com/go-webauthn/webauthn/protocol"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// InspectCreationRequest reads the relying party and user of a creation request, given either as
// PublicKeyCredentialCreationOptions or wrapped in {"publicKey": ...}.
func InspectCreationRequest(request string) (*RequestSummary, error) {
	var wrapped protocol.CredentialCreation
	if err := json.Unmarshal([]byte(request), &wrapped); err == nil && wrapped.Response.RelyingParty.ID != "" {
		return creationSummary(&wrapped.Response), nil
	}
	var options protocol.PublicKeyCredentialCreationOptions
	if err := json.Unmarshal([]byte(request), &options); err != nil {
		return nil, errors.Wrap(err, "invalid passkey creation request")
	}

	return creationSummary(&options), nil
}

// InspectAssertionRequest reads the relying party of an authentication challenge, given either as
// PublicKeyCredentialRequestOptions or wrapped in {"publicKey": ...}.
func InspectAssertionRequest(request string) (*RequestSummary, error) {
	var wrapped protocol.CredentialAssertion
	if err := json.Unmarshal([]byte(request), &wrapped); err == nil && len(wrapped.Response.Challenge) > 0 {
		return assertionSummary(&wrapped.Response), nil
	}
	var options protocol.PublicKeyCredentialRequestOptions
	if err := json.Unmarshal([]byte(request), &options); err != nil {
		return nil, errors.Wrap(err, "invalid passkey assertion request")
	}

	return assertionSummary(&options), nil
}

func creationSummary(options *protocol.PublicKeyCredentialCreationOptions) *RequestSummary {
	return &RequestSummary{
		RpID:            options.RelyingParty.ID,
		RpName:          options.RelyingParty.Name,
		UserName:        options.User.Name,
		UserDisplayName: options.User.DisplayName,
	}
}

func assertionSummary(options *protocol.PublicKeyCredentialRequestOptions) *RequestSummary {
	return &RequestSummary{
		RpID:               options.RelyingPartyID,
		AllowedCredentials: len(options.AllowedCredentials),
	}
}
