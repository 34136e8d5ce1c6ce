// SPDX-License-Identifier: ice License 1.0

package passkey

import (
	"context"
	"io"
	"runtime"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	appcfg "github.com/ice-blockchain/credentials/config"
	"github.com/ice-blockchain/credentials/log"
	"github.com/ice-blockchain/credentials/terror"
)

// New provisions the manager together with its own execution context.
// Any failure to do so is reported as ErrRuntime and is final for this manager.
func New(applicationYAMLKey string, provider Provider) (Manager, error) {
	var cfg config
	if err := appcfg.LoadFromKey(applicationYAMLKey, &cfg); err != nil {
		return nil, terror.Wrap(ErrRuntime, err, map[string]any{"package": applicationYAMLKey})
	}

	mgr, err := newManager(applicationYAMLKey, provider, cfg.WintrPasskey.QueueSize)
	if err != nil {
		return nil, err
	}

	return mgr, nil
}

func newManager(applicationYAMLKey string, provider Provider, queueSize int) (*manager, error) {
	if provider == nil {
		return nil, terror.New(ErrRuntime, map[string]any{"package": applicationYAMLKey, "reason": "no credential provider"})
	}
	session, err := newExecutionContext(queueSize)
	if err != nil {
		return nil, errors.Wrapf(err, "[%v] failed to provision passkey execution context", applicationYAMLKey)
	}
	mgr := &manager{applicationYAMLKey: applicationYAMLKey, provider: provider, session: session}
	mgr.cleanup = runtime.AddCleanup(mgr, func(ec *executionContext) {
		if ec.close() == nil {
			log.Warn("passkey, manager dropped without Close", "package", applicationYAMLKey)
		}
	}, session)

	return mgr, nil
}

// KindOf maps err onto the passkey error taxonomy; foreign errors map to nil.
func KindOf(err error) error {
	return terror.Kind(err, ErrRuntime, ErrGenerationFailed, ErrResponseRenderingFailed, ErrChallengeResolutionFailed)
}

// StageOf reports which step of an operation failed, or "" when err did not come from one.
func StageOf(err error) Stage {
	if tErr := terror.As(err); tErr != nil {
		if stage, ok := tErr.Data["stage"].(Stage); ok {
			return stage
		}
	}

	return ""
}

func (m *manager) Close() error {
	log.Info("passkey, started shutdown", "package", m.applicationYAMLKey)
	defer log.Info("passkey, finished shutdown", "package", m.applicationYAMLKey)
	m.cleanup.Stop()
	if err := m.session.close(); err != nil {
		return errors.Wrapf(err, "[%v] failed to close passkey manager", m.applicationYAMLKey)
	}
	var errs []error
	if closer, ok := m.provider.(io.Closer); ok {
		errs = append(errs, errors.Wrap(closer.Close(), "failed to close credential provider"))
	}

	return errors.Wrapf(multierror.Append(nil, errs...).ErrorOrNil(), "[%v] failed to close passkey manager", m.applicationYAMLKey)
}

func (m *manager) CreatePasskey(domain, request string) (*CreationResult, error) {
	op := m.newOperation(operationCreatePasskey, domain)
	op.summary, _ = InspectCreationRequest(request) //nolint:errcheck // The provider is the one validating the request.
	var (
		result *CreationResult
		err    error
	)
	if runErr := m.session.run(func(ctx context.Context) {
		result, err = m.createPasskey(ctx, op, request)
	}); runErr != nil {
		return nil, op.fail(ErrRuntime, "", runErr)
	}

	return result, err
}

func (m *manager) ResolveChallenge(domain string, passkey []byte, request string) (string, error) {
	op := m.newOperation(operationResolveChallenge, domain)
	op.summary, _ = InspectAssertionRequest(request) //nolint:errcheck // The provider is the one validating the request.
	var (
		response string
		err      error
	)
	if runErr := m.session.run(func(ctx context.Context) {
		response, err = m.resolveChallenge(ctx, op, passkey, request)
	}); runErr != nil {
		return "", op.fail(ErrRuntime, "", runErr)
	}

	return response, err
}

func (m *manager) createPasskey(ctx context.Context, op *operation, request string) (*CreationResult, error) {
	generated, err := guard(func() (*GeneratedPasskey, error) {
		return m.provider.GeneratePasskeyForDomain(ctx, op.domain, request)
	})
	if err == nil && (generated == nil || len(generated.Passkey) == 0) {
		err = errors.New("credential provider returned no passkey")
	}
	if err != nil {
		return nil, op.fail(ErrGenerationFailed, StageGeneration, err)
	}
	response, err := render(generated.Responder)
	if err != nil {
		return nil, op.fail(ErrResponseRenderingFailed, StageResponseRendering, err)
	}

	return &CreationResult{
		Passkey:         generated.Passkey,
		Response:        response,
		RpName:          generated.RpName,
		UserName:        generated.UserName,
		UserDisplayName: generated.UserDisplayName,
	}, nil
}

func (m *manager) resolveChallenge(ctx context.Context, op *operation, passkey []byte, request string) (string, error) {
	resolved, err := guard(func() (Responder, error) {
		return m.provider.ResolveChallengeForDomain(ctx, op.domain, passkey, request)
	})
	if err != nil {
		return "", op.fail(ErrChallengeResolutionFailed, StageChallengeResolution, err)
	}
	response, err := render(resolved)
	if err != nil {
		return "", op.fail(ErrResponseRenderingFailed, StageResponseRendering, err)
	}

	return response, nil
}

func render(responder Responder) (string, error) {
	if responder == nil {
		return "", errors.New("credential provider returned nothing to render")
	}
	response, err := guard(responder.Response)
	if err == nil && response == "" {
		err = errors.New("credential provider rendered an empty response")
	}

	return response, err
}

// guard turns a provider panic into an error of the step that panicked.
func guard[T any](call func() (T, error)) (res T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			var zero T
			res, err = zero, errors.Errorf("credential provider panicked: %v", recovered)
		}
	}()

	return call()
}

func (m *manager) newOperation(name, domain string) *operation {
	return &operation{
		applicationYAMLKey: m.applicationYAMLKey,
		name:               name,
		id:                 uuid.NewString(),
		domain:             domain,
	}
}

// fail tags cause with its kind and stage and logs it. Logging is advisory only.
func (op *operation) fail(kind error, stage Stage, cause error) error {
	data := map[string]any{"operationId": op.id, "operation": op.name, "domain": op.domain}
	fields := []any{"operationId", op.id, "domain", op.domain}
	if stage != "" {
		data["stage"] = stage
		fields = append(fields, "stage", stage)
	}
	if op.summary != nil {
		fields = append(fields, "rpId", op.summary.RpID, "rpName", op.summary.RpName)
	}
	err := terror.Wrap(kind, cause, data)
	log.Error(errors.Wrapf(err, "[%v] %v failed", op.applicationYAMLKey, op.name), fields...)

	return err
}
