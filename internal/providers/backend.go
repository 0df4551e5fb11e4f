package providers

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/aws/smithy-go"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
)

// Client is the per-provider backend. Credentials are opaque to callers;
// only the implementation for the matching provider reads them.
type Client interface {
	// FetchCosts returns the cost records in [start, end], both days inclusive.
	FetchCosts(ctx context.Context, creds provider.Credentials, start, end time.Time) ([]cost.Record, error)
	FetchResources(ctx context.Context, creds provider.Credentials) ([]resource.Resource, error)
	FetchBudgets(ctx context.Context, creds provider.Credentials) ([]cost.Budget, error)
	TestConnection(ctx context.Context, creds provider.Credentials) (bool, error)
}

// PrimaryClient is the backend tried first for a provider.
type PrimaryClient interface {
	Client
}

// FallbackClient is the backend tried when the primary fails.
type FallbackClient interface {
	Client
}

// Backends is the primary and fallback pair wired for one provider.
// Fallback may be nil, in which case a primary failure yields the zero value.
type Backends struct {
	Primary  PrimaryClient
	Fallback FallbackClient
}

// Options controls which backends NewBackends wires.
type Options struct {
	// LocalDataDir holds <provider>.yaml snapshots read by the local backend.
	LocalDataDir string
	// LiveEnabled makes the vendor SDK clients primary, with the local backend
	// as fallback. When false the local backend is primary and there is no fallback.
	LiveEnabled bool
}

// NewBackends wires a backend pair for every known provider.
func NewBackends(opts Options, log *logger.Logger) map[provider.ID]Backends {
	local := NewLocalClient(opts.LocalDataDir, log)
	out := make(map[provider.ID]Backends, len(provider.Known()))
	for _, id := range provider.Known() {
		if !opts.LiveEnabled {
			out[id] = Backends{Primary: local.For(id)}
			continue
		}
		var live PrimaryClient
		switch id {
		case provider.AWS:
			live = NewAWSClient(log)
		case provider.Azure:
			live = NewAzureClient(log)
		case provider.GCP:
			live = NewGCPClient(log)
		}
		out[id] = Backends{Primary: live, Fallback: local.For(id)}
	}
	return out
}

// classify wraps a vendor SDK error as an authorization error or a transient
// API error so logs can tell the two apart.
func classify(id provider.ID, err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.ProviderAPIError(id.String(), err)
	}
	if isAuthError(err) {
		return errors.ProviderAuthError(id.String(), err)
	}
	return errors.ProviderAPIError(id.String(), err)
}

var awsAuthCodes = map[string]bool{
	"AccessDenied":                true,
	"AccessDeniedException":       true,
	"AuthFailure":                 true,
	"ExpiredToken":                true,
	"ExpiredTokenException":       true,
	"InvalidClientTokenId":        true,
	"SignatureDoesNotMatch":       true,
	"UnauthorizedOperation":       true,
	"UnrecognizedClientException": true,
}

func isAuthError(err error) bool {
	var awsErr smithy.APIError
	if stderrors.As(err, &awsErr) {
		return awsAuthCodes[awsErr.ErrorCode()]
	}
	var azErr *azcore.ResponseError
	if stderrors.As(err, &azErr) {
		return isAuthStatus(azErr.StatusCode)
	}
	var gErr *googleapi.Error
	if stderrors.As(err, &gErr) {
		return isAuthStatus(gErr.Code)
	}
	var apiErr *apierror.APIError
	if stderrors.As(err, &apiErr) {
		return isAuthStatus(apiErr.HTTPCode())
	}
	return false
}

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// keepValid drops records that fail validation, logging each one.
func keepValid(records []cost.Record, log *logger.Logger) []cost.Record {
	out := records[:0:0]
	for _, r := range records {
		if err := r.Validate(); err != nil {
			log.WarnWithErr(err, "Dropping malformed cost record")
			continue
		}
		out = append(out, r)
	}
	return out
}

func nonEmpty(v string, def string) string {
	if v == "" {
		return def
	}
	return v
}
