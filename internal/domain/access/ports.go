package access

import (
	"context"

	"allaccess/internal/domain/pass"
)

// Directory is the port to the customer store; the evaluator only needs to
// know whether a customer record exists.
type Directory interface {
	Exists(ctx context.Context, customerID uint) (bool, error)
}

// LicenseGate is the port to the licensing integration. A gate error is
// treated as "disabled" at the evaluator boundary rather than propagated,
// so a flaky integration denies access instead of breaking the request.
type LicenseGate interface {
	IsDisabled(ctx context.Context, p *pass.Pass) (bool, error)
}
