// Package access implements the access evaluator: given a customer and a
// desired download plus price variation, decide whether any of the
// customer's passes grants it, and if not, why not.
package access

import (
	"context"
	"errors"
	"fmt"

	"allaccess/internal/domain/catalog"
	"allaccess/internal/domain/pass"
	vo "allaccess/internal/domain/pass/valueobjects"
	"allaccess/internal/shared/logger"
)

// Options tune one access check. Construct with DefaultOptions; the login
// requirement is on unless explicitly waived.
type Options struct {
	RequireLogin bool

	// EnforceQuota is set only by actual download fulfillment; browsing
	// checks leave it off so a drained quota still shows the buy-free state.
	EnforceQuota bool

	// RestrictToProduct, when non-zero, only considers passes originating
	// from that product.
	RestrictToProduct uint
}

// DefaultOptions returns the standard options: login required, quota not
// enforced, no product restriction.
func DefaultOptions() Options {
	return Options{RequireLogin: true}
}

// Failure is a typed denial: the kind, the fallback message, and where
// relevant the nearest-miss pass for diagnostic display.
type Failure struct {
	Kind    FailureKind
	Message string
	Pass    *pass.Pass
}

// Result is the outcome of one check. Granted implies Pass is the winning
// grant and Failure is nil.
type Result struct {
	Granted bool
	Pass    *pass.Pass
	Failure *Failure
}

// Evaluator walks a customer's passes in storage order, most-recently-
// activated first, and grants on the first active pass whose scopes cover
// the desired download. The first match wins deterministically.
type Evaluator struct {
	lifecycle *pass.Lifecycle
	products  catalog.Repository
	customers Directory
	gate      LicenseGate
	logger    logger.Interface
}

func NewEvaluator(
	lifecycle *pass.Lifecycle,
	products catalog.Repository,
	customers Directory,
	gate LicenseGate,
	log logger.Interface,
) *Evaluator {
	return &Evaluator{
		lifecycle: lifecycle,
		products:  products,
		customers: customers,
		gate:      gate,
		logger:    log,
	}
}

// Check evaluates whether the customer may download the given product at
// the given price variation. customerID 0 means no authenticated customer.
func (e *Evaluator) Check(ctx context.Context, customerID, downloadID, priceID uint, opts Options) (*Result, error) {
	if opts.RequireLogin && customerID == 0 {
		return deny(FailureNotLoggedIn, nil), nil
	}
	if customerID == 0 {
		return deny(FailureNoCustomer, nil), nil
	}

	exists, err := e.customers.Exists(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer %d: %w", customerID, err)
	}
	if !exists {
		return deny(FailureNoCustomer, nil), nil
	}

	passes, err := e.lifecycle.CustomerPasses(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(passes) == 0 {
		return deny(FailureNoPasses, nil), nil
	}

	categories, err := e.products.ProductCategories(ctx, downloadID)
	if err != nil && !errors.Is(err, catalog.ErrProductNotFound) {
		return nil, fmt.Errorf("failed to load categories for download %d: %w", downloadID, err)
	}

	var (
		worstKind FailureKind
		worstPass *pass.Pass
	)
	miss := func(kind FailureKind, p *pass.Pass) {
		if kind.outranks(worstKind) {
			worstKind = kind
			worstPass = p
		}
	}

	for _, p := range passes {
		if opts.RestrictToProduct != 0 && p.ID().ProductID != opts.RestrictToProduct {
			continue
		}

		if p.Status() != vo.StatusActive {
			if p.Status() == vo.StatusExpired {
				miss(FailureExpired, p)
			}
			continue
		}

		params := p.Params()
		if !params.Categories.Includes(categories) {
			miss(FailureCategoryNotIncluded, p)
			continue
		}
		if !params.Variations.Covers(priceID) {
			miss(FailureVariationNotIncluded, p)
			continue
		}
		if opts.EnforceQuota && !p.HasQuotaLeft() {
			miss(FailureQuotaReached, p)
			continue
		}
		if disabled := e.licenseDisabled(ctx, p); disabled {
			miss(FailurePassDisabled, p)
			continue
		}

		return &Result{Granted: true, Pass: p}, nil
	}

	if worstKind == "" {
		worstKind = FailureNoPasses
	}
	return deny(worstKind, worstPass), nil
}

// licenseDisabled consults the gate, treating errors as disabled. A gate
// failure must never escape as a panic or a 500.
func (e *Evaluator) licenseDisabled(ctx context.Context, p *pass.Pass) bool {
	if e.gate == nil {
		return false
	}
	disabled, err := e.gate.IsDisabled(ctx, p)
	if err != nil {
		e.logger.Warnw("license gate failed, treating pass as disabled",
			"pass_id", p.ID().String(), "error", err)
		return true
	}
	return disabled
}

func deny(kind FailureKind, p *pass.Pass) *Result {
	return &Result{
		Failure: &Failure{
			Kind:    kind,
			Message: kind.DefaultMessage(),
			Pass:    p,
		},
	}
}
