package access

// FailureKind identifies why access was denied. Collaborators render
// different UX (messages, redirect URLs) per kind; the defaults below are
// the core-supplied fallback text.
type FailureKind string

const (
	FailureNotLoggedIn          FailureKind = "not_logged_in"
	FailureNoCustomer           FailureKind = "no_customer"
	FailureNoPasses             FailureKind = "no_passes"
	FailureCategoryNotIncluded  FailureKind = "category_not_included"
	FailureVariationNotIncluded FailureKind = "price_variation_not_included"
	FailureExpired              FailureKind = "expired"
	FailureQuotaReached         FailureKind = "quota_reached"
	FailurePassDisabled         FailureKind = "pass_disabled"
)

// failurePriority orders kinds for reporting when several passes fail for
// different reasons; the lowest value wins.
var failurePriority = map[FailureKind]int{
	FailureNotLoggedIn:          0,
	FailureNoCustomer:           1,
	FailureNoPasses:             2,
	FailureCategoryNotIncluded:  3,
	FailureVariationNotIncluded: 4,
	FailureExpired:              5,
	FailureQuotaReached:         6,
	FailurePassDisabled:         7,
}

// outranks reports whether k should be reported over other.
func (k FailureKind) outranks(other FailureKind) bool {
	if other == "" {
		return true
	}
	return failurePriority[k] < failurePriority[other]
}

// DefaultMessage returns the core-supplied fallback text for the kind.
func (k FailureKind) DefaultMessage() string {
	switch k {
	case FailureNotLoggedIn:
		return "You must be logged in to download this file."
	case FailureNoCustomer:
		return "No customer record was found for your account."
	case FailureNoPasses:
		return "You do not have an All Access Pass."
	case FailureCategoryNotIncluded:
		return "Your pass does not include this product's category."
	case FailureVariationNotIncluded:
		return "Your pass does not include this price option."
	case FailureExpired:
		return "Your pass has expired."
	case FailureQuotaReached:
		return "You have reached your download limit for this period."
	case FailurePassDisabled:
		return "Your pass has been disabled."
	default:
		return "Access denied."
	}
}
