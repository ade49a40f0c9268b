package pass

import (
	"time"

	vo "allaccess/internal/domain/pass/valueobjects"
)

// PassActivatedEvent fires when a grant is written to the customer registry
// and flagged active, for both fresh activations and renewals.
type PassActivatedEvent struct {
	PassID     vo.PassID
	CustomerID uint
	Renewal    bool
	StartTime  time.Time
	Timestamp  time.Time
}

func NewPassActivatedEvent(id vo.PassID, customerID uint, renewal bool, startTime time.Time) *PassActivatedEvent {
	return &PassActivatedEvent{
		PassID:     id,
		CustomerID: customerID,
		Renewal:    renewal,
		StartTime:  startTime,
		Timestamp:  time.Now(),
	}
}

func (e *PassActivatedEvent) GetEventType() string {
	return "pass.activated"
}

func (e *PassActivatedEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

func (e *PassActivatedEvent) GetAggregateID() string {
	return e.PassID.String()
}

// RenewalQueuedEvent fires when a purchase lands behind a still-active
// occupant of the same key and is queued for takeover at expiry.
type RenewalQueuedEvent struct {
	OccupantID vo.PassID
	OrderID    uint
	CustomerID uint
	Timestamp  time.Time
}

func NewRenewalQueuedEvent(occupantID vo.PassID, orderID, customerID uint) *RenewalQueuedEvent {
	return &RenewalQueuedEvent{
		OccupantID: occupantID,
		OrderID:    orderID,
		CustomerID: customerID,
		Timestamp:  time.Now(),
	}
}

func (e *RenewalQueuedEvent) GetEventType() string {
	return "pass.renewal_queued"
}

func (e *RenewalQueuedEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

func (e *RenewalQueuedEvent) GetAggregateID() string {
	return e.OccupantID.String()
}

// PassExpiredEvent fires when the sticky expired flag is written for a key.
type PassExpiredEvent struct {
	PassID     vo.PassID
	CustomerID uint
	Timestamp  time.Time
}

func NewPassExpiredEvent(id vo.PassID, customerID uint) *PassExpiredEvent {
	return &PassExpiredEvent{
		PassID:     id,
		CustomerID: customerID,
		Timestamp:  time.Now(),
	}
}

func (e *PassExpiredEvent) GetEventType() string {
	return "pass.expired"
}

func (e *PassExpiredEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

func (e *PassExpiredEvent) GetAggregateID() string {
	return e.PassID.String()
}

// PassUpgradedEvent fires when a grant is superseded by a higher one.
type PassUpgradedEvent struct {
	FromPassID vo.PassID
	ToPassID   vo.PassID
	CustomerID uint
	Timestamp  time.Time
}

func NewPassUpgradedEvent(fromID, toID vo.PassID, customerID uint) *PassUpgradedEvent {
	return &PassUpgradedEvent{
		FromPassID: fromID,
		ToPassID:   toID,
		CustomerID: customerID,
		Timestamp:  time.Now(),
	}
}

func (e *PassUpgradedEvent) GetEventType() string {
	return "pass.upgraded"
}

func (e *PassUpgradedEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

func (e *PassUpgradedEvent) GetAggregateID() string {
	return e.FromPassID.String()
}

// PassStatusChangedEvent fires whenever a recomputation yields a different
// status than the previously cached value on the in-memory instance. Cache
// layers subscribe to it for invalidation.
type PassStatusChangedEvent struct {
	PassID     vo.PassID
	CustomerID uint
	OldStatus  vo.PassStatus
	NewStatus  vo.PassStatus
	Timestamp  time.Time
}

func NewPassStatusChangedEvent(id vo.PassID, customerID uint, oldStatus, newStatus vo.PassStatus) *PassStatusChangedEvent {
	return &PassStatusChangedEvent{
		PassID:     id,
		CustomerID: customerID,
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		Timestamp:  time.Now(),
	}
}

func (e *PassStatusChangedEvent) GetEventType() string {
	return "pass.status_changed"
}

func (e *PassStatusChangedEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

func (e *PassStatusChangedEvent) GetAggregateID() string {
	return e.PassID.String()
}

// QuotaResetEvent fires when the downloads-used counter rolls over at a
// quota-period boundary.
type QuotaResetEvent struct {
	PassID     vo.PassID
	CustomerID uint
	ResetTo    time.Time
	Timestamp  time.Time
}

func NewQuotaResetEvent(id vo.PassID, customerID uint, resetTo time.Time) *QuotaResetEvent {
	return &QuotaResetEvent{
		PassID:     id,
		CustomerID: customerID,
		ResetTo:    resetTo,
		Timestamp:  time.Now(),
	}
}

func (e *QuotaResetEvent) GetEventType() string {
	return "pass.quota_reset"
}

func (e *QuotaResetEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

func (e *QuotaResetEvent) GetAggregateID() string {
	return e.PassID.String()
}

// DownloadRecordedEvent fires when a fulfilled download is attributed to a
// grant and its counter incremented.
type DownloadRecordedEvent struct {
	PassID        vo.PassID
	CustomerID    uint
	DownloadsUsed int
	Timestamp     time.Time
}

func NewDownloadRecordedEvent(id vo.PassID, customerID uint, downloadsUsed int) *DownloadRecordedEvent {
	return &DownloadRecordedEvent{
		PassID:        id,
		CustomerID:    customerID,
		DownloadsUsed: downloadsUsed,
		Timestamp:     time.Now(),
	}
}

func (e *DownloadRecordedEvent) GetEventType() string {
	return "pass.download_recorded"
}

func (e *DownloadRecordedEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

func (e *DownloadRecordedEvent) GetAggregateID() string {
	return e.PassID.String()
}
