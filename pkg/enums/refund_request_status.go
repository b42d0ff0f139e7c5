package enums

import "fmt"

// RefundRequestStatus tracks a refund request through the admin review flow.
type RefundRequestStatus string

const (
	RefundRequestPending   RefundRequestStatus = "pending"
	RefundRequestApproved  RefundRequestStatus = "approved"
	RefundRequestRejected  RefundRequestStatus = "rejected"
	RefundRequestProcessed RefundRequestStatus = "processed"
)

var validRefundRequestStatuses = []RefundRequestStatus{
	RefundRequestPending,
	RefundRequestApproved,
	RefundRequestRejected,
	RefundRequestProcessed,
}

var allowedRefundTransitions = map[RefundRequestStatus][]RefundRequestStatus{
	RefundRequestPending:  {RefundRequestApproved, RefundRequestRejected},
	RefundRequestApproved: {RefundRequestProcessed},
}

// String implements fmt.Stringer.
func (s RefundRequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RefundRequestStatus.
func (s RefundRequestStatus) IsValid() bool {
	for _, candidate := range validRefundRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the review flow allows moving to next.
func (s RefundRequestStatus) CanTransitionTo(next RefundRequestStatus) bool {
	for _, candidate := range allowedRefundTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseRefundRequestStatus converts raw input into a RefundRequestStatus.
func ParseRefundRequestStatus(value string) (RefundRequestStatus, error) {
	for _, candidate := range validRefundRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid refund request status %q", value)
}
