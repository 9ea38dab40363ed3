package enums

import "fmt"

// QuotationStatus tracks a quotation through drafting and client review.
type QuotationStatus string

const (
	QuotationStatusDraft           QuotationStatus = "Draft"
	QuotationStatusPendingApproval QuotationStatus = "PendingApproval"
	QuotationStatusApproved        QuotationStatus = "Approved"
	QuotationStatusRejected        QuotationStatus = "Rejected"
)

var validQuotationStatuses = []QuotationStatus{
	QuotationStatusDraft,
	QuotationStatusPendingApproval,
	QuotationStatusApproved,
	QuotationStatusRejected,
}

// String implements fmt.Stringer.
func (q QuotationStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuotationStatus.
func (q QuotationStatus) IsValid() bool {
	for _, candidate := range validQuotationStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuotationStatus converts raw input into a QuotationStatus.
func ParseQuotationStatus(value string) (QuotationStatus, error) {
	for _, candidate := range validQuotationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quotation status %q", value)
}
