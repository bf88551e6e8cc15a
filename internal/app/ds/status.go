package ds

// RequestStatus is the lifecycle position of a Request.
type RequestStatus string

const (
	StatusPendingPayment RequestStatus = "PENDING_PAYMENT"
	StatusNew            RequestStatus = "NEW"
	StatusMatched        RequestStatus = "MATCHED"
	StatusInProgress     RequestStatus = "IN_PROGRESS"
	StatusReviewClient   RequestStatus = "REVIEW_CLIENT"
	StatusReviewAdmin    RequestStatus = "REVIEW_ADMIN"
	StatusCompleted      RequestStatus = "COMPLETED"
	StatusCancelled      RequestStatus = "CANCELLED"
	StatusDisputed       RequestStatus = "DISPUTED"
)

// Terminal reports whether no further normal-flow transition leaves s.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Visibility controls who may see and claim a Request. It is independent of status.
type Visibility string

const (
	VisibilityAdmin    Visibility = "ADMIN"
	VisibilityAssigned Visibility = "ASSIGNED"
	VisibilityOpen     Visibility = "OPEN"
)

type InviteStatus string

const (
	InviteInvited  InviteStatus = "INVITED"
	InviteAccepted InviteStatus = "ACCEPTED"
	InviteDeclined InviteStatus = "DECLINED"
)

type PayoutStatus string

const (
	PayoutPending  PayoutStatus = "PENDING"
	PayoutApproved PayoutStatus = "APPROVED"
	PayoutRejected PayoutStatus = "REJECTED"
)

type ShareType string

const (
	SharePercentage ShareType = "PERCENTAGE"
	ShareFixed      ShareType = "FIXED"
)

type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

type InvoiceStatus string

const (
	InvoiceIssued InvoiceStatus = "ISSUED"
)
