package lifecycle

import "marketplace/internal/app/ds"

// transitions is the legal-edge table. Machine.run refuses any edge missing
// here; ConfirmPayment (PENDING_PAYMENT -> NEW) and Pool.Accept (NEW -> MATCHED)
// write their single edge with a status guard instead. NEW -> NEW is ClosePool.
var transitions = map[ds.RequestStatus][]ds.RequestStatus{
	ds.StatusPendingPayment: {ds.StatusNew, ds.StatusCancelled, ds.StatusDisputed},
	ds.StatusNew:            {ds.StatusNew, ds.StatusMatched, ds.StatusCancelled, ds.StatusDisputed},
	ds.StatusMatched:        {ds.StatusMatched, ds.StatusInProgress, ds.StatusCancelled, ds.StatusDisputed},
	ds.StatusInProgress:     {ds.StatusReviewClient, ds.StatusCancelled, ds.StatusDisputed},
	ds.StatusReviewClient:   {ds.StatusReviewAdmin, ds.StatusCancelled, ds.StatusDisputed},
	ds.StatusReviewAdmin:    {ds.StatusCompleted, ds.StatusCancelled, ds.StatusDisputed},
	ds.StatusDisputed: {
		ds.StatusPendingPayment, ds.StatusNew, ds.StatusMatched, ds.StatusInProgress,
		ds.StatusReviewClient, ds.StatusReviewAdmin, ds.StatusCompleted, ds.StatusCancelled,
	},
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to ds.RequestStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func statusIn(s ds.RequestStatus, set []ds.RequestStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

var nonTerminal = []ds.RequestStatus{
	ds.StatusPendingPayment, ds.StatusNew, ds.StatusMatched, ds.StatusInProgress,
	ds.StatusReviewClient, ds.StatusReviewAdmin, ds.StatusDisputed,
}
