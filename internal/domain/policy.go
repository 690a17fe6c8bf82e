package domain

import "math"

// AdmissionResult is the outcome of one bulk status update. Requests keep
// their input order within each list.
type AdmissionResult struct {
	Confirmed []*Request
	Rejected  []*Request
}

// DecideAdmission applies the owner's bulk status update to a batch of
// requests against the event's remaining capacity.
//
// Rules:
//   - no moderation needed (limit 0 or moderation off): the batch is a no-op,
//     requests were confirmed at submission time already;
//   - capacity already exhausted: the whole batch fails, nothing is processed;
//   - every targeted request must still be PENDING, otherwise the whole batch
//     fails;
//   - target REJECTED rejects everything;
//   - target CONFIRMED grants slots in input order until the limit is hit and
//     rejects the excess.
func DecideAdmission(ev *Event, confirmedCount int, target RequestStatus, batch []*Request) (AdmissionResult, error) {
	var res AdmissionResult

	if ev.ParticipantLimit == 0 || !ev.RequestModeration {
		return res, nil
	}

	if confirmedCount >= ev.ParticipantLimit {
		return res, ErrConflict("the participant limit for this event is already reached")
	}

	for _, r := range batch {
		if r.Status != RequestPending {
			return AdmissionResult{}, ErrConflict("only pending requests can change status")
		}
	}

	switch target {
	case RequestRejected:
		for _, r := range batch {
			r.Status = RequestRejected
			res.Rejected = append(res.Rejected, r)
		}
		return res, nil

	case RequestConfirmed:
		limit := ev.ParticipantLimit
		if limit == 0 {
			limit = math.MaxInt
		}
		for i, r := range batch {
			if confirmedCount+i < limit {
				r.Status = RequestConfirmed
				res.Confirmed = append(res.Confirmed, r)
			} else {
				r.Status = RequestRejected
				res.Rejected = append(res.Rejected, r)
			}
		}
		return res, nil

	default:
		return AdmissionResult{}, ErrValidation("target status must be CONFIRMED or REJECTED")
	}
}
