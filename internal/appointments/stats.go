package appointments

import "github.com/bencare/bencare/internal/models"

// StatusCounts tallies appointments per lifecycle state.
type StatusCounts struct {
	Scheduled int `json:"scheduled_count"`
	Pending   int `json:"pending_count"`
	Cancelled int `json:"cancelled_count"`
}

// CountByStatus walks the list once, incrementing the bucket for each known
// status. A status outside the three enumerated values lands in no bucket,
// so the bucket sum can be lower than the list length.
func CountByStatus(appts []models.AppointmentWithRelations) StatusCounts {
	var counts StatusCounts
	for _, appt := range appts {
		switch appt.Status {
		case models.StatusScheduled:
			counts.Scheduled++
		case models.StatusPending:
			counts.Pending++
		case models.StatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}
