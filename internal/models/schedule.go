package models

// ScheduleStatus is the lifecycle state of a booked activity.
type ScheduleStatus string

const (
	SchedulePending   ScheduleStatus = "PENDING"
	ScheduleOngoing   ScheduleStatus = "ONGOING"
	ScheduleCompleted ScheduleStatus = "COMPLETED"
	ScheduleCanceled  ScheduleStatus = "CANCELED"
)

// Valid reports whether s is a known status.
func (s ScheduleStatus) Valid() bool {
	switch s {
	case SchedulePending, ScheduleOngoing, ScheduleCompleted, ScheduleCanceled:
		return true
	}
	return false
}

type Schedule struct {
	ID           string         `json:"id"`
	ActivityID   string         `json:"activityId"`
	Activity     *Activity      `json:"activity,omitempty"`
	Date         string         `json:"date"`
	Participants *int           `json:"participants,omitempty"`
	Status       ScheduleStatus `json:"status"`
	CreatedAt    string         `json:"createdAt,omitempty"`
	UpdatedAt    string         `json:"updatedAt,omitempty"`
}

// ScheduleUpdate is the partial update payload.
type ScheduleUpdate struct {
	Date         string         `json:"date,omitempty"`
	Participants *int           `json:"participants,omitempty"`
	Status       ScheduleStatus `json:"status,omitempty"`
}
