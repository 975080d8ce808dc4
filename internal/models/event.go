package models

import "time"

// StudentEventType names a change to a student record.
type StudentEventType string

const (
	StudentCreated StudentEventType = "student.created"
	StudentUpdated StudentEventType = "student.updated"
	StudentDeleted StudentEventType = "student.deleted"
)

// StudentEvent is published after a student record changes so that clients
// can invalidate cached lists.
type StudentEvent struct {
	Type       StudentEventType `json:"type"`
	StudentID  string           `json:"studentId"`
	DisplayID  string           `json:"displayId"`
	Email      string           `json:"email"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// NewStudentEvent builds an event for s stamped with the current time.
func NewStudentEvent(t StudentEventType, s Student) StudentEvent {
	return StudentEvent{
		Type:       t,
		StudentID:  s.ID,
		DisplayID:  s.DisplayID,
		Email:      s.Email,
		OccurredAt: time.Now().UTC(),
	}
}
