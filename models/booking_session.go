package models

import "time"

// Booking session outcomes.
const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionAbandoned  = "abandoned"
)

// BookingSession records a visitor's progress through the booking funnel.
// Created at funnel start, patched on each step transition, and swept by the
// periodic finalizer once it has been idle too long.
type BookingSession struct {
	SessionID    string    `bson:"sessionId" json:"sessionId"`
	FlowType     string    `bson:"flowType" json:"flowType"` // e.g. "standard", "member", "consult".
	LocationKey  string    `bson:"locationKey" json:"locationKey"`
	MemberID     string    `bson:"memberId,omitempty" json:"memberId,omitempty"`
	ServiceSlug  string    `bson:"serviceSlug,omitempty" json:"serviceSlug,omitempty"`
	StaffID      string    `bson:"staffId,omitempty" json:"staffId,omitempty"`
	ContactEmail string    `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	ContactPhone string    `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	MaxStep      int       `bson:"maxStep" json:"maxStep"` // Highest funnel step reached.
	StepsVisited []int     `bson:"stepsVisited,omitempty" json:"stepsVisited,omitempty"`
	AbandonStep  *int      `bson:"abandonStep,omitempty" json:"abandonStep,omitempty"`
	Outcome      string    `bson:"outcome" json:"outcome"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"` // Last activity; drives the stale sweep.
}

// BookingSessionUpdate carries the patchable subset of a session. Only these
// fields can be written after creation; anything else in a request is dropped.
type BookingSessionUpdate struct {
	Outcome      *string `json:"outcome,omitempty"`
	AbandonStep  *int    `json:"abandonStep,omitempty"`
	MaxStep      *int    `json:"maxStep,omitempty"`
	StepVisited  *int    `json:"stepVisited,omitempty"`
	ServiceSlug  *string `json:"serviceSlug,omitempty"`
	StaffID      *string `json:"staffId,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
}
