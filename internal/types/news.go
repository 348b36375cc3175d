package types

import "time"

// Region partitions stored news.
type Region string

const (
	RegionUnitedStates Region = "UNITED_STATES"
	RegionGlobal       Region = "GLOBAL"
)

// Article is one stored news item.
type Article struct {
	ID          string    `json:"id" validate:"required,uuid"`
	PublishedAt time.Time `json:"published_at" validate:"required"`
	Author      string    `json:"author,omitempty"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Content     string    `json:"content,omitempty"`
	URL         string    `json:"url" validate:"required,url"`
	Source      string    `json:"source"`
	Image       string    `json:"image,omitempty"`
	Category    string    `json:"category"`
	Language    string    `json:"language"`
	Country     string    `json:"country"`
	Region      Region    `json:"region" validate:"required,oneof=UNITED_STATES GLOBAL"`
	Date        string    `json:"date" validate:"required,datetime=2006-01-02"`
}

// EventKind names a notification.
type EventKind string

const (
	EventPositionOpened EventKind = "POSITION_OPENED"
	EventPositionClosed EventKind = "POSITION_CLOSED"
	EventCycleFailed    EventKind = "CYCLE_FAILED"
)

// Event is a notification payload.
type Event struct {
	Kind      EventKind `json:"kind"`
	Epic      string    `json:"epic"`
	Direction Direction `json:"direction,omitempty"`
	Size      float64   `json:"size,omitempty"`
	Reference string    `json:"reference,omitempty"`
	Message   string    `json:"message,omitempty"`
	Time      time.Time `json:"time"`
}
