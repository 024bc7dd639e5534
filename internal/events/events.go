// Package events fans catalog changes out to live subscribers.
package events

import (
	"fmt"
	"time"
)

// EventType names a change that subscribers can observe
type EventType string

const (
	EventCommentCreated EventType = "comment.created"
	EventCommentDeleted EventType = "comment.deleted"
)

// Event is one message on a film's live feed
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	FilmID    string      `json:"filmId"`
	Source    string      `json:"source"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Publisher delivers events to whoever follows a film
type Publisher interface {
	Publish(event Event)
}

// NewCommentEvent creates a comment event for filmID. data is the comment
// for creations and {"id": ...} for deletions.
func NewCommentEvent(eventType EventType, filmID string, data interface{}) Event {
	now := time.Now()
	return Event{
		ID:        fmt.Sprintf("comment-%d", now.UnixNano()),
		Type:      eventType,
		FilmID:    filmID,
		Source:    "module:comments",
		Data:      data,
		Timestamp: now,
	}
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
