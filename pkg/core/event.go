package core

import (
	"fmt"
	"time"
)

// Action represents the type of a document life-cycle transition.
type Action string

const (
	ActionLoad   Action = "load"
	ActionUnload Action = "unload"
	ActionError  Action = "error"
	ActionUpdate Action = "update"
	ActionSave   Action = "save"
)

// Event represents one life-cycle transition applied to a single document's
// cache membership. File is nil only for the bootstrap sentinel that seeds
// an otherwise empty stream.
type Event struct {
	Action Action
	File   *Document
	Time   int64 // Unix timestamp
}

// NewEvent stamps an event with the current time.
func NewEvent(action Action, file *Document) Event {
	return Event{Action: action, File: file, Time: time.Now().Unix()}
}

func (e Event) String() string {
	if e.File == nil {
		return fmt.Sprintf("%s <nil>", e.Action)
	}
	return fmt.Sprintf("%s %s", e.Action, e.File.ID)
}

// ContentError is the structured descriptor stored as a document's content
// when the remote payload failed to parse, was missing, or was denied.
type ContentError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Content error types.
const (
	ContentErrNotFound = "File Not Found"
	ContentErrParse    = "Parse Error"
)

func (e *ContentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}
