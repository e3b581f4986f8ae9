package domain

// EventKind identifies a watcher notification. Created, Deleted and Modified
// double as the names of the aggregator's slots.
type EventKind uint8

const (
	// EventChange carries the combined change set of one flush.
	EventChange EventKind = iota
	// EventCreated carries paths that appeared.
	EventCreated
	// EventDeleted carries paths that disappeared.
	EventDeleted
	// EventModified carries paths whose content changed.
	EventModified
	// EventError carries an enumeration failure.
	EventError
)

// EventKinds lists every kind in emission order.
var EventKinds = []EventKind{EventChange, EventCreated, EventDeleted, EventModified, EventError}

func (k EventKind) String() string {
	switch k {
	case EventChange:
		return "change"
	case EventCreated:
		return "created"
	case EventDeleted:
		return "deleted"
	case EventModified:
		return "modified"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// ChangeSet is the payload of a change event. Slices are sorted and never nil.
type ChangeSet struct {
	Created  []string `json:"created"`
	Deleted  []string `json:"deleted"`
	Modified []string `json:"modified"`
}

// IsEmpty reports whether the change set carries no paths.
func (c ChangeSet) IsEmpty() bool {
	return len(c.Created) == 0 && len(c.Deleted) == 0 && len(c.Modified) == 0
}

// Event is a single notification delivered to subscribers.
type Event interface {
	Kind() EventKind
	isEvent()
}

// ChangeEvent is emitted once per flush, before any per-kind event.
type ChangeEvent struct {
	Change ChangeSet
}

// Kind implements Event.
func (ChangeEvent) Kind() EventKind { return EventChange }
func (ChangeEvent) isEvent()        {}

// PathsEvent is emitted for a non-empty created, deleted or modified list.
type PathsEvent struct {
	EventKind EventKind
	Paths     []string
}

// Kind implements Event.
func (e PathsEvent) Kind() EventKind { return e.EventKind }
func (PathsEvent) isEvent()          {}

// ErrorEvent is emitted when a poll round fails.
type ErrorEvent struct {
	Err error
}

// Kind implements Event.
func (ErrorEvent) Kind() EventKind { return EventError }
func (ErrorEvent) isEvent()        {}
