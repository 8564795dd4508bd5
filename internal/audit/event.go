package audit

// DeletedTag is the version tag the versioning library writes for destroyed records.
const DeletedTag = "deleted"

// Event is what happened to a record in one version.
type Event int

const (
	EventUpdated Event = iota
	EventCreated
	EventDeleted
)

// ClassifyEvent maps a version number and tag to an Event.
// The first version is always a creation, whatever its tag.
func ClassifyEvent(number int, tag string) Event {
	switch {
	case number == 1:
		return EventCreated
	case tag == DeletedTag:
		return EventDeleted
	default:
		return EventUpdated
	}
}

func (e Event) String() string {
	switch e {
	case EventCreated:
		return "created"
	case EventDeleted:
		return "deleted"
	default:
		return "updated"
	}
}

// MarshalText renders the event as its name in JSON.
func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
