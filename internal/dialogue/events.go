package dialogue

// EventKind classifies the payload of one inbound transport event.
type EventKind string

const (
	KindText     EventKind = "text"
	KindLocation EventKind = "location"
	KindOther    EventKind = "other"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Event is one inbound chat event as delivered by the transport.
type Event struct {
	ConversationID int64     `json:"conversation_id"`
	Kind           EventKind `json:"kind"`
	Text           string    `json:"text,omitempty"`
	Location       *Location `json:"location,omitempty"`

	// Display name fields as reported by the platform, used on first contact.
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Reply is one outbound message, delivered in emission order.
type Reply struct {
	ConversationID int64  `json:"conversation_id"`
	Text           string `json:"text"`
}
