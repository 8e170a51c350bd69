package service

// EventType defines the type of event
type EventType string

const (
	EventCompanyCreated EventType = "company_created"
	EventCompanyDeleted EventType = "company_deleted"
	EventOfficeCreated  EventType = "office_created"
	EventOfficeDeleted  EventType = "office_deleted"
	EventGroupCreated   EventType = "group_created"
	EventGroupDeleted   EventType = "group_deleted"
	EventHostCreated    EventType = "host_created"
	EventHostDeleted    EventType = "host_deleted"
)

// Event is published after a mutation has been committed
type Event struct {
	Type EventType `json:"type"`
	// Key identifies the entity, e.g. "Acme/Austin/roadrunner"
	Key     string      `json:"key"`
	Payload interface{} `json:"payload,omitempty"`
}

// EventBus allows publishing and subscribing to events
type EventBus struct {
	subscribers []chan<- Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Event, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.subscribers = append(eb.subscribers, ch)
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	if eb == nil {
		return
	}
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}
