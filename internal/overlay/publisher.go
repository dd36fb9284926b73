package overlay

// Publisher is the fire-and-forget transport the engine side publishes
// projections through. Zero or more listeners, unordered best-effort
// delivery, no acknowledgment.
type Publisher interface {
	Publish(p Projection)
}

// NopPublisher drops every projection. Used by tests and by tools that
// mutate state without a display surface attached.
type NopPublisher struct{}

func (NopPublisher) Publish(Projection) {}
