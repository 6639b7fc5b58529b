package domain

// Identity-provider event types delivered through the webhook.
const (
	EventUserCreated = "user.created"
	EventUserDeleted = "user.deleted"
)

// IdentityEvent is a user lifecycle notification from the identity provider.
// Deliveries are at-least-once; DeliveryID is stable across redeliveries.
type IdentityEvent struct {
	DeliveryID string
	Type       string
	ExternalID string
	Emails     []string
	FirstName  string
	LastName   string
	ImageURL   string
}
