package manifold

// MageEvent is the incident-reporting event a feed can be assigned to. Only
// the attributes this subsystem touches are modeled here; the rest of the
// event lives with its owning service.
type MageEvent struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	FeedIDs     []string `json:"feedIds"`
}
