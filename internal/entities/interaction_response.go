package entities

type ResponseKind int

const (
	// ReplyPrivate answers only the requester.
	ReplyPrivate ResponseKind = iota
	// UpdateView replaces the requester's roster message in place.
	UpdateView
)

// InteractionResponse is what a handled event renders back to the requester.
type InteractionResponse struct {
	Kind    ResponseKind
	Content string
	Roster  *RosterView
	// Announcement, when set, is published after the requester has been answered.
	Announcement string
}

// Requester identifies who triggered an event.
type Requester struct {
	UserID string
	Admin  bool
}
