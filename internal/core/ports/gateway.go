package ports

import "context"

// Identity is the remote communication identity of a user.
type Identity struct {
	ID    string
	Name  string
	Image string
}

// CallRef addresses a remote video call.
type CallRef struct {
	Type string
	ID   string
}

// ChannelRef addresses a remote messaging channel.
type ChannelRef struct {
	Type string
	ID   string
}

// CallSpec describes a call to provision.
type CallSpec struct {
	Type      string
	ID        string
	CreatedBy string
	Custom    map[string]any
}

// ChannelSpec describes a messaging channel to provision.
type ChannelSpec struct {
	Type      string
	ID        string
	Name      string
	CreatedBy string
	Members   []string
}

// CommunicationGateway is the boundary to the real-time video/chat provider.
// Errors returned by implementations wrap domain.ErrGateway.
type CommunicationGateway interface {
	UpsertIdentity(ctx context.Context, identity Identity) error
	DeleteIdentity(ctx context.Context, id string) error

	CreateCall(ctx context.Context, spec CallSpec) (CallRef, error)
	DeleteCall(ctx context.Context, call CallRef, hard bool) error

	CreateChannel(ctx context.Context, spec ChannelSpec) (ChannelRef, error)
	AddMember(ctx context.Context, channel ChannelRef, memberID string) error
	DeleteChannel(ctx context.Context, channel ChannelRef) error

	// IssueToken signs a short-lived client credential for identityID.
	IssueToken(identityID string) (string, error)
}
