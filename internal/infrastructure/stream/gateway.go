package stream

import (
	"context"
	"fmt"
	"time"

	getstream "github.com/GetStream/getstream-go"
	chat "github.com/GetStream/stream-chat-go/v7"

	"github.com/interviewme/backend/internal/core/domain"
	"github.com/interviewme/backend/internal/core/ports"
	"github.com/interviewme/backend/internal/infrastructure/metrics"
)

// Gateway implements ports.CommunicationGateway on top of Client. Deletes
// of resources the provider no longer knows succeed, so teardown can be
// retried.
type Gateway struct {
	client *Client
}

func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) UpsertIdentity(ctx context.Context, identity ports.Identity) error {
	user := &chat.User{ID: identity.ID, Name: identity.Name, Image: identity.Image}
	return g.observe("upsert_identity", func() error {
		_, err := g.client.chat.UpsertUser(ctx, user)
		return err
	})
}

func (g *Gateway) DeleteIdentity(ctx context.Context, id string) error {
	return g.observe("delete_identity", func() error {
		_, err := g.client.chat.DeleteUser(ctx, id)
		return ignoreNotFound(err)
	})
}

func (g *Gateway) CreateCall(ctx context.Context, spec ports.CallSpec) (ports.CallRef, error) {
	req := &getstream.GetOrCreateCallRequest{
		Data: &getstream.CallRequest{
			CreatedByID: getstream.PtrTo(spec.CreatedBy),
			Custom:      spec.Custom,
		},
	}
	err := g.observe("create_call", func() error {
		_, err := g.client.video.Video().Call(spec.Type, spec.ID).GetOrCreate(ctx, req)
		return err
	})
	if err != nil {
		return ports.CallRef{}, err
	}
	return ports.CallRef{Type: spec.Type, ID: spec.ID}, nil
}

func (g *Gateway) DeleteCall(ctx context.Context, call ports.CallRef, hard bool) error {
	req := &getstream.DeleteCallRequest{Hard: getstream.PtrTo(hard)}
	return g.observe("delete_call", func() error {
		_, err := g.client.video.Video().Call(call.Type, call.ID).Delete(ctx, req)
		return ignoreNotFound(err)
	})
}

func (g *Gateway) CreateChannel(ctx context.Context, spec ports.ChannelSpec) (ports.ChannelRef, error) {
	req := &chat.ChannelRequest{
		Members:   spec.Members,
		ExtraData: map[string]interface{}{"name": spec.Name},
	}
	err := g.observe("create_channel", func() error {
		_, err := g.client.chat.CreateChannel(ctx, spec.Type, spec.ID, spec.CreatedBy, req)
		return err
	})
	if err != nil {
		return ports.ChannelRef{}, err
	}
	return ports.ChannelRef{Type: spec.Type, ID: spec.ID}, nil
}

func (g *Gateway) AddMember(ctx context.Context, channel ports.ChannelRef, memberID string) error {
	return g.observe("add_member", func() error {
		_, err := g.client.chat.Channel(channel.Type, channel.ID).AddMembers(ctx, []string{memberID})
		return err
	})
}

func (g *Gateway) DeleteChannel(ctx context.Context, channel ports.ChannelRef) error {
	return g.observe("delete_channel", func() error {
		_, err := g.client.chat.Channel(channel.Type, channel.ID).Delete(ctx)
		return ignoreNotFound(err)
	})
}

func (g *Gateway) IssueToken(identityID string) (string, error) {
	token, err := g.client.UserToken(identityID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	return token, nil
}

// observe times op and wraps its failure in domain.ErrGateway.
func (g *Gateway) observe(op string, fn func() error) error {
	start := time.Now()
	err := fn()

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.GatewayRequestDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrGateway, op, err)
	}
	return nil
}

func ignoreNotFound(err error) error {
	if IsNotFound(err) {
		return nil
	}
	return err
}
