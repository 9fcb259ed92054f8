package mocks

import (
	"context"

	"github.com/soltree-games/scorekeeper/internal/platform"
)

// MockHistorySource is a simple mock for the platform history source
type MockHistorySource struct {
	ChannelsFunc func(ctx context.Context) ([]platform.Channel, error)
	MessagesFunc func(ctx context.Context, channel platform.Channel) ([]platform.Message, error)

	MessageCalls []string
}

func (m *MockHistorySource) Channels(ctx context.Context) ([]platform.Channel, error) {
	if m.ChannelsFunc != nil {
		return m.ChannelsFunc(ctx)
	}
	return nil, nil
}

func (m *MockHistorySource) Messages(ctx context.Context, channel platform.Channel) ([]platform.Message, error) {
	m.MessageCalls = append(m.MessageCalls, channel.Name)
	if m.MessagesFunc != nil {
		return m.MessagesFunc(ctx, channel)
	}
	return nil, nil
}

// MockRosterSource is a simple mock for the platform member source
type MockRosterSource struct {
	MembersFunc func(ctx context.Context) ([]platform.Member, error)
}

func (m *MockRosterSource) Members(ctx context.Context) ([]platform.Member, error) {
	if m.MembersFunc != nil {
		return m.MembersFunc(ctx)
	}
	return nil, nil
}
