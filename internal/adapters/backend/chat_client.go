package backend

import (
	"context"
	"net/http"

	"weatherdash.app/internal/core/chat"
	"weatherdash.app/internal/ports"
)

// ChatClient performs a single question/answer exchange; nothing is streamed.
type ChatClient struct {
	transport ports.Transport
}

func NewChatClient(transport ports.Transport) *ChatClient {
	return &ChatClient{transport: transport}
}

func (c *ChatClient) Chat(ctx context.Context, req chat.Request) (*chat.Response, error) {
	var out chat.Response
	if err := c.transport.Send(ctx, ports.Request{Method: http.MethodPost, Path: pathChat, Body: req}, &out); err != nil {
		return nil, err
	}
	if out.References == nil {
		out.References = []string{}
	}
	return &out, nil
}
