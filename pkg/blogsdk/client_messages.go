package blogsdk

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) SendMessage(ctx context.Context, receiverID int64, content string) (*SentMessage, error) {
	req := SendMessageRequest{ReceiverID: receiverID, Content: content}
	if err := Validate(req); err != nil {
		return nil, err
	}

	var out SentMessage
	if err := c.doJSON(ctx, http.MethodPost, "/auth/messages", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Conversation returns the messages exchanged with userID, oldest first.
func (c *Client) Conversation(ctx context.Context, userID int64) ([]Message, error) {
	var out []Message
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/auth/messages/conversation/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	var out []Conversation
	if err := c.doJSON(ctx, http.MethodGet, "/auth/messages/conversations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkConversationRead(ctx context.Context, userID int64) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/auth/messages/read/%d", userID), struct{}{}, nil)
}

func (c *Client) UnreadMessageCount(ctx context.Context) (int64, error) {
	var out int64
	err := c.doJSON(ctx, http.MethodGet, "/auth/messages/unread-count", nil, &out)
	return out, err
}

func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/auth/messages/%d", id), nil, nil)
}
