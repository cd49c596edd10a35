package gigshield

import (
	"context"
	"fmt"
	"net/http"
)

// Chat sends one chatbot turn along with prior conversation history.
func (c *Client) Chat(ctx context.Context, message string, history []ChatMessage) (*ChatReply, error) {
	if message == "" {
		return nil, fmt.Errorf("message is empty")
	}

	req := struct {
		Message             string        `json:"message"`
		ConversationHistory []ChatMessage `json:"conversation_history"`
	}{
		Message:             message,
		ConversationHistory: history,
	}
	if req.ConversationHistory == nil {
		req.ConversationHistory = []ChatMessage{}
	}

	var reply ChatReply
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat", req, &reply, true); err != nil {
		return nil, err
	}
	return &reply, nil
}
