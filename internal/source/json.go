package source

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

// JSONParser parses a JSON array of {sender, body, received_at} objects.
type JSONParser struct{}

type jsonMessage struct {
	Sender     string    `json:"sender"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

// Format returns the parser name.
func (p *JSONParser) Format() string { return "json" }

// Extension returns the file extension handled.
func (p *JSONParser) Extension() string { return ".json" }

// Parse reads the array in order.
func (p *JSONParser) Parse(r io.Reader) ([]model.RawMessage, error) {
	var raw []jsonMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading JSON messages: %w", err)
	}

	msgs := make([]model.RawMessage, 0, len(raw))
	for _, m := range raw {
		msgs = append(msgs, model.RawMessage{
			Sender:     m.Sender,
			Body:       m.Body,
			ReceivedAt: m.ReceivedAt,
		})
	}
	return msgs, nil
}
