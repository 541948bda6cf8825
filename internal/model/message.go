package model

import (
	"fmt"
	"time"
)

// RawMessage is one SMS as delivered by the message source.
type RawMessage struct {
	Sender     string
	Body       string
	ReceivedAt time.Time
}

func (m RawMessage) String() string {
	return fmt.Sprintf("[%s] %s: %s", m.ReceivedAt.Format("2006-01-02 15:04:05"), m.Sender, m.Body)
}
