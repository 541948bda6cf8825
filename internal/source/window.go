package source

import (
	"sort"
	"strings"
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

// Window narrows an inbox to the messages worth parsing: those from known
// senders, received since a cutoff, capped to the newest MaxMessages.
// Zero values disable each bound.
type Window struct {
	Senders     []string
	Since       time.Time
	MaxMessages int
}

// Apply returns the selected messages oldest first. msgs is not modified.
func (w Window) Apply(msgs []model.RawMessage) []model.RawMessage {
	allowed := make(map[string]bool, len(w.Senders))
	for _, s := range w.Senders {
		allowed[strings.ToLower(strings.TrimSpace(s))] = true
	}

	out := make([]model.RawMessage, 0, len(msgs))
	for _, m := range msgs {
		if len(allowed) > 0 && !allowed[strings.ToLower(strings.TrimSpace(m.Sender))] {
			continue
		}
		if !w.Since.IsZero() && m.ReceivedAt.Before(w.Since) {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReceivedAt.Before(out[j].ReceivedAt)
	})
	if w.MaxMessages > 0 && len(out) > w.MaxMessages {
		out = out[len(out)-w.MaxMessages:]
	}
	return out
}
