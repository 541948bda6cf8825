package source

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/smsledger/internal/model"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func inbox(n int, sender string) []model.RawMessage {
	var msgs []model.RawMessage
	for i := n - 1; i >= 0; i-- { // newest first, as phones list them
		msgs = append(msgs, model.RawMessage{
			Sender:     sender,
			Body:       fmt.Sprintf("message %d", i),
			ReceivedAt: t0.Add(time.Duration(i) * time.Hour),
		})
	}
	return msgs
}

func TestWindow_ZeroKeepsAllSorted(t *testing.T) {
	got := Window{}.Apply(inbox(3, "CBE"))
	assert.Len(t, got, 3)
	assert.Equal(t, "message 0", got[0].Body)
	assert.Equal(t, "message 2", got[2].Body)
}

func TestWindow_Senders(t *testing.T) {
	msgs := append(inbox(2, "CBE"), inbox(2, "MOM")...)
	got := Window{Senders: []string{" cbe "}}.Apply(msgs)
	assert.Len(t, got, 2)
	for _, m := range got {
		assert.Equal(t, "CBE", m.Sender)
	}
}

func TestWindow_Since(t *testing.T) {
	got := Window{Since: t0.Add(2 * time.Hour)}.Apply(inbox(5, "CBE"))
	assert.Len(t, got, 3)
	assert.Equal(t, "message 2", got[0].Body, "cutoff is inclusive")
}

func TestWindow_MaxKeepsNewest(t *testing.T) {
	got := Window{MaxMessages: 2}.Apply(inbox(5, "CBE"))
	assert.Equal(t, []string{"message 3", "message 4"}, []string{got[0].Body, got[1].Body})
}

func TestWindow_DoesNotModifyInput(t *testing.T) {
	msgs := inbox(3, "CBE")
	Window{MaxMessages: 1}.Apply(msgs)
	assert.Equal(t, "message 2", msgs[0].Body)
}

func TestWindow_Empty(t *testing.T) {
	assert.Empty(t, Window{Senders: []string{"CBE"}}.Apply(nil))
}
