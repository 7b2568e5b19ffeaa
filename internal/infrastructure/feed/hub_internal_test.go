package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Cancel must remove the subscription itself, not just stop delivery, or
// every reconnecting stream client would leave a dead channel behind.
func TestCancelDropsSubscription(t *testing.T) {
	hub := NewHub()
	_, cancelA := hub.Subscribe("items")
	_, cancelB := hub.Subscribe("items")

	cancelA()
	assert.Len(t, hub.subs["items"], 1)

	cancelB()
	assert.Empty(t, hub.subs["items"])
}
