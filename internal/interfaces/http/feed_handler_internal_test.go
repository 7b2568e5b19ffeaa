package http

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prayastok/stok-api/internal/application/item"
	"github.com/prayastok/stok-api/internal/application/ledger"
	"github.com/prayastok/stok-api/internal/domain/entity"
	"github.com/prayastok/stok-api/internal/infrastructure/feed"
)

// feedConn is the client end of a stream: a buffer that can be killed to
// simulate a dropped connection.
type feedConn struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	dead bool
}

func (c *feedConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dead {
		return 0, io.ErrClosedPipe
	}
	return c.buf.Write(p)
}

func (c *feedConn) kill() {
	c.mu.Lock()
	c.dead = true
	c.mu.Unlock()
}

func (c *feedConn) contents() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

func TestStreamPartitionPushesOnSignalAndHeartbeat(t *testing.T) {
	conn := &feedConn{}
	signals := make(chan struct{}, 1)
	heartbeat := make(chan time.Time)
	done := make(chan struct{})

	go func() {
		defer close(done)
		streamPartition(bufio.NewWriter(conn),
			func() ([]byte, error) { return []byte(`[{"id":"a"}]`), nil },
			signals, heartbeat)
	}()

	require.Eventually(t, func() bool {
		return strings.Count(conn.contents(), "data: ") == 1
	}, time.Second, time.Millisecond, "the first snapshot is sent without waiting for a change")

	heartbeat <- time.Now()
	require.Eventually(t, func() bool {
		return strings.Contains(conn.contents(), ": ping\n\n")
	}, time.Second, time.Millisecond)

	signals <- struct{}{}
	require.Eventually(t, func() bool {
		return strings.Count(conn.contents(), "data: ") == 2
	}, time.Second, time.Millisecond)

	conn.kill()
	heartbeat <- time.Now()
	<-done
}

// A client that disconnects while its partition stays quiet never triggers a
// failed snapshot write. The heartbeat must notice the dead connection and
// end the stream instead of blocking on the signal channel forever.
func TestStreamPartitionExitsWhenClientGone(t *testing.T) {
	conn := &feedConn{}
	signals := make(chan struct{})
	heartbeat := make(chan time.Time)
	done := make(chan struct{})

	go func() {
		defer close(done)
		streamPartition(bufio.NewWriter(conn),
			func() ([]byte, error) { return []byte("[]"), nil },
			signals, heartbeat)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(conn.contents(), "data: ")
	}, time.Second, time.Millisecond)

	conn.kill()
	heartbeat <- time.Now()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream still running after the connection dropped")
	}
}

// feedItemsRepo and feedMovementsRepo serve fixed lists; snapshots only list.
type feedItemsRepo struct{ list []*entity.Item }

func (r *feedItemsRepo) Create(*entity.Item) error                     { return nil }
func (r *feedItemsRepo) GetByID(string) (*entity.Item, error)          { return nil, nil }
func (r *feedItemsRepo) GetByCode(string) (*entity.Item, error)        { return nil, nil }
func (r *feedItemsRepo) List(entity.ItemOrder) ([]*entity.Item, error) { return r.list, nil }
func (r *feedItemsRepo) Rename(string, string, string) error           { return nil }
func (r *feedItemsRepo) Delete(string) error                           { return nil }
func (r *feedItemsRepo) GetForUpdate(string) (*entity.Item, error)     { return nil, nil }
func (r *feedItemsRepo) SetQuantity(string, int64) error               { return nil }

type feedMovementsRepo struct{ list []*entity.Movement }

func (r *feedMovementsRepo) Create(*entity.Movement) error                 { return nil }
func (r *feedMovementsRepo) GetByID(string) (*entity.Movement, error)      { return nil, nil }
func (r *feedMovementsRepo) TransitionStatus(string, string, string) error { return nil }
func (r *feedMovementsRepo) ListByKind(string, *time.Time, *time.Time) ([]*entity.Movement, error) {
	return r.list, nil
}
func (r *feedMovementsRepo) ListByItem(string) ([]*entity.Movement, error) { return nil, nil }

// Re-subscribing to a partition, or subscribing twice, must yield byte-equal
// payloads for an unchanged data set.
func TestSnapshotIdenticalAcrossSubscribes(t *testing.T) {
	items := &feedItemsRepo{list: []*entity.Item{
		{ID: "a", Code: "BRG001", Name: "Sabun", Category: "Kebersihan", Quantity: 4},
		{ID: "b", Code: "BRG002", Name: "Sikat", Category: "Kebersihan", Quantity: 2},
	}}
	movements := &feedMovementsRepo{list: []*entity.Movement{
		{ID: "m1", ItemID: "a", ItemCode: "BRG001", ItemName: "Sabun", Kind: entity.KindSale, Quantity: 1},
		{ID: "m2", ItemID: "b", ItemCode: "BRG002", ItemName: "Sikat", Kind: entity.KindSale, Quantity: 2},
	}}
	h := NewFeedHandler(feed.NewHub(),
		item.NewUseCase(items, nil, nil),
		ledger.NewUseCase(nil, items, movements, nil))

	for _, partition := range []string{"items", entity.KindSale} {
		first, err := h.snapshot(partition)
		require.NoError(t, err)
		second, err := h.snapshot(partition)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second), partition)
	}
}
