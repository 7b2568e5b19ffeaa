package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/prayastok/stok-api/internal/application/dto"
	"github.com/prayastok/stok-api/internal/application/item"
	"github.com/prayastok/stok-api/internal/application/ledger"
	"github.com/prayastok/stok-api/internal/domain/entity"
	"github.com/prayastok/stok-api/internal/infrastructure/feed"
)

// FeedHandler streams live query snapshots over Server-Sent Events. Each
// change signal triggers a fresh, deterministically ordered re-query, so two
// subscribers of the same partition always see identical payloads.
type FeedHandler struct {
	hub    *feed.Hub
	items  *item.UseCase
	ledger *ledger.UseCase
}

// NewFeedHandler builds the feed handler.
func NewFeedHandler(hub *feed.Hub, items *item.UseCase, ledgerUC *ledger.UseCase) *FeedHandler {
	return &FeedHandler{hub: hub, items: items, ledger: ledgerUC}
}

// feedPartitions maps the URL segments to hub partitions; ledger streams share
// the plural names of the transaction routes.
var feedPartitions = map[string]string{
	"items":    "items",
	"incoming": entity.KindIncoming,
	"sales":    entity.KindSale,
	"borrows":  entity.KindBorrow,
	"returns":  entity.KindReturn,
}

// Stream godoc
// @Summary      Live snapshot stream for one partition
// @Description  SSE stream. Sends the full snapshot immediately, then again after every change.
// @Tags         feed
// @Produce      text/event-stream
// @Security     Bearer
// @Param        partition  path  string  true  "items, incoming, sales, borrows or returns"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/feed/{partition} [get]
func (h *FeedHandler) Stream(c *fiber.Ctx) error {
	partition, ok := feedPartitions[c.Params("partition")]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unknown feed partition"})
	}

	signals, cancel := h.hub.Subscribe(partition)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(feedHeartbeat)
		defer ticker.Stop()
		streamPartition(w, func() ([]byte, error) { return h.snapshot(partition) }, signals, ticker.C)
	}))
	return nil
}

// feedHeartbeat bounds how long a dead connection can hold its goroutine and
// hub subscription on a quiet partition.
const feedHeartbeat = 15 * time.Second

// streamPartition writes one snapshot immediately, then a fresh one per change
// signal. Between changes it flushes SSE comments on every heartbeat tick; the
// failed write is the only way to notice a client that disconnected while the
// partition stayed quiet.
func streamPartition(w *bufio.Writer, snapshot func() ([]byte, error), signals <-chan struct{}, heartbeat <-chan time.Time) {
	push := func() error {
		payload, err := snapshot()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		return w.Flush()
	}
	if err := push(); err != nil {
		return
	}
	for {
		select {
		case <-signals:
			if err := push(); err != nil {
				return
			}
		case <-heartbeat:
			if _, err := w.WriteString(": ping\n\n"); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return // client went away
			}
		}
	}
}

func (h *FeedHandler) snapshot(partition string) ([]byte, error) {
	ctx := context.Background()
	if partition == "items" {
		items, err := h.items.List(ctx, entity.OrderByCreatedDesc)
		if err != nil {
			return nil, err
		}
		return json.Marshal(dto.ToItemResponses(items))
	}
	movs, err := h.ledger.ListMovements(ctx, partition, nil, nil)
	if err != nil {
		return nil, err
	}
	return json.Marshal(dto.ToMovementResponses(movs))
}
