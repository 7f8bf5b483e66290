// MongoHandler is an slog.Handler that asynchronously stores log records in
// a MongoDB collection, keeping the request hot path free of database I/O:
//
//   - Records are enqueued into a buffered channel (non-blocking).
//   - A background goroutine drains the channel and performs InsertMany in
//     batches.
//   - When the channel is full the record is dropped; logging must never
//     block application code.
//   - Close() flushes the queue and disconnects.
//
// Enabled with LOG_MONGO=1; the server tees request logs into the `logs`
// collection of the application database.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoQueueSize = 4096
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// LogDocument is the shape written to MongoDB.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// MongoHandler is an slog.Handler writing to MongoDB asynchronously.
type MongoHandler struct {
	col   *mongo.Collection
	queue chan LogDocument
	done  chan struct{}
	attrs []slog.Attr
}

// NewMongoHandler creates a MongoHandler over an already-connected
// collection and starts its drain goroutine. The caller should call
// Close() on shutdown.
func NewMongoHandler(col *mongo.Collection) (*MongoHandler, error) {
	if col == nil {
		return nil, fmt.Errorf("logger: nil mongo collection")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "time", Value: -1}},
		Options: options.Index(),
	})

	h := &MongoHandler{
		col:   col,
		queue: make(chan LogDocument, mongoQueueSize),
		done:  make(chan struct{}),
	}
	go h.drain()
	return h, nil
}

// Enabled reports whether the handler records at the given level.
// Mongo persistence is INFO and above; DEBUG stays on stdout only.
func (h *MongoHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

// Handle enqueues the record. Never blocks: a full queue drops the record.
func (h *MongoHandler) Handle(_ context.Context, r slog.Record) error {
	doc := LogDocument{
		Time:  r.Time,
		Level: r.Level.String(),
		Msg:   r.Message,
		Attrs: bson.M{},
	}

	collect := func(a slog.Attr) {
		if a.Key == "request_id" {
			doc.RequestID = a.Value.String()
			return
		}
		doc.Attrs[a.Key] = a.Value.Any()
	}

	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(a)
		return true
	})

	if len(doc.Attrs) == 0 {
		doc.Attrs = nil
	}

	select {
	case h.queue <- doc:
	default:
		// queue full, drop
	}
	return nil
}

// WithAttrs returns a handler sharing the queue with extra bound attrs.
func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup is accepted but groups are flattened into the attrs document.
func (h *MongoHandler) WithGroup(string) slog.Handler { return h }

// Close flushes pending records and stops the drain goroutine.
func (h *MongoHandler) Close() {
	close(h.queue)
	<-h.done
}

func (h *MongoHandler) drain() {
	defer close(h.done)

	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, mongoBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, _ = h.col.InsertMany(ctx, batch)
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case doc, ok := <-h.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// TeeHandler fans a record out to two handlers (stdout + Mongo).
type TeeHandler struct {
	A, B slog.Handler
}

func (t TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.A.Enabled(ctx, level) || t.B.Enabled(ctx, level)
}

func (t TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if t.A.Enabled(ctx, r.Level) {
		err = t.A.Handle(ctx, r.Clone())
	}
	if t.B.Enabled(ctx, r.Level) {
		if e := t.B.Handle(ctx, r.Clone()); err == nil {
			err = e
		}
	}
	return err
}

func (t TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return TeeHandler{A: t.A.WithAttrs(attrs), B: t.B.WithAttrs(attrs)}
}

func (t TeeHandler) WithGroup(name string) slog.Handler {
	return TeeHandler{A: t.A.WithGroup(name), B: t.B.WithGroup(name)}
}

// EnableMongo swaps the package logger for one that also persists to col.
// Returns the handler so the caller can Close() it on shutdown.
func EnableMongo(col *mongo.Collection) (*MongoHandler, error) {
	mh, err := NewMongoHandler(col)
	if err != nil {
		return nil, err
	}
	L = slog.New(TeeHandler{A: L.Handler(), B: mh})
	slog.SetDefault(L)
	return mh, nil
}
