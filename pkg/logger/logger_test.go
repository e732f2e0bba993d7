package logger

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeCollection struct {
	mu   sync.Mutex
	docs []LogDocument
}

func (f *fakeCollection) InsertMany(_ context.Context, docs []interface{}, _ ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range docs {
		f.docs = append(f.docs, d.(LogDocument))
	}
	return &mongo.InsertManyResult{}, nil
}

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))
}

func TestInjectLogger(t *testing.T) {
	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")
	ctx := InjectLogger(context.Background(), custom)

	WithCtx(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestMongoHandlerFlushesOnClose(t *testing.T) {
	col := &fakeCollection{}
	h := newMongoHandler(col)

	log := slog.New(h).With("request_id", "r-1").WithGroup("recipe")
	log.Info("created", "id", 7)
	log.Warn("slow")
	h.Close()
	h.Close()

	col.mu.Lock()
	defer col.mu.Unlock()
	require.Len(t, col.docs, 2)
	assert.Equal(t, "created", col.docs[0].Msg)
	assert.Equal(t, "r-1", col.docs[0].RequestID)
	assert.EqualValues(t, 7, col.docs[0].Attrs["recipe.id"])
	assert.Equal(t, "WARN", col.docs[1].Level)
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	log := slog.New(NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	))
	log.Info("ping", "k", "v")

	assert.Contains(t, a.String(), "k=v")
	assert.Contains(t, b.String(), `"k":"v"`)
}

func TestPackageHelpersWriteThroughBase(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { L = prev })

	Debug("storage: purged", "path", "uploads/recipe/a.png")
	Warn("cache disabled")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "path=uploads/recipe/a.png")
	assert.Contains(t, out, "level=WARN")
}
