package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/config"
)

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, dbPath
}

// echoTask hands its value back through the processor.
type echoTask struct {
	Value string `json:"value"`
}

func (echoTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "echo",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
	}
}

func TestNewClient_CreatesQueueDatabase(t *testing.T) {
	client, dbPath := newTestClient(t)

	_, err := os.Stat(TasksDBPath(dbPath))
	assert.NoError(t, err)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestClient_StopBeforeStart(t *testing.T) {
	client, _ := newTestClient(t)

	assert.True(t, client.Stop(context.Background()))
}

func TestClient_EnqueueRunsProcessor(t *testing.T) {
	client, _ := newTestClient(t)

	got := make(chan string, 1)
	client.Register(backlite.NewQueue(func(ctx context.Context, task echoTask) error {
		got <- task.Value
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	id, err := client.Enqueue(ctx, echoTask{Value: "reconcile"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case v := <-got:
		assert.Equal(t, "reconcile", v)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not processed")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, client.Stop(stopCtx))
}

func TestClient_PingAfterClose(t *testing.T) {
	client, _ := newTestClient(t)

	require.NoError(t, client.Close())
	assert.Error(t, client.Ping(context.Background()))
}

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "locallibrary-tasks.db"), TasksDBPath(filepath.Join("data", "locallibrary.db")))
	assert.Equal(t, "catalog-tasks", TasksDBPath("catalog"))
}

func TestFromConfig(t *testing.T) {
	assert.Equal(t, DefaultConfig(), FromConfig(config.Tasks{}))

	cfg := FromConfig(config.Tasks{Workers: 4, CleanupInterval: time.Minute})
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Minute, cfg.CleanupInterval)
}
