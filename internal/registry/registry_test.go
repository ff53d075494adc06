package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleychat/parley-server/internal/model"
	"github.com/parleychat/parley-server/internal/testutil"
)

type fakeChannel struct {
	mu       sync.Mutex
	received []model.BroadcastMessage
	sendErr  error
	closed   bool
}

func (c *fakeChannel) Send(msg model.BroadcastMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.received = append(c.received, msg)
	return nil
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeChannel) messages() []model.BroadcastMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.BroadcastMessage(nil), c.received...)
}

func TestRegistry_ConnectBroadcast_DeliversExactlyOnce(t *testing.T) {
	r := New(testutil.MakeNoopLogger())
	ch := &fakeChannel{}

	r.Connect(7, ch)
	msg := model.BroadcastMessage{Sender: "ada", Content: "hi", Timestamp: "2026-01-02T15:04:05Z"}
	r.Broadcast(7, msg)

	require.Len(t, ch.messages(), 1)
	assert.Equal(t, msg, ch.messages()[0])
}

func TestRegistry_Disconnect_StopsDelivery(t *testing.T) {
	r := New(testutil.MakeNoopLogger())
	ch := &fakeChannel{}

	r.Connect(7, ch)
	r.Disconnect(7, ch)
	r.Broadcast(7, model.BroadcastMessage{Content: "hi"})

	assert.Empty(t, ch.messages())
}

func TestRegistry_Disconnect_LastChannelRemovesRoom(t *testing.T) {
	r := New(testutil.MakeNoopLogger())
	ch := &fakeChannel{}

	r.Connect(7, ch)
	require.True(t, r.hasRoom(7))

	r.Disconnect(7, ch)
	assert.False(t, r.hasRoom(7), "empty room set must be removed, not kept empty")

	// A later connect starts from a fresh set.
	other := &fakeChannel{}
	r.Connect(7, other)
	assert.Equal(t, 1, r.RoomSize(7))
}

func TestRegistry_Disconnect_AbsentChannelIsNoop(t *testing.T) {
	r := New(testutil.MakeNoopLogger())
	ch := &fakeChannel{}

	r.Disconnect(7, ch)
	r.Connect(7, ch)
	r.Disconnect(7, &fakeChannel{})
	assert.Equal(t, 1, r.RoomSize(7))
}

func TestRegistry_Broadcast_PrunesFailedChannel(t *testing.T) {
	r := New(testutil.MakeNoopLogger())
	healthy := &fakeChannel{}
	broken := &fakeChannel{sendErr: errors.New("connection reset")}

	r.Connect(7, healthy)
	r.Connect(7, broken)

	r.Broadcast(7, model.BroadcastMessage{Content: "hi"})

	assert.Len(t, healthy.messages(), 1, "one failed send must not abort the rest")
	assert.Equal(t, 1, r.RoomSize(7))
	assert.True(t, broken.closed)

	r.Broadcast(7, model.BroadcastMessage{Content: "again"})
	assert.Len(t, healthy.messages(), 2)
}

func TestRegistry_Broadcast_UnknownRoomIsNoop(t *testing.T) {
	r := New(testutil.MakeNoopLogger())
	r.Broadcast(404, model.BroadcastMessage{Content: "hi"})
}

func TestRegistry_ConcurrentConnectBroadcastDisconnect(t *testing.T) {
	r := New(testutil.MakeNoopLogger())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := &fakeChannel{}
			r.Connect(1, ch)
			r.Broadcast(1, model.BroadcastMessage{Content: "x"})
			r.Disconnect(1, ch)
		}()
	}
	wg.Wait()

	assert.False(t, r.hasRoom(1))
}
