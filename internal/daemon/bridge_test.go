package daemon

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/glance/internal/dbus"
	"github.com/jmylchreest/glance/internal/history"
	"github.com/jmylchreest/glance/internal/render"
)

func newTestBridge(t *testing.T) (*Bridge, *Service) {
	t.Helper()
	svc, _ := newTestService(t)
	loop := NewLoop(nil)
	startLoop(t, loop)
	return NewBridge(context.Background(), loop, svc), svc
}

func TestBridge_NotifyAndClose(t *testing.T) {
	b, _ := newTestBridge(t)

	id, err := b.Notify(&dbus.DBusNotification{AppName: "a", Summary: "A"})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), id)

	removed, err := b.Close(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), removed)

	_, err = b.Close(0)
	assert.ErrorIs(t, err, history.ErrNoVisible)
}

func TestBridge_Trigger(t *testing.T) {
	b, _ := newTestBridge(t)
	_, err := b.Notify(&dbus.DBusNotification{AppName: "a", Summary: "A"})
	require.NoError(t, err)

	require.NoError(t, b.Trigger("next"))

	entries, err := b.History()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Read)
	assert.True(t, entries[0].Visible)

	assert.ErrorIs(t, b.Trigger("bogus"), history.ErrUnknownTrigger)
}

func TestBridge_SetTemplates(t *testing.T) {
	b, _ := newTestBridge(t)
	assert.ErrorIs(t, b.SetTemplates(render.Templates{}), render.ErrEmptyTemplate)
	assert.NoError(t, b.SetTemplates(testTemplates()))
	assert.NoError(t, b.SetHistoryOptions(history.Options{ReplaceMovesToEnd: true}))
}

func TestBridge_ConcurrentNotifyAssignsUniqueIDs(t *testing.T) {
	b, svc := newTestBridge(t)

	const n = 40
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[uint32]bool)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := b.Notify(&dbus.DBusNotification{AppName: "a", Summary: "s"})
			assert.NoError(t, err)
			_ = b.Apply(history.TriggerPrevious)
			mu.Lock()
			ids[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, n)

	var length int
	require.NoError(t, b.loop.Do(context.Background(), func() { length = svc.Store().Len() }))
	assert.Equal(t, n, length)
}
