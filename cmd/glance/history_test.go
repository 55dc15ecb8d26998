package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/glance/internal/dbus"
)

var historyNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleEntries() []dbus.HistoryEntry {
	return []dbus.HistoryEntry{
		{ID: 1, Key: "a", AppName: "mail", Summary: "Inbox", Body: "3 new", Read: true, ReceivedAt: historyNow.Add(-time.Hour).Unix()},
		{ID: 2, Key: "b", AppName: "chat", Summary: "Ping", Visible: true, ReceivedAt: historyNow.Add(-2 * time.Minute).Unix()},
	}
}

func TestToHistoryItems(t *testing.T) {
	items := toHistoryItems(sampleEntries(), false)
	require.Len(t, items, 2)
	assert.Equal(t, uint32(1), items[0].ID)
	assert.Equal(t, historyNow.Add(-time.Hour).Unix(), items[0].ReceivedAt.Unix())

	unread := toHistoryItems(sampleEntries(), true)
	require.Len(t, unread, 1)
	assert.Equal(t, uint32(2), unread[0].ID)
}

func TestToHistoryItems_ZeroTimestamp(t *testing.T) {
	items := toHistoryItems([]dbus.HistoryEntry{{ID: 7}}, false)
	require.Len(t, items, 1)
	assert.True(t, items[0].ReceivedAt.IsZero())
}

func TestWriteHistory_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, toHistoryItems(sampleEntries(), false), "json", historyNow))

	var got []historyItem
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "chat", got[1].AppName)
	assert.True(t, got[1].Visible)
}

func TestWriteHistory_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, toHistoryItems(sampleEntries(), false), "yaml", historyNow))

	var got []historyItem
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Inbox", got[0].Summary)
	assert.True(t, got[0].Read)
}

func TestWriteHistory_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, toHistoryItems(sampleEntries(), false), "plain", historyNow))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "SUMMARY")
	assert.Contains(t, lines[1], "1 hour ago")
	assert.True(t, strings.HasPrefix(lines[2], ">"))
	assert.Contains(t, lines[2], "unread")
}

func TestWriteHistory_UnknownFormat(t *testing.T) {
	err := writeHistory(&bytes.Buffer{}, nil, "xml", historyNow)
	assert.ErrorContains(t, err, "unknown output format")
}
