package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tomatone/internal/timer"
)

func TestLog_AddAndCount(t *testing.T) {
	l := NewLog()
	assert.Equal(t, 0, l.Count())
	assert.Nil(t, l.Last())

	entry, err := l.Add(timer.ModeWork)
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "work", entry.Mode)
	assert.WithinDuration(t, time.Now(), entry.CompletedAt, time.Second)
	assert.Equal(t, 1, l.Count())
}

// brokenReader always fails, starving ULID generation of entropy.
type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestLog_AddEntropyFailure(t *testing.T) {
	l := NewLogWithEntropy(brokenReader{})

	_, err := l.Add(timer.ModeWork)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate ULID")
	assert.Equal(t, 0, l.Count())
}

func TestLog_CountMode(t *testing.T) {
	l := NewLog()
	_, err := l.Add(timer.ModeWork)
	require.NoError(t, err)
	_, err = l.Add(timer.ModeWork)
	require.NoError(t, err)
	_, err = l.Add(timer.ModeBreak)
	require.NoError(t, err)

	assert.Equal(t, 2, l.CountMode(timer.ModeWork))
	assert.Equal(t, 1, l.CountMode(timer.ModeBreak))
}

func TestLog_OrderAndLast(t *testing.T) {
	l := NewLog()
	first, err := l.Add(timer.ModeWork)
	require.NoError(t, err)
	second, err := l.Add(timer.ModeBreak)
	require.NoError(t, err)

	entries := l.All()
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)

	last := l.Last()
	require.NotNil(t, last)
	assert.Equal(t, second.ID, last.ID)
}

func TestLog_AllReturnsCopy(t *testing.T) {
	l := NewLog()
	_, err := l.Add(timer.ModeWork)
	require.NoError(t, err)

	entries := l.All()
	entries[0].Mode = "mutated"

	assert.Equal(t, "work", l.All()[0].Mode)
}

func TestLog_MarshalYAML(t *testing.T) {
	l := NewLog()
	_, err := l.Add(timer.ModeWork)
	require.NoError(t, err)
	_, err = l.Add(timer.ModeBreak)
	require.NoError(t, err)

	data, err := l.MarshalYAML()
	require.NoError(t, err)

	var decoded struct {
		Completed int `yaml:"completed"`
		Entries   []struct {
			ID   string `yaml:"id"`
			Mode string `yaml:"mode"`
		} `yaml:"entries"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	assert.Equal(t, 2, decoded.Completed)
	require.Len(t, decoded.Entries, 2)
	assert.Equal(t, "work", decoded.Entries[0].Mode)
	assert.Equal(t, "break", decoded.Entries[1].Mode)
	assert.NotEmpty(t, decoded.Entries[0].ID)
}

func TestEntry_RelativeTime(t *testing.T) {
	e := Entry{CompletedAt: time.Now().Add(-5 * time.Minute)}
	assert.Contains(t, e.RelativeTime(), "minutes ago")
}
