package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePutGet(t *testing.T) {
	c := NewCache()

	_, ok := c.Get("Acme")
	assert.False(t, ok)

	want := Result{
		Sends:   []SendResult{{Customer: Customer{Email: "alice@example.com"}, Status: StatusSuccess}},
		Summary: "Successfully sent 1 of 1 personalized marketing emails",
	}
	c.Put("Acme", want)

	got, ok := c.Get("Acme")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCacheOverwrite(t *testing.T) {
	c := NewCache()
	c.Put("Acme", Result{Summary: "first"})
	c.Put("Acme", Result{Summary: "second"})

	got, ok := c.Get("Acme")
	require.True(t, ok)
	assert.Equal(t, "second", got.Summary)
}
