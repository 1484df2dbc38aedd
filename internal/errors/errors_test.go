package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = New("sentinel")

func TestWrapKeepsSentinel(t *testing.T) {
	err := Wrapf(WithStack(errSentinel), "order %d", 7)

	assert.True(t, Is(err, errSentinel))
	assert.Equal(t, "order 7: sentinel", err.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestStack(t *testing.T) {
	assert.Empty(t, Stack(errSentinel))
	assert.Empty(t, Stack(nil))

	err := Wrap(WithStack(errSentinel), "outer")
	assert.Contains(t, Stack(err), "TestStack")
}
