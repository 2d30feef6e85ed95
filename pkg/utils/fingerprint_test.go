package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint("device-123")
	assert.Len(t, a, 16)
	assert.Equal(t, a, Fingerprint("device-123"))
	assert.NotEqual(t, a, Fingerprint("device-124"))
	assert.NotContains(t, a, "device")
	assert.Empty(t, Fingerprint(""))
}
