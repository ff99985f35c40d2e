package cognito

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecretHash(t *testing.T) {
	// Known-answer check against the value Cognito expects for this
	// username/client/secret triple.
	got := secretHash("user@example.com", "client-id", "top-secret")
	assert.Equal(t, "rr+WCtkriYPt9Ubyrjs2lC9PZz/e88zQ6wMB/XSQXxc=", got)

	assert.NotEqual(t, got, secretHash("other@example.com", "client-id", "top-secret"))
	assert.NotEqual(t, got, secretHash("user@example.com", "client-id", "different-secret"))
}
