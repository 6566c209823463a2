package precondition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFulfilled(t *testing.T) {
	enabled := map[string]struct{}{"quiz_access": {}, "chat": {}}

	assert.True(t, Fulfilled(nil, enabled))
	assert.True(t, Fulfilled([]string{}, enabled))
	assert.True(t, Fulfilled([]string{"quiz_access"}, enabled))
	assert.True(t, Fulfilled([]string{"quiz_access", "chat"}, enabled))
	assert.False(t, Fulfilled([]string{"quiz_access", "forum"}, enabled))
	assert.False(t, Fulfilled([]string{"forum"}, enabled))
	assert.False(t, Fulfilled([]string{"forum"}, nil))
	assert.True(t, Fulfilled(nil, nil))
}
