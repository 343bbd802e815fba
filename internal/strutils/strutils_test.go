package strutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrListContains(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	assert.True(StrListContains([]string{"a", "b"}, "a"))
	assert.False(StrListContains([]string{"a", "b"}, "c"))
	assert.False(StrListContains(nil, "a"))
}

func TestRemoveDuplicatesStable(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	assert.Equal([]string{"openid", "profile"}, RemoveDuplicatesStable([]string{"openid", "profile", "openid"}))
	assert.Equal([]string{"a"}, RemoveDuplicatesStable([]string{"", "a", ""}))
	assert.Empty(RemoveDuplicatesStable(nil))
}
