package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	post := Post{AuthorID: 7}
	comment := Comment{AuthorID: 9}

	assert.True(t, CanMutate(7, &post))
	assert.False(t, CanMutate(9, &post))
	assert.True(t, CanMutate(9, &comment))
	assert.False(t, CanMutate(7, &comment))
	assert.False(t, CanMutate(0, &post), "anonymous user owns nothing")
}
