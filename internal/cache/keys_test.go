package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	assert.Equal(t, "quizforge:share:snapshot:q1", GenerateCacheKey("share", "snapshot", "q1"))
	assert.Equal(t, "quizforge:quiz:doc:q1:a_b", GenerateCacheKey("quiz", "doc", "q1", "a", "b"))
}

func TestWellKnownKeys(t *testing.T) {
	assert.Equal(t, "quizforge:share:snapshot:quiz-1", SnapshotKey("quiz-1"))
	assert.Equal(t, "quizforge:assessment:session:sess-1", SessionKey("sess-1"))
}
