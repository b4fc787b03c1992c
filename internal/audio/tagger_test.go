package audio

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// overlapCodec records how many calls were in flight at once.
type overlapCodec struct {
	NopCodec
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (c *overlapCodec) enter() {
	n := c.inFlight.Add(1)
	for {
		m := c.maxSeen.Load()
		if n <= m || c.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)
	c.inFlight.Add(-1)
}

func (c *overlapCodec) WriteTags(string, Tags) error {
	c.enter()
	return nil
}

func (c *overlapCodec) ReadTags(string) (Tags, error) {
	c.enter()
	return Tags{}, nil
}

func (c *overlapCodec) ReplacePictures(string, Picture) error {
	c.enter()
	return nil
}

func (c *overlapCodec) ReadPicture(string) (*Picture, error) {
	c.enter()
	return nil, nil
}

func TestTaggerSerializesAllCalls(t *testing.T) {
	codec := &overlapCodec{}
	tagger := NewTagger(codec)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(4)
		go func() { defer wg.Done(); _ = tagger.WriteTags("f", Tags{}) }()
		go func() { defer wg.Done(); _, _ = tagger.ReadTags("f") }()
		go func() { defer wg.Done(); _ = tagger.SetCover("f", Picture{}) }()
		go func() { defer wg.Done(); _, _ = tagger.Cover("f") }()
	}
	wg.Wait()

	assert.Equal(t, int32(1), codec.maxSeen.Load())
}

func TestNewTaggerNilCodec(t *testing.T) {
	tagger := NewTagger(nil)
	assert.False(t, tagger.Available())
	assert.NoError(t, tagger.WriteTags("x", Tags{}))
	assert.True(t, NewTagger(NewID3Codec()).Available())
}
