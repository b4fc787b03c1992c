package download

import (
	"sync"

	"github.com/handiism/songripper/internal/audio"
)

type albumKey struct {
	artist string
	album  string
}

// Session is the state shared by every worker of a rip and by later edits:
// the album-art cache and the tagger with its process-wide tag lock.
//
// A Session must be created once per process and passed by pointer.
type Session struct {
	artMu sync.Mutex
	// A nil value is the explicit "no art" memo.
	art map[albumKey][]byte

	tagger *audio.Tagger
}

// NewSession creates a Session around tagger.
func NewSession(tagger *audio.Tagger) *Session {
	if tagger == nil {
		tagger = audio.NewTagger(nil)
	}
	return &Session{
		art:    make(map[albumKey][]byte),
		tagger: tagger,
	}
}

// Tagger returns the session's tagger.
func (s *Session) Tagger() *audio.Tagger { return s.tagger }

// Reset forgets all cached art. Called at the start of every rip.
func (s *Session) Reset() {
	s.artMu.Lock()
	defer s.artMu.Unlock()
	clear(s.art)
}

// ResolveArt returns the cached art of (artist, album), running fetch on a
// miss. The lock is held across lookup, fetch and store, so fetch runs at
// most once per album between resets even under concurrent callers. A failed
// fetch is memoized as well.
func (s *Session) ResolveArt(artist, album string, fetch func() ([]byte, bool)) ([]byte, bool) {
	key := albumKey{artist: artist, album: album}

	s.artMu.Lock()
	defer s.artMu.Unlock()

	if data, ok := s.art[key]; ok {
		return data, data != nil
	}

	data, ok := fetch()
	if !ok || len(data) == 0 {
		data = nil
	}
	s.art[key] = data
	return data, data != nil
}

// StoreArt records art for (artist, album), replacing any cached value or
// "no art" memo.
func (s *Session) StoreArt(artist, album string, data []byte) {
	if len(data) == 0 {
		return
	}
	s.artMu.Lock()
	defer s.artMu.Unlock()
	s.art[albumKey{artist: artist, album: album}] = data
}

// CachedArt reports what the cache holds for (artist, album): known is false
// when nothing was resolved yet.
func (s *Session) CachedArt(artist, album string) (data []byte, known bool) {
	s.artMu.Lock()
	defer s.artMu.Unlock()
	data, known = s.art[albumKey{artist: artist, album: album}]
	return data, known
}
