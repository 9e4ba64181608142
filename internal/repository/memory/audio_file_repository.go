package memory

import (
	"os"
	"time"

	"github.com/patrickmn/go-cache"
)

// AudioFile tracks one synthesized reply written under the static dir.
type AudioFile struct {
	ID        string
	Path      string
	URL       string
	CreatedAt time.Time
}

// AudioFileRepository is a TTL registry for generated audio. When an entry
// expires the backing file is removed from disk, so replies stay downloadable
// for a while without the static dir growing forever.
type AudioFileRepository struct {
	cache *cache.Cache
}

func NewAudioFileRepository(ttl time.Duration) *AudioFileRepository {
	c := cache.New(ttl, 10*time.Minute)
	c.OnEvicted(func(key string, value interface{}) {
		if f, ok := value.(*AudioFile); ok {
			// Best effort: the file may already be gone
			_ = os.Remove(f.Path)
		}
	})
	return &AudioFileRepository{
		cache: c,
	}
}

func (r *AudioFileRepository) Save(file *AudioFile) {
	r.cache.Set(file.ID, file, cache.DefaultExpiration)
}

// Count reports how many synthesized replies are still cached.
func (r *AudioFileRepository) Count() int {
	return r.cache.ItemCount()
}
