package store

// Document keys under which each collection is persisted. Every key maps to
// one independently loaded and saved JSON document.
const (
	KeyUserProfile           = "UserProfile"
	KeyMoodEntries           = "MoodEntries"
	KeyCustomActivities      = "CustomActivities"
	KeyCurrentTheme          = "CurrentTheme"
	KeyUnlockedThemes        = "UnlockedThemes"
	KeyCurrentMoodSkinPack   = "CurrentMoodSkinPack"
	KeyUnlockedMoodSkinPacks = "UnlockedMoodSkinPacks"
)

// Provider is the persistence collaborator: a key/value byte-blob store with
// synchronous get/set semantics. The stores depend on it but do not
// implement it; see platform/blobfile for the file-backed implementation.
//
// Get returns ErrKeyNotFound when no document exists under the key. Set
// must replace the whole document atomically.
type Provider interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
}
