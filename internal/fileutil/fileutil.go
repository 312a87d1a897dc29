package fileutil

import "os"

// OwnerReadWrite is the file permission mode for cache entry files
// containing potentially sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// OwnerFullAccess is the directory permission mode for the cache
// directory, created lazily on first write.
const OwnerFullAccess os.FileMode = 0o700
