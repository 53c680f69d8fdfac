package store

import "github.com/holdings-one/holdings"

// Reference all storage types in this package for shorter names everywhere.

type ReadOnlyKVStore = holdings.ReadOnlyKVStore
type KVStore = holdings.KVStore
type SetDeleter = holdings.SetDeleter
type Batch = holdings.Batch
type Iterator = holdings.Iterator
type CacheableKVStore = holdings.CacheableKVStore
type KVCacheWrap = holdings.KVCacheWrap
