package main

import (
	"slices"
	"sync"
	"time"

	"github.com/kenshinx/gotrie/trie"
)

// Index publishes the current tree. A refresh builds a fresh tree and swaps
// it in only when the key set changed; published trees are never modified.
type Index struct {
	keys     *Keys
	settings TreeSettings

	mu         sync.RWMutex
	tree       *trie.Tree
	keyset     []string
	generation uint64
	published  []func(generation uint64)
}

func NewIndex(keys *Keys, ts TreeSettings) *Index {
	return &Index{
		keys:     keys,
		settings: ts,
		tree:     trie.Build(nil, ts.Compressed),
	}
}

// OnPublish registers f to run after each new tree is swapped in.
func (idx *Index) OnPublish(f func(generation uint64)) {
	idx.mu.Lock()
	idx.published = append(idx.published, f)
	idx.mu.Unlock()
}

func (idx *Index) Rebuild() error {
	keys, err := idx.keys.All()
	if err != nil {
		return err
	}

	idx.mu.RLock()
	unchanged := idx.generation > 0 && slices.Equal(keys, idx.keyset)
	idx.mu.RUnlock()
	if unchanged {
		logger.Debug("keys unchanged, keep tree")
		return nil
	}

	start := time.Now()
	var tree *trie.Tree
	if idx.settings.Suffix {
		tree = trie.BuildSuffixIndex(keys, idx.settings.Compressed)
	} else {
		tree = trie.Build(keys, idx.settings.Compressed)
	}

	idx.mu.Lock()
	idx.tree = tree
	idx.keyset = keys
	idx.generation++
	gen := idx.generation
	published := idx.published
	idx.mu.Unlock()

	for _, f := range published {
		f(gen)
	}

	logger.Info("build tree #%d: %d keys, %d nodes, compressed=%v suffix=%v in %v",
		gen, len(keys), tree.NodeCount(), idx.settings.Compressed, idx.settings.Suffix, time.Since(start))
	return nil
}

func (idx *Index) Current() (*trie.Tree, uint64) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.tree, idx.generation
}

func (idx *Index) Lookup(query string) int {
	tree, _ := idx.Current()
	return tree.LookupDepth(query)
}

/*
Rebuild the tree from the key sources every interval
*/
func (idx *Index) refresh(interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			if err := idx.Rebuild(); err != nil {
				logger.Warn("Rebuild tree failed %s", err)
			}
		}
	}()
}
