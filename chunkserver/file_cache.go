// ///////////////////////////////////////
// 2023 BFS Storage all rights reserved
// ///////////////////////////////////////
package chunkserver

import (
	"os"
	"sync"

	. "github.com/Cloudxtreme/bfs-1/internal/zaplog"
	"go.uber.org/zap"
)

type fileNode struct {
	key   string
	value *os.File
	prev  *fileNode
	next  *fileNode
}

// FileCache keeps read-only descriptors of block files open, capped at
// capacity with LRU eviction. RemoveBlock must erase the entry before
// unlinking the file so a pruned handle cannot resurrect it.
type FileCache struct {
	capacity int
	mu       sync.Mutex
	dict     map[string]*fileNode
	head     *fileNode
	tail     *fileNode
}

func NewFileCache(capacity int) *FileCache {
	if capacity <= 0 {
		capacity = 1
	}
	c := &FileCache{
		capacity: capacity,
		dict:     make(map[string]*fileNode),
		head:     new(fileNode),
		tail:     new(fileNode),
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// GetFile returns an open descriptor for path, opening on miss.
func (c *FileCache) GetFile(path string) (*os.File, error) {
	c.mu.Lock()
	if node, ok := c.dict[path]; ok {
		c.moveToHead(node)
		f := node.value
		c.mu.Unlock()
		return f, nil
	}
	c.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if node, ok := c.dict[path]; ok {
		// Lost the race, keep the cached one.
		f.Close()
		c.moveToHead(node)
		return node.value, nil
	}
	node := &fileNode{key: path, value: f}
	c.addToHead(node)
	c.dict[path] = node
	if len(c.dict) > c.capacity {
		tail := c.removeTail()
		delete(c.dict, tail.key)
		tail.value.Close()
		ZapLogger.Debug("FileCache evict", zap.String("path", tail.key))
	}
	return f, nil
}

// EraseFileCache drops and closes the entry for path if present.
func (c *FileCache) EraseFileCache(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	node, ok := c.dict[path]
	if !ok {
		return
	}
	c.deleteNode(node)
	delete(c.dict, path)
	node.value.Close()
}

func (c *FileCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.dict)
}

func (c *FileCache) addToHead(node *fileNode) {
	node.next = c.head.next
	c.head.next.prev = node
	c.head.next = node
	node.prev = c.head
}

func (c *FileCache) deleteNode(node *fileNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
}

func (c *FileCache) moveToHead(node *fileNode) {
	c.deleteNode(node)
	c.addToHead(node)
}

func (c *FileCache) removeTail() *fileNode {
	node := c.tail.prev
	c.deleteNode(node)
	return node
}
