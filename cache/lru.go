package cache

// lruNode is a node in a doubly-linked recency list.
// The node stores its key for O(1) deletion from the owning map.
type lruNode struct {
	key  Key
	prev *lruNode
	next *lruNode
}

// lruList tracks entry recency for eviction. The list is not thread-safe;
// Memory holds its mutex across every call.
//
// The head is the most recently used, the tail the least.
type lruList struct {
	head *lruNode
	tail *lruNode
}

// PushFront adds a new node at the front (most recently used).
// Returns the created node for later access.
func (l *lruList) PushFront(key Key) *lruNode {
	node := &lruNode{key: key}
	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}
	return node
}

// MoveToFront moves an existing node to the front (most recently used).
func (l *lruList) MoveToFront(node *lruNode) {
	if node == nil || node == l.head {
		return
	}

	l.unlink(node)

	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
}

// RemoveOldest removes and returns the key of the least recently used node.
// Returns the zero key and false if the list is empty.
func (l *lruList) RemoveOldest() (Key, bool) {
	if l.tail == nil {
		return Key{}, false
	}

	node := l.tail
	l.unlink(node)
	return node.key, true
}

// unlink removes a node from the list and clears its pointers.
func (l *lruList) unlink(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}

	node.prev = nil
	node.next = nil
}
