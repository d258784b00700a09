package drill

import "strings"

// ReviewQueue holds the words missed during a pass, unique by case-insensitive text.
type ReviewQueue struct {
	items []*Word
}

// NewReviewQueue creates an empty queue.
func NewReviewQueue() *ReviewQueue {
	return &ReviewQueue{}
}

// Add inserts w unless a word with the same text is already queued. It
// reports whether w was added.
func (q *ReviewQueue) Add(w *Word) bool {
	if w == nil || q.Contains(w.Text) {
		return false
	}
	q.items = append(q.items, w)
	return true
}

// Remove deletes the first word whose text matches case-insensitively. It
// reports whether anything was removed.
func (q *ReviewQueue) Remove(text string) bool {
	i := q.index(text)
	if i < 0 {
		return false
	}
	q.items = append(q.items[:i], q.items[i+1:]...)
	return true
}

// Contains reports whether a word with the given text is queued.
func (q *ReviewQueue) Contains(text string) bool {
	return q.index(text) >= 0
}

// Size returns the number of queued words.
func (q *ReviewQueue) Size() int {
	return len(q.items)
}

// Drain returns the queued words in insertion order for use as a pool. The
// queue keeps its contents.
func (q *ReviewQueue) Drain() []*Word {
	return append([]*Word(nil), q.items...)
}

// Clear empties the queue.
func (q *ReviewQueue) Clear() {
	q.items = nil
}

func (q *ReviewQueue) index(text string) int {
	for i, w := range q.items {
		if strings.EqualFold(w.Text, text) {
			return i
		}
	}
	return -1
}
