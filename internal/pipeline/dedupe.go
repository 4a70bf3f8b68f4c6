package pipeline

import "github.com/jimezsa/jobradar/internal/models"

// Deduplicator accumulates postings across a batch keyed by URL. The first
// posting seen for a URL wins. It is not safe for concurrent use; the
// aggregator drives it strictly sequentially.
type Deduplicator struct {
	seen     map[string]struct{}
	postings []models.Posting
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: map[string]struct{}{}}
}

// Add inserts postings whose URL has not been seen and reports how many were new.
func (d *Deduplicator) Add(postings []models.Posting) int {
	added := 0
	for _, posting := range postings {
		if _, ok := d.seen[posting.URL]; ok {
			continue
		}
		d.seen[posting.URL] = struct{}{}
		d.postings = append(d.postings, posting)
		added++
	}
	return added
}

func (d *Deduplicator) Len() int {
	return len(d.postings)
}

// Drain returns the accumulated postings in first-seen order and resets the
// deduplicator.
func (d *Deduplicator) Drain() []models.Posting {
	out := d.postings
	if out == nil {
		out = []models.Posting{}
	}
	d.postings = nil
	d.seen = map[string]struct{}{}
	return out
}
