package filter

import (
	"sync"

	"github.com/jimezsa/jobscan/internal/models"
)

// Pipeline holds the last fetched list and the current criteria, and keeps
// the filtered view in step with both.
type Pipeline[T, C any] struct {
	mu       sync.RWMutex
	match    func(T, C) bool
	source   []T
	criteria C
	view     []T
}

func NewPipeline[T, C any](match func(T, C) bool) *Pipeline[T, C] {
	return &Pipeline[T, C]{match: match, view: []T{}}
}

func NewWebsitePipeline() *Pipeline[models.Website, WebsiteCriteria] {
	return NewPipeline(MatchWebsite)
}

func NewJobPipeline() *Pipeline[models.JobBatch, JobCriteria] {
	return NewPipeline(MatchJobBatch)
}

// SetSource replaces the fetched list. nil is treated as empty.
func (p *Pipeline[T, C]) SetSource(list []T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = list
	p.recompute()
}

func (p *Pipeline[T, C]) SetCriteria(criteria C) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.criteria = criteria
	p.recompute()
}

// Clear resets the criteria to their zero value: empty search, Any.
func (p *Pipeline[T, C]) Clear() {
	var zero C
	p.SetCriteria(zero)
}

func (p *Pipeline[T, C]) Criteria() C {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.criteria
}

// View returns a copy of the filtered list.
func (p *Pipeline[T, C]) View() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]T{}, p.view...)
}

// Source returns a copy of the unfiltered list.
func (p *Pipeline[T, C]) Source() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]T{}, p.source...)
}

func (p *Pipeline[T, C]) recompute() {
	p.view = Apply(p.source, p.criteria, p.match)
}
