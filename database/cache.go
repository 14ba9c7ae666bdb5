package database

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/rpupo63/portfolio-backend/models"
)

// listCache memoizes the assembled project listing. Every mutation calls
// Invalidate so a subsequent FindAll reflects the write; concurrent
// cold-cache fills collapse into a single fetch.
type listCache struct {
	mu       sync.RWMutex
	projects []*models.Project
	valid    bool
	group    singleflight.Group
}

func (c *listCache) get() ([]*models.Project, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projects, c.valid
}

func (c *listCache) fill(fetch func() ([]*models.Project, error)) ([]*models.Project, error) {
	v, err, _ := c.group.Do("projects", func() (any, error) {
		// A concurrent caller may have filled the cache while we waited.
		if projects, ok := c.get(); ok {
			return projects, nil
		}

		projects, err := fetch()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.projects = projects
		c.valid = true
		c.mu.Unlock()
		return projects, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*models.Project), nil
}

// Invalidate drops the cached listing.
func (c *listCache) Invalidate() {
	c.mu.Lock()
	c.projects = nil
	c.valid = false
	c.mu.Unlock()
}
