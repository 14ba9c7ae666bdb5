package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// ProjectRepo synchronizes the project aggregate with the projects and
// content_blocks tables. Block rows carry an explicit order_index; that
// column, never physical row order, is the sequencing signal across stores.
type ProjectRepo struct {
	db    *gorm.DB
	cache *listCache
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db: db, cache: &listCache{}}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all projects, most recently created first, each with its
// ordered block sequence. The result is cached until the next mutation.
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	if projects, ok := r.cache.get(); ok {
		return projects, nil
	}
	return r.cache.fill(r.fetchAll)
}

// fetchAll fetches the projects in one query and the blocks for the whole
// listing in one batched query, then groups blocks by project id in a single
// pass. Never one block query per project.
func (r *ProjectRepo) fetchAll() ([]*models.Project, error) {
	var projects []*models.Project
	if err := r.db.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return projects, nil
	}

	ids := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}

	var blocks []models.ContentBlock
	if err := r.db.Where("project_id IN ?", ids).Order("order_index ASC").Find(&blocks).Error; err != nil {
		return nil, err
	}

	// Per-project order survives the grouping because rows arrive sorted by
	// order_index and append preserves arrival order.
	grouped := make(map[uuid.UUID][]models.ContentBlock, len(projects))
	for _, b := range blocks {
		grouped[b.ProjectID] = append(grouped[b.ProjectID], b)
	}
	for _, p := range projects {
		p.Blocks = grouped[p.ID]
	}
	return projects, nil
}

// FindByID returns a project with its blocks ordered by order_index, or nil
// when no such project exists.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadBlocks(&project); err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySlug returns the most recently created project with the given slug,
// or nil when none matches. Slugs are not unique by constraint.
func (r *ProjectRepo) FindBySlug(slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("slug = ?", slug).Order("created_at DESC").First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadBlocks(&project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepo) loadBlocks(project *models.Project) error {
	return r.db.
		Where("project_id = ?", project.ID).
		Order("order_index ASC").
		Find(&project.Blocks).Error
}

// Add inserts the project row, then its block rows with sequential order
// indexes matching the input order. The two writes are separate statements,
// not a transaction: if the block insert fails, the fresh project row is
// removed again with a compensating delete so no blockless orphan remains.
func (r *ProjectRepo) Add(project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	blocks := project.Blocks
	project.Blocks = nil // inserted explicitly below, not through the association

	if err := r.db.Create(project).Error; err != nil {
		return err
	}

	// The store is touched from here on, even when the compensating delete
	// rolls the row back, so the cached listing is stale on every exit.
	defer r.cache.Invalidate()

	if err := r.insertBlocks(project.ID, blocks); err != nil {
		if delErr := r.db.Delete(&models.Project{}, "id = ?", project.ID).Error; delErr != nil {
			return fmt.Errorf("insert blocks: %w (compensating delete failed: %v)", err, delErr)
		}
		return err
	}
	project.Blocks = blocks
	return nil
}

// Update replaces the scalar fields and the entire block sequence of an
// existing project. Blocks are deleted and reinserted, not diffed, so block
// ids are fresh unless the caller re-supplies them. A failure between the
// delete and the insert leaves the project with zero blocks; that state is
// surfaced to the caller, not repaired here.
func (r *ProjectRepo) Update(project *models.Project) error {
	blocks := project.Blocks
	project.Blocks = nil

	res := r.db.Model(&models.Project{}).
		Where("id = ?", project.ID).
		Select("slug", "title", "summary", "tags", "image", "github_url", "custom_buttons").
		Updates(project)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("project")
	}

	// The scalar update has landed; the cached listing is stale on every
	// exit from here, including failures that leave the project block-less.
	defer r.cache.Invalidate()

	if err := r.db.Where("project_id = ?", project.ID).Delete(&models.ContentBlock{}).Error; err != nil {
		return err
	}
	if err := r.insertBlocks(project.ID, blocks); err != nil {
		return err
	}
	project.Blocks = blocks
	return nil
}

// Delete removes the project row and all of its block rows. The foreign key
// cascades on Postgres; the block delete is still issued explicitly so stores
// without the constraint never leak orphan rows.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("project")
	}

	// Project row is gone; the listing must drop it even if the block
	// cleanup below fails.
	defer r.cache.Invalidate()

	return r.db.Where("project_id = ?", id).Delete(&models.ContentBlock{}).Error
}

// insertBlocks stamps ownership and sequential order indexes onto the blocks
// and inserts them in one statement. Index 0 is the first element of the
// given sequence.
func (r *ProjectRepo) insertBlocks(projectID uuid.UUID, blocks []models.ContentBlock) error {
	if len(blocks) == 0 {
		return nil
	}
	for i := range blocks {
		if blocks[i].ID == uuid.Nil {
			blocks[i].ID = uuid.New()
		}
		blocks[i].ProjectID = projectID
		blocks[i].OrderIndex = i
	}
	return r.db.Create(&blocks).Error
}
