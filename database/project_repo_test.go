package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

func TestProjectRepo_AddAndFindByID(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewProjectRepo(db)

	project := testProject("Trail Tracker",
		textBlock(models.BlockHeading, "Overview"),
		textBlock(models.BlockParagraph, "A GPS trail logger."),
		listBlock("offline maps", "elevation profiles"),
		textBlock(models.BlockImage, "https://images.example.com/trail.png"),
	)
	require.NoError(t, repo.Add(project))
	require.NotEqual(t, uuid.Nil, project.ID)

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "trail-tracker", found.Slug)
	require.Equal(t, "Trail Tracker", found.Title)
	require.Equal(t, []string{"go", "web"}, []string(found.Tags))

	require.Len(t, found.Blocks, 4)
	for i, block := range found.Blocks {
		require.Equal(t, i, block.OrderIndex)
		require.Equal(t, project.ID, block.ProjectID)
		require.NotEqual(t, uuid.Nil, block.ID)
	}
	require.Equal(t, models.BlockHeading, found.Blocks[0].Type)
	require.JSONEq(t, `"Overview"`, string(found.Blocks[0].Content))
	require.Equal(t, models.BlockList, found.Blocks[2].Type)
	require.JSONEq(t, `["offline maps","elevation profiles"]`, string(found.Blocks[2].Content))
}

func TestProjectRepo_FindByIDUnknown(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewProjectRepo(db)

	found, err := repo.FindByID(uuid.New())
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestProjectRepo_FindBySlug(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewProjectRepo(db)

	older := testProject("Shared Name")
	older.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Add(older))

	newer := testProject("Shared Name", textBlock(models.BlockParagraph, "v2"))
	newer.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Add(newer))

	// Slugs are not unique; the most recent project wins.
	found, err := repo.FindBySlug("shared-name")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, newer.ID, found.ID)
	require.Len(t, found.Blocks, 1)

	missing, err := repo.FindBySlug("no-such-slug")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestProjectRepo_UpdateReplacesBlocks(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewProjectRepo(db)

	project := testProject("Before",
		textBlock(models.BlockParagraph, "one"),
		textBlock(models.BlockParagraph, "two"),
		textBlock(models.BlockParagraph, "three"),
	)
	require.NoError(t, repo.Add(project))
	originalBlockIDs := make(map[uuid.UUID]bool)
	for _, b := range project.Blocks {
		originalBlockIDs[b.ID] = true
	}

	project.Title = "After"
	project.Slug = models.GenerateSlug(project.Title)
	project.Tags = datatypes.JSONSlice[string]([]string{"updated"})
	project.Blocks = []models.ContentBlock{
		textBlock(models.BlockQuote, "ship it"),
	}
	require.NoError(t, repo.Update(project))

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "After", found.Title)
	require.Equal(t, "after", found.Slug)
	require.Equal(t, []string{"updated"}, []string(found.Tags))

	// The whole sequence is replaced, not diffed.
	require.Len(t, found.Blocks, 1)
	require.Equal(t, models.BlockQuote, found.Blocks[0].Type)
	require.False(t, originalBlockIDs[found.Blocks[0].ID])

	var count int64
	require.NoError(t, db.Model(&models.ContentBlock{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestProjectRepo_UpdateUnknownProject(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewProjectRepo(db)

	ghost := testProject("Ghost")
	ghost.ID = uuid.New()
	err := repo.Update(ghost)
	require.Error(t, err)
	require.True(t, errs.IsNotFound(err))
}

func TestProjectRepo_Delete(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewProjectRepo(db)

	project := testProject("Doomed",
		textBlock(models.BlockParagraph, "soon gone"),
		listBlock("a", "b"),
	)
	require.NoError(t, repo.Add(project))

	require.NoError(t, repo.Delete(project.ID))

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	require.Nil(t, found)

	var count int64
	require.NoError(t, db.Model(&models.ContentBlock{}).Count(&count).Error)
	require.EqualValues(t, 0, count)

	err = repo.Delete(project.ID)
	require.Error(t, err)
	require.True(t, errs.IsNotFound(err))
}

func TestProjectRepo_FindAllOrderAndGrouping(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewProjectRepo(db)

	first := testProject("First", textBlock(models.BlockParagraph, "p1"))
	first.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Add(first))

	second := testProject("Second",
		textBlock(models.BlockHeading, "h"),
		textBlock(models.BlockParagraph, "p2"),
	)
	second.CreatedAt = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Add(second))

	third := testProject("Third")
	third.CreatedAt = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Add(third))

	projects, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, projects, 3)
	require.Equal(t, "Third", projects[0].Title)
	require.Equal(t, "Second", projects[1].Title)
	require.Equal(t, "First", projects[2].Title)

	require.Empty(t, projects[0].Blocks)
	require.Len(t, projects[1].Blocks, 2)
	require.Equal(t, models.BlockHeading, projects[1].Blocks[0].Type)
	require.Len(t, projects[2].Blocks, 1)
}

func TestProjectRepo_FindAllBatchesAndCaches(t *testing.T) {
	db, counter := newTestDB(t)
	repo := NewProjectRepo(db)

	require.NoError(t, repo.Add(testProject("A", textBlock(models.BlockParagraph, "a"))))
	require.NoError(t, repo.Add(testProject("B", textBlock(models.BlockParagraph, "b"))))

	// Cold listing: one query for projects, one batched query for blocks.
	counter.reset()
	_, err := repo.FindAll()
	require.NoError(t, err)
	require.Equal(t, 2, counter.selects)

	// Warm listing is served from the cache without touching the database.
	counter.reset()
	_, err = repo.FindAll()
	require.NoError(t, err)
	require.Equal(t, 0, counter.selects)

	// Any mutation invalidates the cache.
	require.NoError(t, repo.Add(testProject("C")))
	counter.reset()
	projects, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, projects, 3)
	require.Equal(t, 2, counter.selects)
}

func TestProjectRepo_FailedUpdateInvalidatesListing(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewProjectRepo(db)

	project := testProject("Before", textBlock(models.BlockParagraph, "p"))
	require.NoError(t, repo.Add(project))

	// Warm the listing cache.
	_, err := repo.FindAll()
	require.NoError(t, err)

	// Duplicate explicit block ids make the reinsert fail after the scalar
	// update and the block delete have already landed.
	project.Title = "After"
	dup := uuid.New()
	blocks := []models.ContentBlock{
		textBlock(models.BlockParagraph, "x"),
		textBlock(models.BlockParagraph, "y"),
	}
	blocks[0].ID = dup
	blocks[1].ID = dup
	project.Blocks = blocks
	require.Error(t, repo.Update(project))

	var stored models.Project
	require.NoError(t, db.First(&stored, "id = ?", project.ID).Error)
	require.Equal(t, "After", stored.Title)

	// The listing reflects the stored mutation, block-less as it is, rather
	// than serving the stale cached entry.
	projects, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "After", projects[0].Title)
	require.Empty(t, projects[0].Blocks)
}

func TestProjectRepo_FailedDeleteInvalidatesListing(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewProjectRepo(db)

	keep := testProject("Keep", textBlock(models.BlockParagraph, "p"))
	require.NoError(t, repo.Add(keep))
	doomed := testProject("Doomed", textBlock(models.BlockParagraph, "q"))
	require.NoError(t, repo.Add(doomed))

	projects, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, projects, 2)

	// Make the block cleanup fail after the project row is already gone.
	require.NoError(t, db.Migrator().DropTable(&models.ContentBlock{}))
	require.Error(t, repo.Delete(doomed.ID))

	var count int64
	require.NoError(t, db.Model(&models.Project{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// A stale cache would still answer with both projects; the invalidated
	// one refetches and surfaces the broken store instead.
	_, err = repo.FindAll()
	require.Error(t, err)
}

func TestProjectRepo_AddCompensatesOnBlockFailure(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewProjectRepo(db)

	// Force the second statement of the two-step insert to fail.
	require.NoError(t, db.Migrator().DropTable(&models.ContentBlock{}))

	project := testProject("Half Written", textBlock(models.BlockParagraph, "p"))
	err := repo.Add(project)
	require.Error(t, err)

	// The compensating delete removed the fresh project row.
	var count int64
	require.NoError(t, db.Model(&models.Project{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
