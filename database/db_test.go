package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-backend/models"
)

// queryCounter counts SELECT statements so tests can verify how many round
// trips an operation makes.
type queryCounter struct {
	selects int
}

func (c *queryCounter) LogMode(logger.LogLevel) logger.Interface { return c }

func (c *queryCounter) Info(context.Context, string, ...any) {}

func (c *queryCounter) Warn(context.Context, string, ...any) {}

func (c *queryCounter) Error(context.Context, string, ...any) {}

func (c *queryCounter) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(sql)), "SELECT") {
		c.selects++
	}
}

func (c *queryCounter) reset() { c.selects = 0 }

// newTestDB opens an in-memory database with the full schema migrated.
func newTestDB(t *testing.T) (*gorm.DB, *queryCounter) {
	t.Helper()

	counter := &queryCounter{}
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: counter})
	require.NoError(t, err)

	// A pooled second connection would see a different in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	counter.reset()
	return db, counter
}

func textBlock(blockType models.BlockType, text string) models.ContentBlock {
	return models.ContentBlock{
		Type:    blockType,
		Content: datatypes.JSON([]byte(fmt.Sprintf("%q", text))),
	}
}

func listBlock(items ...string) models.ContentBlock {
	content, err := models.BlockContent{Items: items}.JSON(models.BlockList)
	if err != nil {
		panic(err)
	}
	return models.ContentBlock{Type: models.BlockList, Content: content}
}

func testProject(title string, blocks ...models.ContentBlock) *models.Project {
	return &models.Project{
		Slug:    models.GenerateSlug(title),
		Title:   title,
		Summary: "summary of " + title,
		Tags:    datatypes.JSONSlice[string]([]string{"go", "web"}),
		Image:   "https://images.example.com/" + models.GenerateSlug(title) + ".png",
		Blocks:  blocks,
	}
}
