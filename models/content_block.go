package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BlockType identifies the shape of a content block's payload.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockQuote     BlockType = "quote"
	BlockImage     BlockType = "image"
	BlockList      BlockType = "list"
)

// Valid reports whether t belongs to the closed set of block types.
func (t BlockType) Valid() bool {
	switch t {
	case BlockParagraph, BlockHeading, BlockQuote, BlockImage, BlockList:
		return true
	}
	return false
}

// IsList reports whether the block's content is a string sequence rather than
// a single string.
func (t BlockType) IsList() bool {
	return t == BlockList
}

// BlockContent is the decoded payload of a single content block: Items for
// list blocks, Text for everything else. It is a value type; shape is checked
// once at the authoring boundary by ParseBlockContent, not on every access.
type BlockContent struct {
	Text  string
	Items []string
}

// ParseBlockContent decodes raw JSON content and checks that its shape matches
// the block type. List content must be an array with at least one non-blank
// item; all other types need a non-blank string.
func ParseBlockContent(t BlockType, raw json.RawMessage) (BlockContent, error) {
	if !t.Valid() {
		return BlockContent{}, fmt.Errorf("unknown block type %q", t)
	}

	if t.IsList() {
		var items []string
		if err := json.Unmarshal(raw, &items); err != nil {
			return BlockContent{}, fmt.Errorf("list block content must be an array of strings")
		}
		for _, item := range items {
			if strings.TrimSpace(item) != "" {
				return BlockContent{Items: items}, nil
			}
		}
		return BlockContent{}, fmt.Errorf("list block needs at least one non-blank item")
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return BlockContent{}, fmt.Errorf("%s block content must be a string", t)
	}
	if strings.TrimSpace(text) == "" {
		return BlockContent{}, fmt.Errorf("%s block content must not be blank", t)
	}
	return BlockContent{Text: text}, nil
}

// JSON renders the content back to its wire and storage form: a JSON string
// for scalar types, a JSON array for list blocks.
func (c BlockContent) JSON(t BlockType) (datatypes.JSON, error) {
	var v any = c.Text
	if t.IsList() {
		v = c.Items
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// Equal reports whether two payloads carry the same content.
func (c BlockContent) Equal(other BlockContent) bool {
	if c.Text != other.Text || len(c.Items) != len(other.Items) {
		return false
	}
	for i := range c.Items {
		if c.Items[i] != other.Items[i] {
			return false
		}
	}
	return true
}

// ContentBlock is one row of the content_blocks table. Blocks are owned by
// their project and have no lifecycle of their own; order_index is the only
// sequencing signal and rows are replaced wholesale on project update.
type ContentBlock struct {
	ID         uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID  uuid.UUID      `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_content_block_project_id"`
	Type       BlockType      `json:"type" db:"type" gorm:"type:text;not null"`
	Content    datatypes.JSON `json:"content" db:"content" gorm:"not null"`
	OrderIndex int            `json:"order_index" db:"order_index" gorm:"type:integer;not null"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
