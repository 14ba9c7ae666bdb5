package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockTypeValid(t *testing.T) {
	for _, bt := range []BlockType{BlockParagraph, BlockHeading, BlockQuote, BlockImage, BlockList} {
		require.True(t, bt.Valid(), "expected %q to be valid", bt)
	}
	require.False(t, BlockType("video").Valid())
	require.False(t, BlockType("").Valid())
}

func TestParseBlockContent_List(t *testing.T) {
	content, err := ParseBlockContent(BlockList, json.RawMessage(`["a","b"]`))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, content.Items)
	require.Empty(t, content.Text)
}

func TestParseBlockContent_ListRejectsString(t *testing.T) {
	_, err := ParseBlockContent(BlockList, json.RawMessage(`"a"`))
	require.Error(t, err)
}

func TestParseBlockContent_ListRejectsAllBlank(t *testing.T) {
	_, err := ParseBlockContent(BlockList, json.RawMessage(`[]`))
	require.Error(t, err)

	_, err = ParseBlockContent(BlockList, json.RawMessage(`["", "  "]`))
	require.Error(t, err)
}

func TestParseBlockContent_Scalar(t *testing.T) {
	for _, bt := range []BlockType{BlockParagraph, BlockHeading, BlockQuote, BlockImage} {
		content, err := ParseBlockContent(bt, json.RawMessage(`"some text"`))
		require.NoError(t, err, "type %q", bt)
		require.Equal(t, "some text", content.Text)
		require.Nil(t, content.Items)
	}
}

func TestParseBlockContent_ScalarRejectsArray(t *testing.T) {
	_, err := ParseBlockContent(BlockParagraph, json.RawMessage(`["a"]`))
	require.Error(t, err)
}

func TestParseBlockContent_ScalarRejectsBlank(t *testing.T) {
	_, err := ParseBlockContent(BlockHeading, json.RawMessage(`"   "`))
	require.Error(t, err)
}

func TestParseBlockContent_UnknownType(t *testing.T) {
	_, err := ParseBlockContent(BlockType("video"), json.RawMessage(`"x"`))
	require.Error(t, err)
}

func TestBlockContentJSON_RoundTrip(t *testing.T) {
	listRaw := json.RawMessage(`["first","second"]`)
	content, err := ParseBlockContent(BlockList, listRaw)
	require.NoError(t, err)

	stored, err := content.JSON(BlockList)
	require.NoError(t, err)
	require.JSONEq(t, string(listRaw), string(stored))

	again, err := ParseBlockContent(BlockList, json.RawMessage(stored))
	require.NoError(t, err)
	require.True(t, content.Equal(again))

	textContent, err := ParseBlockContent(BlockQuote, json.RawMessage(`"words"`))
	require.NoError(t, err)

	stored, err = textContent.JSON(BlockQuote)
	require.NoError(t, err)
	require.JSONEq(t, `"words"`, string(stored))
}

func TestBlockContentEqual(t *testing.T) {
	a := BlockContent{Items: []string{"x", "y"}}
	b := BlockContent{Items: []string{"x", "y"}}
	c := BlockContent{Items: []string{"y", "x"}}

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(BlockContent{Text: "x"}))
}
