package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageOptions_Normalized(t *testing.T) {
	opts := PageOptions{Keyword: "  go  ", Page: 0, Size: 0}.Normalized()
	assert.Equal(t, "go", opts.Keyword)
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, defaultPageSize, opts.Size)

	opts = PageOptions{Page: 3, Size: 500}.Normalized()
	assert.Equal(t, maxPageSize, opts.Size)
	assert.Equal(t, (3-1)*maxPageSize, opts.Offset())
}

func TestNewPageResult_NilRecords(t *testing.T) {
	res := NewPageResult[*Book](nil, 0, PageOptions{Page: 1, Size: 10})
	require.NotNil(t, res.Records)

	body, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"records":[]`)
}
