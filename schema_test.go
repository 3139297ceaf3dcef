package qframe_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qframe-project/qframe"
)

func TestSchema_Discover(t *testing.T) {
	conn := chinookConn()
	schema := discover(t, conn)

	assert.Equal(t, []string{"albums", "tracks"}, schema.Tables())

	cols, err := schema.Columns("albums")
	require.NoError(t, err)
	assert.Equal(t, []qframe.Column{
		{Name: "AlbumId", Type: "INTEGER"},
		{Name: "Title", Type: "NVARCHAR(160)"},
	}, cols)
}

func TestSchema_UnknownTable(t *testing.T) {
	conn := chinookConn()
	schema := discover(t, conn)

	_, err := schema.Columns("playlists")
	assert.True(t, qframe.IsUnknownTable(err))

	_, err = schema.Frame("playlists")
	require.Error(t, err)
	assert.True(t, qframe.IsUnknownTable(err))

	var ute *qframe.UnknownTableError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "playlists", ute.Table)
}

func TestSchema_DiscoverPropagatesAdapterError(t *testing.T) {
	conn := &qtablesErrConn{}
	_, err := qframe.Discover(context.Background(), conn)
	assert.Error(t, err)
}

func TestSchema_Overview(t *testing.T) {
	conn := chinookConn()
	schema := discover(t, conn)

	grid := schema.Overview()
	assert.Equal(t, []string{"albums", "tracks"}, grid.Columns())
	assert.Equal(t, [][]string{
		{"AlbumId", "TrackId"},
		{"Title", "Name"},
		{"", "AlbumId"},
	}, grid.Rows())
}

// qtablesErrConn fails table listing, to exercise discovery error paths.
type qtablesErrConn struct{ qframe.Conn }

func (c *qtablesErrConn) Tables(ctx context.Context) ([]string, error) {
	return nil, assert.AnError
}
