package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qframe-project/qframe"
	"github.com/qframe-project/qframe/expr"
	"github.com/qframe-project/qframe/sqlite"
)

// openFixture creates a throwaway database with the tracks/albums pair
// used across the examples and loads a handful of rows.
func openFixture(t *testing.T) *sqlite.Conn {
	t.Helper()
	conn, err := sqlite.Open(filepath.Join(t.TempDir(), "fixture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	ctx := context.Background()
	stmts := []string{
		`CREATE TABLE albums (AlbumId INTEGER PRIMARY KEY, Title NVARCHAR(160) NOT NULL)`,
		`CREATE TABLE tracks (
			TrackId INTEGER PRIMARY KEY,
			Name NVARCHAR(200) NOT NULL,
			AlbumId INTEGER REFERENCES albums(AlbumId)
		)`,
		`INSERT INTO albums VALUES (1, 'For Those About To Rock We Salute You')`,
		`INSERT INTO albums VALUES (2, 'Balls to the Wall')`,
		`INSERT INTO tracks VALUES (1, 'For Those About To Rock', 1)`,
		`INSERT INTO tracks VALUES (2, 'Balls to the Wall', 2)`,
		`INSERT INTO tracks VALUES (3, 'Fast As a Shark', 2)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, conn.Exec(ctx, stmt))
	}
	return conn
}

func TestConn_Tables(t *testing.T) {
	conn := openFixture(t)

	tables, err := conn.Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"albums", "tracks"}, tables)
}

func TestConn_Columns(t *testing.T) {
	conn := openFixture(t)

	cols, err := conn.Columns(context.Background(), "tracks")
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, "TrackId", cols[0].Name)
	assert.Equal(t, "Name", cols[1].Name)
	assert.Equal(t, "AlbumId", cols[2].Name)
	assert.Equal(t, "INTEGER", cols[0].Type)
}

func TestConn_ColumnsUnknownTable(t *testing.T) {
	conn := openFixture(t)

	_, err := conn.Columns(context.Background(), "playlists")
	assert.True(t, qframe.IsUnknownTable(err))
}

func TestConn_QueryStringConversion(t *testing.T) {
	conn := openFixture(t)

	rows, err := conn.Query(context.Background(),
		"SELECT Name FROM tracks WHERE TrackId = 1;")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "For Those About To Rock", rows[0][0])
}

func TestEndToEnd_MergeHeadShape(t *testing.T) {
	conn := openFixture(t)
	ctx := context.Background()

	schema, err := qframe.Discover(ctx, conn)
	require.NoError(t, err)

	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)
	albums, err := schema.Frame("albums")
	require.NoError(t, err)

	merged, err := tracks.Merge(albums, qframe.MergeOptions{On: "AlbumId"})
	require.NoError(t, err)
	projected, err := merged.Select("Name", "Title")
	require.NoError(t, err)

	shape, err := projected.Shape(ctx)
	require.NoError(t, err)
	assert.Equal(t, qframe.Shape{Rows: 3, Cols: 2}, shape)

	preview, err := projected.Head(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Title"}, preview.Columns())
	require.Len(t, preview.Rows(), 2)
	assert.Equal(t,
		[]string{"For Those About To Rock", "For Those About To Rock We Salute You"},
		preview.Rows()[0])
}

func TestEndToEnd_FilterAndAggregate(t *testing.T) {
	conn := openFixture(t)
	ctx := context.Background()

	schema, err := qframe.Discover(ctx, conn)
	require.NoError(t, err)
	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)

	albumID, err := tracks.Col("AlbumId")
	require.NoError(t, err)
	onSecond := tracks.Filter(expr.Eq(albumID, 2))

	shape, err := onSecond.Shape(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, shape.Rows)

	total, err := tracks.Sum("TrackId")
	require.NoError(t, err)
	v, err := total.Scalar(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, v)
}

func TestEndToEnd_DistinctAndSlice(t *testing.T) {
	conn := openFixture(t)
	ctx := context.Background()

	schema, err := qframe.Discover(ctx, conn)
	require.NoError(t, err)
	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)

	albumIDs, err := tracks.Select("AlbumId")
	require.NoError(t, err)
	distinct := albumIDs.Distinct()

	shape, err := distinct.Shape(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, shape.Rows)

	window, err := tracks.Slice(1, 3)
	require.NoError(t, err)
	rows, err := window.Values(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
