package qframe_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qframe-project/qframe"
	"github.com/qframe-project/qframe/expr"
	"github.com/qframe-project/qframe/internal/testutil"
	"github.com/qframe-project/qframe/plan"
)

// chinookConn builds a fake adapter with the two-table fixture used
// throughout: tracks(TrackId, Name, AlbumId) and albums(AlbumId, Title).
func chinookConn() *testutil.Conn {
	return &testutil.Conn{
		TableNames: []string{"albums", "tracks"},
		Cols: map[string][]qframe.Column{
			"tracks": {
				{Name: "TrackId", Type: "INTEGER"},
				{Name: "Name", Type: "NVARCHAR(200)"},
				{Name: "AlbumId", Type: "INTEGER"},
			},
			"albums": {
				{Name: "AlbumId", Type: "INTEGER"},
				{Name: "Title", Type: "NVARCHAR(160)"},
			},
		},
		Results: map[string][]qframe.Row{},
	}
}

func discover(t *testing.T, conn *testutil.Conn) *qframe.Schema {
	t.Helper()
	schema, err := qframe.Discover(context.Background(), conn)
	require.NoError(t, err)
	return schema
}

func TestFrame_MergeScenarioSQL(t *testing.T) {
	conn := chinookConn()
	schema := discover(t, conn)

	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)
	albums, err := schema.Frame("albums")
	require.NoError(t, err)

	merged, err := tracks.Merge(albums, qframe.MergeOptions{On: "AlbumId"})
	require.NoError(t, err)
	projected, err := merged.Select("Name", "Title")
	require.NoError(t, err)

	sql, err := projected.SQL()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT a.Name, b.Title FROM tracks AS a INNER JOIN albums AS b ON a.AlbumId=b.AlbumId;",
		sql)

	// Plan building never contacted the adapter beyond discovery.
	assert.Empty(t, conn.Log)
}

func TestFrame_UnknownColumnWithoutExecution(t *testing.T) {
	conn := chinookConn()
	schema := discover(t, conn)

	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)

	_, err = tracks.Col("Nope")
	require.Error(t, err)
	assert.True(t, plan.IsUnknownColumn(err))
	assert.Empty(t, conn.Log)

	_, err = tracks.Select("Nope")
	assert.True(t, plan.IsUnknownColumn(err))
	assert.Empty(t, conn.Log)
}

func TestFrame_Head(t *testing.T) {
	conn := chinookConn()
	conn.Results["SELECT a.TrackId, a.Name, a.AlbumId FROM tracks AS a LIMIT 2;"] = []qframe.Row{
		{int64(1), "For Those About To Rock", int64(1)},
		{int64(2), "Balls to the Wall", int64(2)},
	}
	schema := discover(t, conn)

	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)

	preview, err := tracks.Head(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"TrackId", "Name", "AlbumId"}, preview.Columns())
	assert.Equal(t, [][]string{
		{"1", "For Those About To Rock", "1"},
		{"2", "Balls to the Wall", "2"},
	}, preview.Rows())
	assert.Len(t, conn.Log, 1)
}

func TestFrame_ShapeSingleCountQuery(t *testing.T) {
	conn := chinookConn()
	countSQL := "SELECT COUNT(*) FROM (SELECT a.TrackId, a.Name, a.AlbumId FROM tracks AS a WHERE a.AlbumId = 1);"
	conn.Results[countSQL] = []qframe.Row{{int64(3)}}
	schema := discover(t, conn)

	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)
	albumID, err := tracks.Col("AlbumId")
	require.NoError(t, err)

	filtered := tracks.Filter(expr.Eq(albumID, 1))
	shape, err := filtered.Shape(context.Background())
	require.NoError(t, err)

	assert.Equal(t, qframe.Shape{Rows: 3, Cols: 3}, shape)
	assert.Equal(t, []string{countSQL}, conn.Log)
}

func TestFrame_WidthWithoutExecution(t *testing.T) {
	conn := chinookConn()
	schema := discover(t, conn)

	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)
	narrowed, err := tracks.Select("Name")
	require.NoError(t, err)

	assert.Equal(t, 3, tracks.Width())
	assert.Equal(t, 1, narrowed.Width())
	assert.Empty(t, conn.Log)
}

func TestFrame_ValuesCached(t *testing.T) {
	conn := chinookConn()
	fullSQL := "SELECT a.TrackId, a.Name, a.AlbumId FROM tracks AS a;"
	conn.Results[fullSQL] = []qframe.Row{{int64(1), "One", int64(1)}}
	schema := discover(t, conn)

	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)

	first, err := tracks.Values(context.Background())
	require.NoError(t, err)
	second, err := tracks.Values(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, conn.Log, 1, "second call must come from the cache")

	// A derived frame starts with a cold cache.
	derived, err := tracks.Select("Name")
	require.NoError(t, err)
	conn.Results["SELECT a.Name FROM tracks AS a;"] = []qframe.Row{{"One"}}
	_, err = derived.Values(context.Background())
	require.NoError(t, err)
	assert.Len(t, conn.Log, 2)
}

func TestFrame_ShapeMatchesValues(t *testing.T) {
	conn := chinookConn()
	fullSQL := "SELECT a.Name FROM tracks AS a;"
	countSQL := "SELECT COUNT(*) FROM (SELECT a.Name FROM tracks AS a);"
	conn.Results[fullSQL] = []qframe.Row{{"One"}, {"Two"}}
	conn.Results[countSQL] = []qframe.Row{{int64(2)}}
	schema := discover(t, conn)

	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)
	names, err := tracks.Select("Name")
	require.NoError(t, err)

	shape, err := names.Shape(context.Background())
	require.NoError(t, err)
	values, err := names.Values(context.Background())
	require.NoError(t, err)

	assert.Equal(t, shape.Rows, len(values))
	assert.Equal(t, shape.Cols, names.Width())
}

func TestFrame_ExecutionErrorWrapsAdapter(t *testing.T) {
	conn := chinookConn()
	adapterErr := errors.New("database is locked")
	conn.Err = adapterErr
	schema := discover(t, conn)

	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)

	_, err = tracks.Values(context.Background())
	require.Error(t, err)
	assert.True(t, qframe.IsExecution(err))
	assert.ErrorIs(t, err, adapterErr)

	var ee *qframe.ExecutionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "SELECT a.TrackId, a.Name, a.AlbumId FROM tracks AS a;", ee.Query)
}

func TestFrame_SumScalar(t *testing.T) {
	conn := chinookConn()
	sumSQL := "SELECT SUM(a.TrackId) AS TrackId FROM tracks AS a;"
	conn.Results[sumSQL] = []qframe.Row{{int64(6)}}
	schema := discover(t, conn)

	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)
	total, err := tracks.Sum("TrackId")
	require.NoError(t, err)

	v, err := total.Scalar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), v)
}

func TestFrame_MergeKeyValidation(t *testing.T) {
	conn := chinookConn()
	schema := discover(t, conn)

	tracks, _ := schema.Frame("tracks")
	albums, _ := schema.Frame("albums")

	_, err := tracks.Merge(albums, qframe.MergeOptions{})
	assert.Error(t, err)

	_, err = tracks.Merge(albums, qframe.MergeOptions{On: "AlbumId", LeftOn: "AlbumId"})
	assert.Error(t, err)

	_, err = tracks.Merge(albums, qframe.MergeOptions{On: "AlbumId", How: "outer"})
	assert.True(t, plan.IsUnsupportedJoinKind(err))

	// How is case-insensitive.
	merged, err := tracks.Merge(albums, qframe.MergeOptions{On: "AlbumId", How: "LEFT"})
	require.NoError(t, err)
	sql, err := merged.SQL()
	require.NoError(t, err)
	assert.Contains(t, sql, "LEFT JOIN")
}

func TestFrame_FilterThenShapeScenario(t *testing.T) {
	conn := chinookConn()
	countSQL := "SELECT COUNT(*) FROM (SELECT a.TrackId, a.Name, a.AlbumId FROM tracks AS a WHERE a.AlbumId = 1);"
	conn.Results[countSQL] = []qframe.Row{{int64(2)}}
	schema := discover(t, conn)

	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)
	albumID, err := tracks.Col("AlbumId")
	require.NoError(t, err)

	shape, err := tracks.Filter(expr.Eq(albumID, 1)).Shape(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, shape.Rows, 0)
	assert.Len(t, conn.Log, 1)
}

func TestFrame_MergeSidesSharingProvenance(t *testing.T) {
	conn := chinookConn()
	schema := discover(t, conn)

	tracks, err := schema.Frame("tracks")
	require.NoError(t, err)

	// The same handle on both sides cannot produce unambiguous SQL.
	_, err = tracks.Merge(tracks, qframe.MergeOptions{On: "AlbumId"})
	require.Error(t, err)
	assert.True(t, plan.IsSharedSource(err))
	assert.Empty(t, conn.Log)

	// Two filtered derivations of the handle are distinct sides: each
	// renders as its own subquery and the ON clause spans both aliases.
	albumID, err := tracks.Col("AlbumId")
	require.NoError(t, err)
	early := tracks.Filter(expr.Le(albumID, 100))
	late := tracks.Filter(expr.Gt(albumID, 100))

	merged, err := early.Merge(late, qframe.MergeOptions{On: "TrackId"})
	require.NoError(t, err)
	sql, err := merged.SQL()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT a.TrackId, a.Name, a.AlbumId "+
			"FROM (SELECT a.TrackId, a.Name, a.AlbumId FROM tracks AS a WHERE a.AlbumId <= 100) AS a "+
			"INNER JOIN (SELECT a.TrackId, a.Name, a.AlbumId FROM tracks AS a WHERE a.AlbumId > 100) AS b "+
			"ON a.TrackId=b.TrackId;",
		sql)

	// A fresh handle over the same table is a separate source, so a true
	// self-join goes through two handles.
	tracksAgain, err := schema.Frame("tracks")
	require.NoError(t, err)
	selfJoin, err := tracks.Merge(tracksAgain, qframe.MergeOptions{On: "AlbumId"})
	require.NoError(t, err)
	sql, err = selfJoin.SQL()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT a.TrackId, a.Name, a.AlbumId FROM tracks AS a INNER JOIN tracks AS b ON a.AlbumId=b.AlbumId;",
		sql)
}
