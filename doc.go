// Package qframe lets callers browse the structure of a relational
// database and manipulate its relations with a pandas-like vocabulary,
// while every operation stays symbolic until data is explicitly requested.
//
// A Schema discovers tables and columns from a connection adapter. Looking
// up a table yields a Frame: a lazy, immutable handle wrapping a query
// plan. Column selection, computed columns, filters, renames, and merges
// each return a new Frame wrapping a new plan; the database is only
// touched when Head, Shape, Values, or Scalar materializes the plan into
// one executed SQL statement.
//
//	conn, _ := sqlite.Open("chinook.db")
//	defer conn.Close()
//
//	schema, _ := qframe.Discover(ctx, conn)
//	tracks, _ := schema.Frame("tracks")
//	albums, _ := schema.Frame("albums")
//
//	joined, _ := tracks.Merge(albums, qframe.MergeOptions{On: "AlbumId"})
//	names, _ := joined.Select("Name", "Title")
//	sql, _ := names.SQL()
//	// SELECT a.Name, b.Title FROM tracks AS a
//	//   INNER JOIN albums AS b ON a.AlbumId=b.AlbumId;
//
// The symbolic layers live in the expr and plan subpackages; the sqlite
// and duckdb subpackages provide connection adapters.
package qframe
