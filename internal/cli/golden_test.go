package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestHeadCommand_Golden(t *testing.T) {
	db := fixtureDB(t)

	stdout, _, err := executeCommand("head", "tracks", "--db", db)
	require.NoError(t, err)

	newGoldie(t).Assert(t, "head_tracks", []byte(stdout))
}

func TestOverviewCommand_Golden(t *testing.T) {
	db := fixtureDB(t)

	stdout, _, err := executeCommand("overview", "--db", db)
	require.NoError(t, err)

	newGoldie(t).Assert(t, "overview", []byte(stdout))
}
