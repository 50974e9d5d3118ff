package content

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
)

func loadFixture(t *testing.T) *Table {
	t.Helper()
	table, err := Load(filepath.Join("testdata", "spreads.yaml"))
	require.NoError(t, err)
	return table
}

func TestLoad_Fixture(t *testing.T) {
	table := loadFixture(t)

	require.Len(t, table.Spreads, 3)
	require.Len(t, table.Categories, 3)

	cc := table.Spreads[1]
	require.Equal(t, "celtic-cross", cc.Slug)
	require.Equal(t, 10, cc.CardCount)
	require.Len(t, cc.Positions, 10)
	require.Equal(t, []string{"classic", "in-depth"}, cc.Keywords)
}

func TestLoad_DefaultsSlugNameAndCardCount(t *testing.T) {
	table := loadFixture(t)

	career, ok := table.Category("career")
	require.True(t, ok)
	require.Equal(t, "career", career.Slug)
	require.Equal(t, "Career", career.Name)

	rel := table.Spreads[2]
	require.Equal(t, 4, rel.CardCount, "card count falls back to number of positions")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryContent))
}

func TestSpreadsIn(t *testing.T) {
	table := loadFixture(t)

	general := table.SpreadsIn("general")
	require.Len(t, general, 2)
	require.Equal(t, "three-card", general[0].ID)
	require.Equal(t, "celtic-cross", general[1].ID)

	require.Empty(t, table.SpreadsIn("career"))
}

func TestUsedCategoriesMatchDistinctTags(t *testing.T) {
	table := loadFixture(t)

	tags := map[string]bool{}
	for _, s := range table.Spreads {
		tags[s.Category] = true
	}

	used := table.UsedCategories()
	require.Len(t, used, len(tags))
	require.Equal(t, "general", used[0].ID)
	require.Equal(t, "love", used[1].ID)
}

func TestParse_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"unknown category", "categories: [{id: a}]\nspreads: [{id: s, name: S, category: b}]\n"},
		{"duplicate spread id", "categories: [{id: a}]\nspreads: [{id: s, name: S, category: a}, {id: s, name: T, slug: t, category: a}]\n"},
		{"duplicate spread slug", "categories: [{id: a}]\nspreads: [{id: s, name: S, slug: x, category: a}, {id: t, name: T, slug: x, category: a}]\n"},
		{"duplicate category id", "categories: [{id: a}, {id: a, slug: b}]\n"},
		{"spread without name", "categories: [{id: a}]\nspreads: [{id: s, category: a}]\n"},
		{"slug with separator", "categories: [{id: a}]\nspreads: [{id: s, name: S, slug: a/b, category: a}]\n"},
		{"category without id", "categories: [{name: x}]\n"},
		{"not yaml", "spreads: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			require.True(t, errors.IsCategory(err, errors.CategoryContent))
		})
	}
}
