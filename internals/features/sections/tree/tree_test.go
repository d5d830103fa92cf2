package tree

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(name string, parent *uuid.UUID, tasks int, at time.Time) Flat {
	return Flat{
		ID:        uuid.New(),
		ParentID:  parent,
		Name:      name,
		TaskCount: tasks,
		CreatedAt: at,
	}
}

// quran(3 tasks) ── juz_amma(1) ── naba(2)
//               └─ baqarah(0)
// fiqh(5)
func buildFixture(t *testing.T) ([]*Node, []Flat) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	quran := flat("القرآن", nil, 3, base)
	juzAmma := flat("جزء عم", &quran.ID, 1, base.Add(time.Hour))
	naba := flat("سورة النبأ", &juzAmma.ID, 2, base.Add(2*time.Hour))
	baqarah := flat("سورة البقرة", &quran.ID, 0, base.Add(3*time.Hour))
	fiqh := flat("الفقه", nil, 5, base.Add(4*time.Hour))
	baqarah.Description = "حفظ ومراجعة"

	rows := []Flat{quran, juzAmma, naba, baqarah, fiqh}
	forest := Build(rows)
	require.Len(t, forest, 2)
	return forest, rows
}

func TestBuildParentChildConsistency(t *testing.T) {
	forest, _ := buildFixture(t)

	// setiap node dengan parent resolvable muncul tepat sekali di
	// children parent-nya
	index := map[uuid.UUID]*Node{}
	var walk func(n *Node)
	walk = func(n *Node) {
		index[n.ID] = n
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range forest {
		walk(r)
	}

	for _, n := range index {
		if n.ParentID == nil {
			continue
		}
		parent, ok := index[*n.ParentID]
		require.True(t, ok)
		seen := 0
		for _, c := range parent.Children {
			if c.ID == n.ID {
				seen++
			}
		}
		assert.Equal(t, 1, seen, "node %s harus muncul sekali di children parent", n.Name)
	}
}

func TestBuildSurfacesOrphanAsRoot(t *testing.T) {
	ghost := uuid.New()
	orphan := flat("يتيم", &ghost, 1, time.Now())
	forest := Build([]Flat{orphan})

	require.Len(t, forest, 1)
	assert.Equal(t, "يتيم", forest[0].Name)
}

func TestBuildIsDepthAgnostic(t *testing.T) {
	// rantai 6 level — tidak ada kedalaman yang di-hardcode
	base := time.Now()
	rows := make([]Flat, 0, 6)
	var parent *uuid.UUID
	for i := 0; i < 6; i++ {
		f := flat(string(rune('a'+i)), parent, 1, base)
		rows = append(rows, f)
		parent = &rows[i].ID
	}
	forest := Build(rows)

	require.Len(t, forest, 1)
	depth := 0
	for n := forest[0]; n != nil; {
		depth++
		if len(n.Children) == 0 {
			break
		}
		require.Len(t, n.Children, 1)
		n = n.Children[0]
	}
	assert.Equal(t, 6, depth)
	assert.Equal(t, 6, SumTasks(forest[0]))
}

func TestSumTasksEqualsSubtreeTotal(t *testing.T) {
	forest, _ := buildFixture(t)

	var quran, fiqh *Node
	for _, r := range forest {
		switch r.Name {
		case "القرآن":
			quran = r
		case "الفقه":
			fiqh = r
		}
	}
	require.NotNil(t, quran)
	require.NotNil(t, fiqh)

	assert.Equal(t, 3+1+2+0, SumTasks(quran))
	assert.Equal(t, 5, SumTasks(fiqh))
	assert.Equal(t, 3, CountDescendants(quran))
	assert.Equal(t, 0, CountDescendants(fiqh))
	assert.Equal(t, 2, quran.ChildCount)
}

func TestFilterEmptyTermIsIdentity(t *testing.T) {
	forest, _ := buildFixture(t)
	assert.Equal(t, forest, Filter(forest, ""))
	assert.Equal(t, forest, Filter(forest, "   "))
}

func TestFilterKeepsAncestorsOfMatches(t *testing.T) {
	forest, _ := buildFixture(t)

	got := Filter(forest, "النبأ")
	require.Len(t, got, 1)
	assert.Equal(t, "القرآن", got[0].Name)
	require.Len(t, got[0].Children, 1)
	assert.Equal(t, "جزء عم", got[0].Children[0].Name)
	require.Len(t, got[0].Children[0].Children, 1)
	assert.Equal(t, "سورة النبأ", got[0].Children[0].Children[0].Name)
}

func TestFilterMatchesDescriptionAndPrunesRest(t *testing.T) {
	forest, _ := buildFixture(t)

	got := Filter(forest, "مراجعة")
	require.Len(t, got, 1)
	assert.Equal(t, "القرآن", got[0].Name)
	require.Len(t, got[0].Children, 1)
	assert.Equal(t, "سورة البقرة", got[0].Children[0].Name)
}

func TestFilterNeverKeepsNonMatchWithoutMatchingDescendant(t *testing.T) {
	forest, _ := buildFixture(t)

	got := Filter(forest, "لا يوجد")
	assert.Empty(t, got)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	forest, _ := buildFixture(t)
	beforeChildren := len(forest[0].Children)

	_ = Filter(forest, "النبأ")

	assert.Len(t, forest[0].Children, beforeChildren)
}

func TestSortByTasksDescendingPerLevel(t *testing.T) {
	forest, _ := buildFixture(t)

	got := Sort(forest, SortByTasks)
	// subtree القرآن punya 6 task total, الفقه punya 5
	assert.Equal(t, "القرآن", got[0].Name)
	assert.Equal(t, "الفقه", got[1].Name)
	// level anak ikut terurut: جزء عم (3 total) sebelum البقرة (0)
	assert.Equal(t, "جزء عم", got[0].Children[0].Name)
	assert.Equal(t, "سورة البقرة", got[0].Children[1].Name)
}

func TestSortByNameIsIdempotent(t *testing.T) {
	forest, _ := buildFixture(t)

	once := Sort(forest, SortByName)
	twice := Sort(once, SortByName)

	var names func(nodes []*Node) []string
	names = func(nodes []*Node) []string {
		out := make([]string, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, n.Name)
			out = append(out, names(n.Children)...)
		}
		return out
	}
	assert.Equal(t, names(once), names(twice))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	forest, _ := buildFixture(t)
	first := forest[0].Name

	_ = Sort(forest, SortByName)

	assert.Equal(t, first, forest[0].Name)
}

// Sort dipanggil dari handler yang melayani banyak request sekaligus;
// kolasi nama harus aman dipanggil paralel (jalankan dengan -race).
func TestSortByNameIsSafeForParallelCalls(t *testing.T) {
	forest, _ := buildFixture(t)

	var wg sync.WaitGroup
	results := make([][]*Node, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Sort(forest, SortByName)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Len(t, r, 2)
		assert.Equal(t, results[0][0].Name, r[0].Name)
		assert.Equal(t, results[0][1].Name, r[1].Name)
	}
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortByTasks, ParseSortKey("tasks"))
	assert.Equal(t, SortByChildren, ParseSortKey(" CHILDREN "))
	assert.Equal(t, SortByName, ParseSortKey(""))
	assert.Equal(t, SortByName, ParseSortKey("banyak"))
}
