// Package tree membangun forest section per guru dari baris flat dan
// menyediakan transform murni di atasnya (agregasi, filter, sort).
// Semua transform mengembalikan node/slice baru — struktur input tidak
// pernah dimutasi karena satu tree dipakai ulang lintas parameter.
package tree

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Flat adalah satu baris section hasil query, sebelum disusun jadi tree.
type Flat struct {
	ID          uuid.UUID
	ParentID    *uuid.UUID
	Name        string
	Description string
	Icon        *string
	TaskCount   int
	CreatedAt   time.Time
}

// Node adalah satu section dalam forest, dengan children tersarang.
type Node struct {
	ID          uuid.UUID  `json:"section_id"`
	ParentID    *uuid.UUID `json:"section_parent_id,omitempty"`
	Name        string     `json:"section_name"`
	Description string     `json:"section_description,omitempty"`
	Icon        *string    `json:"section_icon,omitempty"`
	TaskCount   int        `json:"task_count"`  // tugas milik node ini saja
	ChildCount  int        `json:"child_count"` // anak langsung
	CreatedAt   time.Time  `json:"section_created_at"`
	Children    []*Node    `json:"children"`
}

// SortKey untuk Sort.
type SortKey string

const (
	SortByName     SortKey = "name"     // kolasi Arab, ascending
	SortByTasks    SortKey = "tasks"    // SumTasks, descending
	SortByChildren SortKey = "children" // anak langsung, descending
)

func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByTasks:
		return SortByTasks
	case SortByChildren:
		return SortByChildren
	default:
		return SortByName
	}
}

// Build menyusun forest dari baris flat dengan satu pass index
// children-by-parent-id lalu rekursi — kedalaman bebas, tidak ada
// nesting yang di-hardcode. Urutan input (created_at asc dari query)
// dipertahankan di setiap level.
//
// Baris yang parent-nya tidak ada dalam scope dianggap root tambahan,
// bukan dibuang diam-diam; inkonsistensi semacam itu seharusnya sudah
// ditolak saat tulis.
func Build(rows []Flat) []*Node {
	byID := make(map[uuid.UUID]struct{}, len(rows))
	for _, r := range rows {
		byID[r.ID] = struct{}{}
	}

	childrenOf := make(map[uuid.UUID][]Flat)
	var roots []Flat
	for _, r := range rows {
		if r.ParentID == nil {
			roots = append(roots, r)
			continue
		}
		if _, ok := byID[*r.ParentID]; !ok {
			roots = append(roots, r) // orphan → surface sebagai root
			continue
		}
		childrenOf[*r.ParentID] = append(childrenOf[*r.ParentID], r)
	}

	var attach func(r Flat) *Node
	attach = func(r Flat) *Node {
		kids := childrenOf[r.ID]
		n := &Node{
			ID:          r.ID,
			ParentID:    r.ParentID,
			Name:        r.Name,
			Description: r.Description,
			Icon:        r.Icon,
			TaskCount:   r.TaskCount,
			CreatedAt:   r.CreatedAt,
			Children:    make([]*Node, 0, len(kids)),
		}
		for _, k := range kids {
			n.Children = append(n.Children, attach(k))
		}
		n.ChildCount = len(n.Children)
		return n
	}

	forest := make([]*Node, 0, len(roots))
	for _, r := range roots {
		forest = append(forest, attach(r))
	}
	return forest
}

// SumTasks menjumlahkan task milik node ini + seluruh keturunannya.
func SumTasks(n *Node) int {
	if n == nil {
		return 0
	}
	total := n.TaskCount
	for _, c := range n.Children {
		total += SumTasks(c)
	}
	return total
}

// CountDescendants menghitung seluruh keturunan (bukan hanya anak langsung).
func CountDescendants(n *Node) int {
	if n == nil {
		return 0
	}
	total := 0
	for _, c := range n.Children {
		total += 1 + CountDescendants(c)
	}
	return total
}

// Filter menyaring forest dengan substring case-insensitive terhadap nama
// dan deskripsi di kedalaman manapun. Node dipertahankan bila cocok
// langsung ATAU ada keturunan (setelah difilter) yang cocok; leluhur dari
// yang cocok selalu ikut dengan children yang sudah terfilter. Term kosong
// adalah identitas.
func Filter(nodes []*Node, term string) []*Node {
	term = strings.TrimSpace(term)
	if term == "" {
		return nodes
	}
	needle := strings.ToLower(term)

	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		matches := strings.Contains(strings.ToLower(n.Name), needle) ||
			strings.Contains(strings.ToLower(n.Description), needle)

		kept := Filter(n.Children, needle)
		if matches || len(kept) > 0 {
			clone := *n
			clone.Children = kept
			out = append(out, &clone)
		}
	}
	return out
}

// Sort mengurutkan sibling di tiap level secara stabil dengan key yang
// sama, rekursif, tanpa memutasi input. Kolator dibuat per panggilan:
// CompareString memutasi state internal iterator kolator, jadi satu
// instance bersama tidak aman dipakai lintas request.
func Sort(nodes []*Node, key SortKey) []*Node {
	return sortWith(nodes, key, collate.New(language.Arabic))
}

func sortWith(nodes []*Node, key SortKey, col *collate.Collator) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		clone := *n
		clone.Children = sortWith(n.Children, key, col)
		out = append(out, &clone)
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch key {
		case SortByTasks:
			return SumTasks(out[i]) > SumTasks(out[j])
		case SortByChildren:
			return out[i].ChildCount > out[j].ChildCount
		default:
			return col.CompareString(out[i].Name, out[j].Name) < 0
		}
	})
	return out
}
