package service

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"libraryapi/internal/model"
	"libraryapi/internal/repository"
)

// AllCategoryID is the synthetic category matching every title.
const AllCategoryID = "all"

var categorySeparator = regexp.MustCompile(`\s*/\s*`)

// CategoryID derives the routing id for a category name: lowercased, with
// "/" separators (and surrounding whitespace) collapsed to "-".
// "Children / Moral Stories" becomes "children-moral stories".
func CategoryID(name string) string {
	return categorySeparator.ReplaceAllString(strings.ToLower(name), "-")
}

// CatalogService derives read-only presentation views from inventory
// snapshots. It is stateless: every call scans a fresh snapshot, so it never
// blocks the ledger's writers.
type CatalogService interface {
	// ListTitles returns the full catalog, title-ascending.
	ListTitles(ctx context.Context) ([]model.Title, error)

	// Search filters the catalog by category id and a case-insensitive
	// substring match over title, author, and category. Empty arguments
	// match everything.
	Search(ctx context.Context, query, categoryID string) ([]model.Title, error)

	// Categories groups titles by category (case-sensitive key) and returns
	// the list with counts, preceded by the synthetic "all" entry.
	Categories(ctx context.Context) ([]model.Category, error)
}

type catalogService struct {
	store repository.InventoryStore
}

// NewCatalogService constructs a catalog facade over the inventory store.
func NewCatalogService(store repository.InventoryStore) CatalogService {
	return &catalogService{store: store}
}

func (s *catalogService) ListTitles(ctx context.Context) ([]model.Title, error) {
	return s.store.List(ctx)
}

func (s *catalogService) Search(ctx context.Context, query, categoryID string) ([]model.Title, error) {
	titles, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Title, 0, len(titles))
	for _, t := range titles {
		if categoryID != "" && categoryID != AllCategoryID && CategoryID(t.Category) != categoryID {
			continue
		}
		if q != "" && !matchesQuery(&t, q) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func matchesQuery(t *model.Title, q string) bool {
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Author), q) ||
		strings.Contains(strings.ToLower(t.Category), q)
}

func (s *catalogService) Categories(ctx context.Context) ([]model.Category, error) {
	titles, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, t := range titles {
		counts[t.Category]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]model.Category, 0, len(names)+1)
	out = append(out, model.Category{ID: AllCategoryID, Name: "All Books", Count: len(titles)})
	for _, name := range names {
		out = append(out, model.Category{ID: CategoryID(name), Name: name, Count: counts[name]})
	}
	return out, nil
}
