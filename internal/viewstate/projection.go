package viewstate

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"rhystmorgan/contactterm/internal/models"
)

// DefaultPageSize is the fixed number of cards per page.
const DefaultPageSize = 2

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

func (o SortOrder) Toggle() SortOrder {
	if o == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// Label is the human name of the order, "A-Z" or "Z-A".
func (o SortOrder) Label() string {
	if o == SortDescending {
		return "Z-A"
	}
	return "A-Z"
}

// Projection is the read-only view derived from the cached collection and the
// list controls.
type Projection struct {
	Visible   []models.Contact
	Page      int
	PageCount int
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// Filter keeps contacts whose folded name contains the folded term. The input
// slice is not modified.
func Filter(contacts []models.Contact, term string) []models.Contact {
	filtered := make([]models.Contact, 0, len(contacts))
	needle := fold(term)
	for _, contact := range contacts {
		if needle == "" || strings.Contains(fold(contact.Name), needle) {
			filtered = append(filtered, contact)
		}
	}
	return filtered
}

// Sort returns a copy of contacts ordered by folded name using English
// collation. Equal keys keep their input order.
func Sort(contacts []models.Contact, order SortOrder) []models.Contact {
	sorted := slices.Clone(contacts)
	if len(sorted) < 2 {
		return sorted
	}

	keys := make(map[string]string, len(sorted))
	for _, contact := range sorted {
		if _, ok := keys[contact.Name]; !ok {
			keys[contact.Name] = fold(contact.Name)
		}
	}

	collator := collate.New(language.English)
	slices.SortStableFunc(sorted, func(a, b models.Contact) int {
		if order == SortDescending {
			a, b = b, a
		}
		return collator.CompareString(keys[a.Name], keys[b.Name])
	})
	return sorted
}

// PageCount is ceil(n/size); zero for an empty list.
func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns the elements at [(page-1)*size, page*size). Pages outside
// the list yield an empty slice.
func Paginate(contacts []models.Contact, page, size int) []models.Contact {
	if page < 1 || size <= 0 {
		return []models.Contact{}
	}

	start := (page - 1) * size
	if start >= len(contacts) {
		return []models.Contact{}
	}
	end := min(start+size, len(contacts))
	return contacts[start:end:end]
}

// Project runs filter, sort and paginate over the cached collection.
func (s State) Project() Projection {
	matched := Sort(Filter(s.Contacts, s.SearchTerm), s.SortOrder)
	return Projection{
		Visible:   Paginate(matched, s.Page, s.PageSize),
		Page:      s.Page,
		PageCount: PageCount(len(matched), s.PageSize),
	}
}
