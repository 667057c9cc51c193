package insights

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"genolens/api/models"
	"genolens/api/models/constants"
	c "genolens/api/models/constants/category"
	p "genolens/api/models/constants/priority"

	linq "github.com/ahmetb/go-linq"
	yaml "gopkg.in/yaml.v2"
)

//go:embed catalog.yml
var catalogAsset []byte

// every collection in the embedded catalog holds exactly this many insights
const CatalogInsightsPerCollection = 3

type (
	// Catalog is the read-only table of pre-authored insight collections
	// keyed by canned category. It is never mutated after loading.
	Catalog struct {
		collections map[constants.Category][]models.InsightCollection
	}

	// Sampler draws collections from a Catalog with an explicit random source.
	Sampler struct {
		catalog *Catalog
		rngMux  sync.Mutex
		rng     *rand.Rand
	}
)

// LoadCatalog parses the embedded catalog asset.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogAsset, CatalogInsightsPerCollection)
}

func ParseCatalog(raw []byte, insightsPerCollection int) (*Catalog, error) {
	parsed := map[string][]models.InsightCollection{}
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing insight catalog: %w", err)
	}

	collections := map[constants.Category][]models.InsightCollection{}
	for _, cat := range c.CannedCategories {
		entries, ok := parsed[string(cat)]
		if !ok || len(entries) == 0 {
			return nil, fmt.Errorf("insight catalog has no collections for category %q", cat)
		}

		for i := range entries {
			entries[i].Category = cat
			if len(entries[i].Insights) != insightsPerCollection {
				return nil, fmt.Errorf("collection %q holds %d insights, expected %d",
					entries[i].Title, len(entries[i].Insights), insightsPerCollection)
			}
			for j := range entries[i].Insights {
				entries[i].Insights[j].Priority = p.CastToPriority(string(entries[i].Insights[j].Priority))
			}
		}
		collections[cat] = entries
	}

	return &Catalog{collections: collections}, nil
}

func (cat *Catalog) Categories() []constants.Category {
	return c.CannedCategories
}

// Collections returns a copy of the collections of one category.
func (cat *Catalog) Collections(category constants.Category) []models.InsightCollection {
	return cloneCollections(cat.collections[category])
}

/*
Search keeps the collections of every canned category whose title, or any of
whose insight titles or descriptions, contain the query (case-insensitive).
An empty query returns everything.
*/
func (cat *Catalog) Search(query string) map[constants.Category][]models.InsightCollection {
	needle := strings.ToLower(strings.TrimSpace(query))

	results := map[constants.Category][]models.InsightCollection{}
	for _, category := range c.CannedCategories {
		var matching []models.InsightCollection
		linq.From(cat.collections[category]).
			WhereT(func(collection models.InsightCollection) bool {
				return needle == "" || collectionMatches(collection, needle)
			}).
			ToSlice(&matching)

		if matching == nil {
			matching = []models.InsightCollection{}
		}
		results[category] = cloneCollections(matching)
	}
	return results
}

func collectionMatches(collection models.InsightCollection, needle string) bool {
	if strings.Contains(strings.ToLower(collection.Title), needle) {
		return true
	}
	return linq.From(collection.Insights).AnyWithT(func(insight models.Insight) bool {
		return strings.Contains(strings.ToLower(insight.Title), needle) ||
			strings.Contains(strings.ToLower(insight.Description), needle)
	})
}

// NewSampler seeds its own source; seed 0 picks a time based seed.
func NewSampler(catalog *Catalog, seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewSamplerWithSource(catalog, rand.NewSource(seed))
}

func NewSamplerWithSource(catalog *Catalog, source rand.Source) *Sampler {
	return &Sampler{
		catalog: catalog,
		rng:     rand.New(source),
	}
}

// Sample picks up to n distinct collections of a category, uniformly at random.
func (s *Sampler) Sample(category constants.Category, n int) []models.InsightCollection {
	available := s.catalog.collections[category]
	if n > len(available) {
		n = len(available)
	}
	if n <= 0 {
		return []models.InsightCollection{}
	}

	s.rngMux.Lock()
	order := s.rng.Perm(len(available))
	s.rngMux.Unlock()

	selected := make([]models.InsightCollection, 0, n)
	for _, idx := range order[:n] {
		selected = append(selected, available[idx])
	}
	return cloneCollections(selected)
}

// SampleOne picks one collection per canned category.
func (s *Sampler) SampleOne() []models.InsightCollection {
	selected := make([]models.InsightCollection, 0, len(c.CannedCategories))
	for _, category := range c.CannedCategories {
		selected = append(selected, s.Sample(category, 1)...)
	}
	return selected
}

/*
FitCollections returns copies of the given collections holding exactly count
insights each: longer ones are trimmed, shorter ones are backfilled with the
category placeholder.
*/
func FitCollections(collections []models.InsightCollection, count int) []models.InsightCollection {
	if count < 0 {
		count = 0
	}

	out := cloneCollections(collections)
	for i := range out {
		if len(out[i].Insights) > count {
			out[i].Insights = out[i].Insights[:count]
		}
		for len(out[i].Insights) < count {
			out[i].Insights = append(out[i].Insights, Placeholder(out[i].Category))
		}
	}
	return out
}

// - helpers
func cloneCollections(src []models.InsightCollection) []models.InsightCollection {
	out := make([]models.InsightCollection, len(src))
	for i, collection := range src {
		out[i] = collection
		out[i].Insights = append([]models.Insight(nil), collection.Insights...)
	}
	return out
}
