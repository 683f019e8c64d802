package service

import (
	"strings"

	"tabletime/pkg/logger"
	"tabletime/pkg/model"
	"tabletime/pkg/sanitizer"
)

const anyRestaurantName = "Any"

type Directory interface {
	List() []model.Restaurant
	Get(id string) (model.Restaurant, bool)
	IsBookable(id string) bool
	Search(query string) []model.Restaurant
}

type directory struct {
	restaurants []model.Restaurant
	byID        map[string]model.Restaurant
	searchKeys  []string
}

// NewDirectory builds an immutable directory from display names. Names
// whose slug is empty, collides with an earlier entry, or is the "any"
// sentinel are skipped.
func NewDirectory(names []string, log *logger.Logger) Directory {
	d := &directory{
		restaurants: []model.Restaurant{{ID: model.AnyRestaurantID, Name: anyRestaurantName}},
		byID:        map[string]model.Restaurant{},
		searchKeys:  []string{""},
	}
	d.byID[model.AnyRestaurantID] = d.restaurants[0]

	for _, name := range names {
		name = sanitizer.NormalizeName(name)
		id := sanitizer.Slugify(name)
		if id == "" {
			log.Warn("skipping restaurant with empty id", "name", name)
			continue
		}
		if _, exists := d.byID[id]; exists {
			log.Warn("skipping duplicate restaurant", "id", id, "name", name)
			continue
		}

		r := model.Restaurant{ID: id, Name: name}
		d.restaurants = append(d.restaurants, r)
		d.byID[id] = r
		d.searchKeys = append(d.searchKeys, sanitizer.FoldForSearch(name)+" "+id)
	}

	log.Info("Restaurant directory loaded", "count", len(d.restaurants)-1)
	return d
}

func NewSeededDirectory(log *logger.Logger) Directory {
	return NewDirectory(SeedNames, log)
}

func (d *directory) List() []model.Restaurant {
	out := make([]model.Restaurant, len(d.restaurants))
	copy(out, d.restaurants)
	return out
}

func (d *directory) Get(id string) (model.Restaurant, bool) {
	r, ok := d.byID[id]
	return r, ok
}

func (d *directory) IsBookable(id string) bool {
	r, ok := d.Get(id)
	return ok && !r.IsSentinel()
}

// Search matches the folded query against each restaurant's name and id.
// The sentinel is only part of the result for an empty query.
func (d *directory) Search(query string) []model.Restaurant {
	q := sanitizer.FoldForSearch(query)
	if q == "" {
		return d.List()
	}

	out := []model.Restaurant{}
	for i, r := range d.restaurants {
		if r.IsSentinel() {
			continue
		}
		if strings.Contains(d.searchKeys[i], q) {
			out = append(out, r)
		}
	}
	return out
}
