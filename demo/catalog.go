package demo

import (
	"github.com/kbukum/rxfetch/executor"
	"github.com/kbukum/rxfetch/stream"
	"github.com/kbukum/rxfetch/user"
)

// Pipeline is a named, restartable pipeline.
type Pipeline struct {
	Name        string
	Description string
	Factory     executor.Factory
}

// Catalog is the ordered list of pipelines offered by the menu.
type Catalog []Pipeline

// NewCatalog binds the demo pipelines to ids and f.
func NewCatalog(ids []int, f user.Fetcher) Catalog {
	return Catalog{
		{
			Name:        NameMap,
			Description: "map ids to empty records",
			Factory:     executor.Bind(func() stream.Stream[user.Record] { return Map(ids) }),
		},
		{
			Name:        NameMapReduce,
			Description: "map ids to empty records, reduce to one array",
			Factory:     executor.Bind(func() stream.Stream[[]user.Record] { return MapReduce(ids) }),
		},
		{
			Name:        NameMergeMapReduce,
			Description: "fetch all users concurrently, reduce in arrival order",
			Factory:     executor.Bind(func() stream.Stream[[]user.Record] { return MergeMapReduce(ids, f) }),
		},
		{
			Name:        NameSwitchMapReduce,
			Description: "fetch users latest-only, reduce what survives",
			Factory:     executor.Bind(func() stream.Stream[[]user.Record] { return SwitchMapReduce(ids, f) }),
		},
	}
}

// Lookup finds a pipeline by name.
func (c Catalog) Lookup(name string) (Pipeline, bool) {
	for _, p := range c {
		if p.Name == name {
			return p, true
		}
	}
	return Pipeline{}, false
}

// Names lists the pipeline names in order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, p := range c {
		names[i] = p.Name
	}
	return names
}
