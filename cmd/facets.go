package main

import (
	"github.com/uvalib/virgo4-api/v4api"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/facet"
)

// link renders a toggle query as a link relative to the current endpoint.
func (s *searchContext) link(q facet.State) string {
	path := s.client.ginCtx.Request.URL.Path

	if encoded := q.Encode(); encoded != "" {
		return path + "?" + encoded
	}

	return path
}

func (s *searchContext) facetValueResult(v *facet.Value) facetValueResult {
	return facetValueResult{
		Value:    v.Value,
		Label:    v.DisplayLabel(),
		Count:    v.Count,
		Selected: v.Selected,
		Link:     s.link(v.Query),
	}
}

func (s *searchContext) facetNodeResults(n facet.Node) []facetNodeResult {
	var nodes []facetNodeResult

	for _, child := range n.Children() {
		node := facetNodeResult{
			ID:       child.ID(),
			Label:    child.Label(),
			Children: s.facetNodeResults(child),
		}

		if child.HasValue() == true {
			val := s.facetValueResult(child.Value())
			node.Value = &val
		}

		nodes = append(nodes, node)
	}

	return nodes
}

func adapterField(a *facet.Adapter) string {
	if f, ok := a.Impl().(interface{ Field() string }); ok == true {
		return f.Field()
	}

	return ""
}

func (s *searchContext) facetResults() []facetResult {
	var facets []facetResult

	for a := range s.facets.All() {
		container := a.Container()

		res := facetResult{
			Name:             a.Name(),
			Label:            a.Label(),
			Field:            adapterField(a),
			Container:        "list",
			HasSelectedValue: container.HasSelectedValue(),
		}

		if tree, ok := container.(*facet.Tree); ok == true {
			res.Container = "tree"
			res.Nodes = s.facetNodeResults(tree.Root())
		} else {
			for v := range container.All() {
				res.Values = append(res.Values, s.facetValueResult(v))
			}
		}

		facets = append(facets, res)
	}

	return facets
}

// poolFacets renders every facet as a flat bucket list, in container order.
// Bucket values are request values, usable as filter values.
func (s *searchContext) poolFacets() []v4api.Facet {
	facets := []v4api.Facet{}

	for a := range s.facets.All() {
		f := v4api.Facet{
			ID:   a.Name(),
			Name: a.Label(),
		}

		for v := range a.Container().All() {
			value, ok := a.Mapper().ToRequestValue(v.Value)
			if ok == false {
				continue
			}

			f.Buckets = append(f.Buckets, v4api.FacetBucket{Value: value, Count: v.Count, Selected: v.Selected})
		}

		facets = append(facets, f)
	}

	return facets
}
