package mvndeps

import (
	"github.com/go-mvndeps/mvndeps/coordinate"
	"github.com/go-mvndeps/mvndeps/render"
)

// Render produces m's canonical document: a deterministic YAML-like text
// suitable for fixtures and diffing, not for feeding back into a parser
// (the manifest grammar is the upstream parser's concern).
func (m Model) Render() string {
	resolved := m.Options
	languages := resolved.Languages
	if languages == nil {
		languages = Default().Languages
	}
	resolvers := resolved.Resolvers
	if resolvers == nil {
		resolvers = Default().Resolvers
	}

	rm := render.Model{
		Dependencies: m.Dependencies,
		Replacements: m.Replacements,
		HasOptions:   true,
		Options: render.Options{
			Policy:       resolved.Policy().String(),
			Directory:    string(resolved.Directory()),
			Languages:    languageNames(languages),
			Resolvers:    renderResolvers(resolvers),
			Transitivity: resolved.TransitivityMode().String(),
			BuildHeader:  resolved.BuildHeader,
		},
	}
	return render.Document(rm)
}

func languageNames(langs []coordinate.Language) []string {
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = l.String()
	}
	return out
}

func renderResolvers(resolvers []Resolver) []render.Resolver {
	out := make([]render.Resolver, len(resolvers))
	for i, r := range resolvers {
		out[i] = render.Resolver{ID: r.ID, Type: r.Type, URL: r.URL}
	}
	return out
}
