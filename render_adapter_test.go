package mvndeps

import (
	"strings"
	"testing"

	"github.com/go-mvndeps/mvndeps/coordinate"
	"github.com/go-mvndeps/mvndeps/dependencies"
	"github.com/go-mvndeps/mvndeps/project"
	"github.com/go-mvndeps/mvndeps/version"
)

func TestRenderIncludesDeclaredDependency(t *testing.T) {
	deps := dependencies.FromMap(map[coordinate.MavenGroup]map[coordinate.ArtifactOrProject]project.Record{
		"com.google.guava": {
			"guava": {Lang: coordinate.Java, Version: version.New("31.1-jre"), HasVersion: true},
		},
	})
	m := Model{Dependencies: deps}

	doc := m.Render()
	if !strings.Contains(doc, "options:") {
		t.Errorf("Render() should include the options section by default:\n%s", doc)
	}
	if !strings.Contains(doc, "com.google.guava:") || !strings.Contains(doc, "guava:") {
		t.Errorf("Render() should include the declared dependency:\n%s", doc)
	}
	if !strings.Contains(doc, `"31.1-jre"`) {
		t.Errorf("Render() should quote the version string:\n%s", doc)
	}
}

func TestRenderFallsBackToDefaultLanguagesAndResolvers(t *testing.T) {
	m := Model{Dependencies: dependencies.New()}
	doc := m.Render()
	if !strings.Contains(doc, "java") || !strings.Contains(doc, "scala") {
		t.Errorf("Render() should list the default languages:\n%s", doc)
	}
	if !strings.Contains(doc, "central") {
		t.Errorf("Render() should list the default resolver:\n%s", doc)
	}
}
