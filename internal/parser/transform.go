package parser

import (
	"strings"

	messages "github.com/cucumber/messages/go/v21"
)

// ParsedFile is the model extracted from a Document.
type ParsedFile struct {
	URI       string
	Name      string
	Tags      []string
	Scenarios []ParsedScenario
}

// ParsedScenario is one runnable scenario. Outlines yield one per
// examples row.
type ParsedScenario struct {
	Name  string
	Tags  []string
	Line  int // 1-based line of the Scenario: keyword, or of the examples row
	Steps []ParsedStep
}

// ParsedStep is a step with background steps already prepended and
// outline placeholders substituted.
type ParsedStep struct {
	Keyword string
	Text    string
	Line    int
}

type astNode struct {
	line    int
	keyword string
}

// Transform converts a Document into a ParsedFile.
func Transform(doc *Document) *ParsedFile {
	pf := &ParsedFile{URI: doc.URI}

	feature := doc.Gherkin.Feature
	if feature == nil {
		pf.Name = filenameWithoutExt(doc.URI)
		return pf
	}
	pf.Name = feature.Name
	if pf.Name == "" {
		pf.Name = filenameWithoutExt(doc.URI)
	}
	for _, tag := range feature.Tags {
		pf.Tags = append(pf.Tags, tag.Name)
	}

	nodes := indexNodes(feature)
	for _, pickle := range doc.Pickles {
		ps := ParsedScenario{Name: pickle.Name}
		for _, tag := range pickle.Tags {
			ps.Tags = append(ps.Tags, tag.Name)
		}
		// The last node id is the examples row for outlines.
		if n := len(pickle.AstNodeIds); n > 0 {
			ps.Line = nodes[pickle.AstNodeIds[n-1]].line
		}

		for _, step := range pickle.Steps {
			node := nodes[step.AstNodeIds[0]]
			ps.Steps = append(ps.Steps, ParsedStep{
				Keyword: node.keyword,
				Text:    step.Text,
				Line:    node.line,
			})
		}
		pf.Scenarios = append(pf.Scenarios, ps)
	}
	return pf
}

func indexNodes(feature *messages.Feature) map[string]astNode {
	nodes := map[string]astNode{}

	addSteps := func(steps []*messages.Step) {
		for _, s := range steps {
			nodes[s.Id] = astNode{line: int(s.Location.Line), keyword: strings.TrimSpace(s.Keyword)}
		}
	}
	addScenario := func(sc *messages.Scenario) {
		nodes[sc.Id] = astNode{line: int(sc.Location.Line), keyword: strings.TrimSpace(sc.Keyword)}
		addSteps(sc.Steps)
		for _, ex := range sc.Examples {
			for _, row := range ex.TableBody {
				nodes[row.Id] = astNode{line: int(row.Location.Line)}
			}
		}
	}

	for _, child := range feature.Children {
		switch {
		case child.Background != nil:
			addSteps(child.Background.Steps)
		case child.Scenario != nil:
			addScenario(child.Scenario)
		case child.Rule != nil:
			for _, rc := range child.Rule.Children {
				if rc.Background != nil {
					addSteps(rc.Background.Steps)
				}
				if rc.Scenario != nil {
					addScenario(rc.Scenario)
				}
			}
		}
	}
	return nodes
}

func filenameWithoutExt(filename string) string {
	name := filename
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[:idx]
	}
	return name
}
