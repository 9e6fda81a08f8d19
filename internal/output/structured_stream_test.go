package output_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"slices"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/temirov/tree/internal/output"
	"github.com/temirov/tree/internal/types"
)

func childNames(node *types.TreeOutputNode) []string {
	var names []string
	for _, child := range node.Children {
		names = append(names, child.Name)
	}
	return names
}

func assertSampleDocument(testingInstance *testing.T, document types.TreeOutput) {
	testingInstance.Helper()
	if document.Root == nil {
		testingInstance.Fatalf("missing root node")
	}
	if document.Root.Name != "project" || document.Root.Type != types.NodeTypeDirectory {
		testingInstance.Fatalf("unexpected root %+v", document.Root)
	}
	if names := childNames(document.Root); !slices.Equal(names, []string{"a.txt", "docs", "src"}) {
		testingInstance.Fatalf("unexpected root children %v", names)
	}
	docs := document.Root.Children[1]
	if docs.Type != types.NodeTypeDirectory {
		testingInstance.Fatalf("docs should be a directory, got %q", docs.Type)
	}
	if names := childNames(docs); !slices.Equal(names, []string{"guide.md", "img"}) {
		testingInstance.Fatalf("unexpected docs children %v", names)
	}
	if names := childNames(docs.Children[1]); !slices.Equal(names, []string{"logo.png"}) {
		testingInstance.Fatalf("unexpected img children %v", names)
	}
	if document.Root.Children[0].Type != types.NodeTypeFile {
		testingInstance.Fatalf("a.txt should be a file, got %q", document.Root.Children[0].Type)
	}
	if document.Summary != (types.Stats{Directories: 3, Files: 4}) {
		testingInstance.Fatalf("unexpected summary %+v", document.Summary)
	}
}

func TestStructuredRenderingSingleTree(testingInstance *testing.T) {
	testingInstance.Parallel()

	decoders := map[string]func([]byte, any) error{
		types.FormatJSON: json.Unmarshal,
		types.FormatXML:  xml.Unmarshal,
		types.FormatYAML: yaml.Unmarshal,
	}

	for format, decode := range decoders {
		format, decode := format, decode
		testingInstance.Run(format, func(testingInstance *testing.T) {
			testingInstance.Parallel()
			rendered := renderToString(testingInstance, []output.Tree{sampleTree("project")}, output.Options{Format: format})
			var document types.TreeOutput
			if decodeError := decode([]byte(rendered), &document); decodeError != nil {
				testingInstance.Fatalf("decode %s failed: %v\n%s", format, decodeError, rendered)
			}
			assertSampleDocument(testingInstance, document)
		})
	}
}

func TestStructuredRenderingMultipleTrees(testingInstance *testing.T) {
	trees := func() []output.Tree {
		return []output.Tree{sampleTree("project"), sampleTree("project")}
	}

	var jsonDocuments []types.TreeOutput
	if decodeError := json.Unmarshal([]byte(renderToString(testingInstance, trees(), output.Options{Format: types.FormatJSON})), &jsonDocuments); decodeError != nil {
		testingInstance.Fatalf("decode json failed: %v", decodeError)
	}
	if len(jsonDocuments) != 2 {
		testingInstance.Fatalf("expected 2 json documents, got %d", len(jsonDocuments))
	}

	var yamlDocuments []types.TreeOutput
	if decodeError := yaml.Unmarshal([]byte(renderToString(testingInstance, trees(), output.Options{Format: types.FormatYAML})), &yamlDocuments); decodeError != nil {
		testingInstance.Fatalf("decode yaml failed: %v", decodeError)
	}
	if len(yamlDocuments) != 2 {
		testingInstance.Fatalf("expected 2 yaml documents, got %d", len(yamlDocuments))
	}

	var xmlDocuments struct {
		XMLName xml.Name           `xml:"results"`
		Trees   []types.TreeOutput `xml:"tree"`
	}
	renderedXML := renderToString(testingInstance, trees(), output.Options{Format: types.FormatXML})
	if !strings.HasPrefix(renderedXML, xml.Header) {
		testingInstance.Fatalf("missing xml header: %s", renderedXML)
	}
	if decodeError := xml.Unmarshal([]byte(renderedXML), &xmlDocuments); decodeError != nil {
		testingInstance.Fatalf("decode xml failed: %v", decodeError)
	}
	if len(xmlDocuments.Trees) != 2 {
		testingInstance.Fatalf("expected 2 xml documents, got %d", len(xmlDocuments.Trees))
	}
	for _, document := range xmlDocuments.Trees {
		assertSampleDocument(testingInstance, document)
	}
}

func TestStructuredRenderingCarriesReadErrors(testingInstance *testing.T) {
	nodes := []types.TreeNode{
		{Name: "locked", Path: "locked", Depth: 1, IsDirectory: true, IsLast: true, ReadError: errors.New("permission denied")},
	}
	tree := output.Tree{Root: "project", AbsoluteRoot: "/work/project", Nodes: slices.Values(nodes), Stats: &types.Stats{}}

	var document types.TreeOutput
	rendered := renderToString(testingInstance, []output.Tree{tree}, output.Options{Format: types.FormatJSON})
	if decodeError := json.Unmarshal([]byte(rendered), &document); decodeError != nil {
		testingInstance.Fatalf("decode failed: %v", decodeError)
	}
	if len(document.Root.Children) != 1 || document.Root.Children[0].Error != "permission denied" {
		testingInstance.Fatalf("expected the read error on the locked node: %s", rendered)
	}
	if document.Root.Path != "project" {
		testingInstance.Fatalf("expected the root as given, got %q", document.Root.Path)
	}
}

func TestStructuredRenderingFullPathRoot(testingInstance *testing.T) {
	var buffer bytes.Buffer
	tree := output.Tree{Root: "project", AbsoluteRoot: "/work/project", Nodes: slices.Values([]types.TreeNode{}), Stats: &types.Stats{}}
	if renderError := output.Render(&buffer, []output.Tree{tree}, output.Options{Format: types.FormatJSON, FullPath: true}); renderError != nil {
		testingInstance.Fatalf("render failed: %v", renderError)
	}
	var document types.TreeOutput
	if decodeError := json.Unmarshal(buffer.Bytes(), &document); decodeError != nil {
		testingInstance.Fatalf("decode failed: %v", decodeError)
	}
	if document.Root.Path != "/work/project" || len(document.Root.Children) != 0 {
		testingInstance.Fatalf("unexpected root %+v", document.Root)
	}
}
