package generator

import (
	"bytes"
	"path"
	"strings"
	"text/template"
)

type (
	// TestFile is a rendered test class
	TestFile struct {
		TestID  string
		Path    string
		Content string
	}

	// Generator renders test cases into test classes of one package
	Generator struct {
		Package string
	}

	methodData struct {
		*TestCase
		Steps []stepData
	}

	stepData struct {
		Text   string
		Method string
	}

	classData struct {
		Package   string
		ClassName string
		Category  string
		Methods   []string
	}
)

// DefaultPackage is the Java package generated classes are placed in
const DefaultPackage = "com.nakivo.tests.manual"

var funcs = template.FuncMap{
	"quote": javaString,
}

var methodTemplate = template.Must(template.New("method").Funcs(funcs).Parse(
	`    @FrameworkAnnotation(author = {AuthorType.QA}, ` +
		`category = {CategoryType.{{.Feature}}})
    @Test(groups = { {{.Groups}} }, description = {{quote .Title}})
    public void {{.ID}}() {
{{- range .Steps}}
        // {{.Text}}
        {{.Method}}
{{- end}}
    }
`))

var classTemplate = template.Must(template.New("class").Funcs(funcs).Parse(
	`package {{.Package}};

import org.testng.annotations.Test;

public class {{.ClassName}} extends BaseTest {
{{range .Methods}}
{{.}}{{end}}}
`))

// New creates a Generator for the default package
func New() *Generator {
	return &Generator{Package: DefaultPackage}
}

// Generate parses the description and renders its test class
func (g *Generator) Generate(text string, m *Mappings) (*TestFile, error) {
	tc, err := ParseTestCase(text)
	if err != nil {
		return nil, err
	}
	return g.Render(tc, m)
}

// Render resolves every step of the test case and renders a class holding
// its test method. A step with no mapping fails the whole render
func (g *Generator) Render(tc *TestCase, m *Mappings) (*TestFile, error) {
	steps := make([]stepData, len(tc.Steps))
	for i, s := range tc.Steps {
		res, err := m.Resolve(s)
		if err != nil {
			return nil, err
		}
		steps[i] = stepData{Text: s, Method: res.Method}
	}

	var method bytes.Buffer
	err := methodTemplate.Execute(&method, &methodData{
		TestCase: tc,
		Steps:    steps,
	})
	if err != nil {
		return nil, err
	}

	var class bytes.Buffer
	err = classTemplate.Execute(&class, &classData{
		Package:   g.Package,
		ClassName: tc.ClassName(),
		Category:  tc.Category,
		Methods:   []string{method.String()},
	})
	if err != nil {
		return nil, err
	}

	return &TestFile{
		TestID:  tc.ID,
		Path:    g.Path(tc),
		Content: class.String(),
	}, nil
}

// Path returns the repository path of the test case's class file
func (g *Generator) Path(tc *TestCase) string {
	dir := strings.ReplaceAll(g.Package, ".", "/")
	return path.Join("src/test/java", dir, tc.ClassName()+".java")
}

func javaString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
