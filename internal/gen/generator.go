package gen

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/match"
	"newtype-generator/internal/plan"
)

// Header is the generated-code marker written at the top of every file.
const Header = "Code generated by newtype-generator. DO NOT EDIT."

// param is the parameter name of every generated function.
const param = "v"

// ErrPlanHasErrors is returned when generating from a plan with error diagnostics.
var ErrPlanHasErrors = errors.New("plan has errors")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// PkgPath is the import path of the generated package. Defaults to the
	// plan's output package path.
	PkgPath string
	// SingleFile, when set, puts every function into one file of that name.
	SingleFile string
	// GenerateComments enables doc comments on generated functions.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "conv",
		GenerateComments: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "basic_foo_conv.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates Go code from a Plan. Functions are grouped into files
// by target type, keeping plan order inside each file; files are sorted by
// name.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	if p == nil {
		return nil, errors.New("plan is nil")
	}

	if p.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrPlanHasErrors, p.Diagnostics.Error())
	}

	pkgPath := g.config.PkgPath
	if pkgPath == "" {
		pkgPath = p.OutputPkgPath
	}

	groups := make(map[string][]*plan.Conversion)

	for _, c := range p.Conversions {
		name := g.filename(c)
		groups[name] = append(groups[name], c)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}

	sort.Strings(names)

	files := make([]GeneratedFile, 0, len(names))

	for _, name := range names {
		content, err := g.render(pkgPath, groups[name])
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", name, err)
		}

		files = append(files, GeneratedFile{Filename: name, Content: content})
	}

	return files, nil
}

// filename returns the file a conversion is written to:
// "<pkg>_<target>_conv.go", or the configured single file.
func (g *Generator) filename(c *plan.Conversion) string {
	if g.config.SingleFile != "" {
		return g.config.SingleFile
	}

	target := analyze.TypeName(c.To)
	if id, ok := analyze.IDOf(c.To); ok && id.PkgPath != "" {
		target = analyze.TypeString(c.To)
	}

	return match.SnakeCase(target) + "_conv.go"
}

func (g *Generator) render(pkgPath string, convs []*plan.Conversion) ([]byte, error) {
	f := jen.NewFilePathName(pkgPath, g.config.PackageName)
	f.HeaderComment(Header)

	for i, c := range convs {
		if i > 0 {
			f.Line()
		}

		code, err := g.function(f, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name, err)
		}

		if g.config.GenerateComments {
			for _, line := range docLines(c) {
				f.Comment(line)
			}
		}

		f.Add(code)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}

	return buf.Bytes(), nil
}

// function builds the declaration of one generated conversion.
func (g *Generator) function(f *jen.File, c *plan.Conversion) (jen.Code, error) {
	importNames(f, c.To)

	switch c.Kind {
	case plan.KindDirect:
		if c.Held == nil {
			return nil, errors.New("direct conversion without held step")
		}

		importNames(f, c.From)
		importNames(f, c.Wrapper.Value.GoType)

		held := linkCode(f, c.Held, jen.Id(param))

		return jen.Func().Id(c.Name).
			Params(jen.Id(param).Add(typeCode(c.From))).
			Add(typeCode(c.To)).
			Block(jen.Return(construct(c, held))), nil

	case plan.KindBlanket:
		terms := make([]jen.Code, len(c.Terms))
		for i, t := range c.Terms {
			importNames(f, t)
			terms[i] = jen.Op("~").Add(typeCode(t))
		}

		held := c.Wrapper.Held()
		importNames(f, held)
		importNames(f, c.Wrapper.Value.GoType)

		return jen.Func().Id(c.Name).
			Types(jen.Id("T").Union(terms...)).
			Params(jen.Id(param).Id("T")).
			Add(typeCode(c.To)).
			Block(jen.Return(construct(c, convertCode(held, jen.Id(param))))), nil

	case plan.KindChain:
		if len(c.Links) == 0 {
			return nil, errors.New("chain conversion without links")
		}

		importNames(f, c.From)

		var expr jen.Code = jen.Id(param)
		for i := range c.Links {
			expr = linkCode(f, &c.Links[i], expr)
		}

		return jen.Func().Id(c.Name).
			Params(jen.Id(param).Add(typeCode(c.From))).
			Add(typeCode(c.To)).
			Block(jen.Return(expr)), nil

	default:
		return nil, fmt.Errorf("cannot generate %s conversion", c.Kind)
	}
}

// construct builds the wrapper value around the held expression.
func construct(c *plan.Conversion, held jen.Code) jen.Code {
	w := c.Wrapper
	value := w.Value

	var expr *jen.Statement
	if value.Shape == analyze.ShapeStruct {
		expr = typeCode(value.GoType).Values(jen.Id(value.Field.Name).Op(":").Add(held))
	} else {
		expr = typeCode(value.GoType).Call(held)
	}

	if w.Pointer {
		return jen.Op("&").Add(expr)
	}

	return expr
}

// linkCode applies a link to arg: a call of the linked function, or a Go
// conversion.
func linkCode(f *jen.File, l *plan.Link, arg jen.Code) *jen.Statement {
	if l.Native() {
		importNames(f, l.To)
		return convertCode(l.To, arg)
	}

	return jen.Qual(l.Via.PkgPath, l.Via.Name).Call(arg)
}

// docLines returns the doc comment of a generated function.
func docLines(c *plan.Conversion) []string {
	to := analyze.TypeString(c.To)

	switch c.Kind {
	case plan.KindDirect:
		line := fmt.Sprintf("%s converts %s to %s", c.Name, analyze.TypeString(c.From), to)
		if c.Wrapper.Case != "" {
			line += ", as case " + c.Wrapper.Case
		}

		return []string{line + "."}

	case plan.KindBlanket:
		terms := make([]string, len(c.Terms))
		for i, t := range c.Terms {
			terms[i] = analyze.TypeString(t)
		}

		return []string{
			fmt.Sprintf("%s converts any type whose underlying type is %s to %s.", c.Name, orList(terms), to),
			"It accepts every type in that type set, including named types declared",
			"elsewhere; use a direct conversion when only specific types are meant.",
		}

	case plan.KindChain:
		via := make([]string, 0, len(c.Path))
		for _, t := range c.Path[1 : len(c.Path)-1] {
			via = append(via, analyze.TypeString(t))
		}

		line := fmt.Sprintf("%s converts %s to %s", c.Name, analyze.TypeString(c.From), to)
		if len(via) > 0 {
			line += " through " + strings.Join(via, ", ")
		}

		return []string{line + "."}

	default:
		return nil
	}
}

func orList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
	}
}
