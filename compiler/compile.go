package compiler

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/printer"
	"go/token"
	"go/types"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"
)

// Compile compiles generator functions in a package.
//
// The path argument can either be a path to a package, or a pattern that
// matches multiple packages (for example, /path/to/module/...). Source files
// of the packages which require the source build tag are compiled to files
// of the same name, with the output suffix, excluded from builds using the
// source tag.
//
// The path can be absolute, or relative to the current working directory.
func Compile(path string, options ...Option) error {
	c := &compiler{
		sourceTag:    "genc",
		outputSuffix: "_genc.go",
		fset:         token.NewFileSet(),
	}
	for _, option := range options {
		option(c)
	}
	return c.compile(path)
}

type compiler struct {
	sourceTag    string
	outputSuffix string
	buildTags    string

	fset *token.FileSet
}

func (c *compiler) compile(path string) error {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	var dotdotdot bool
	absPath, dotdotdot = strings.CutSuffix(absPath, "...")
	if s, err := os.Stat(absPath); err != nil {
		return err
	} else if !s.IsDir() {
		// Make sure we're loading whole packages.
		absPath = filepath.Dir(absPath)
	}
	var pattern string
	if dotdotdot {
		pattern = "./..."
	} else {
		pattern = "."
	}

	log.Printf("reading, parsing and type-checking")
	conf := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles |
			packages.NeedCompiledGoFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo,
		Fset:       c.fset,
		Dir:        absPath,
		BuildFlags: []string{"-tags=" + c.sourceTag},
	}
	pkgs, err := packages.Load(conf, pattern)
	if err != nil {
		return fmt.Errorf("packages.Load %q: %w", path, err)
	}
	for _, p := range pkgs {
		if len(p.Errors) > 0 {
			return p.Errors[0]
		}
	}

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for _, p := range pkgs {
		group.Go(func() error { return c.compilePackage(p) })
	}
	if err := group.Wait(); err != nil {
		return err
	}

	log.Printf("done")
	return nil
}

func (c *compiler) compilePackage(p *packages.Package) error {
	for _, f := range p.Syntax {
		path := c.fset.File(f.Pos()).Name()
		source, err := isSourceFile(f, c.sourceTag)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !source {
			continue
		}
		log.Printf("compiling %s", path)

		gen, err := c.compileFile(f, p.Types, p.TypesInfo)
		if err != nil {
			return err
		}
		outputPath := strings.TrimSuffix(path, ".go") + c.outputSuffix
		if err := c.writeFile(outputPath, gen); err != nil {
			return err
		}
	}
	return nil
}

// compileFile returns a copy of a source file where the generator functions
// are compiled. The other declarations are left as they are.
func (c *compiler) compileFile(f *ast.File, pkg *types.Package, info *types.Info) (*ast.File, error) {
	fc := newFileCompiler(c.fset, pkg, info, f)

	gen := &ast.File{
		Package:  f.Package,
		Name:     ast.NewIdent(f.Name.Name),
		Imports:  f.Imports,
		Comments: f.Comments,
	}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !fc.isGenerator(fn) {
			gen.Decls = append(gen.Decls, decl)
			continue
		}
		compiled, err := fc.compileFunction(fn)
		if err != nil {
			return nil, err
		}
		gen.Decls = append(gen.Decls, compiled)
	}

	for path, name := range fc.missing {
		if name == filepath.Base(path) {
			astutil.AddImport(c.fset, gen, path)
		} else {
			astutil.AddNamedImport(c.fset, gen, name, path)
		}
	}
	return gen, nil
}

func (c *compiler) formatFile(file *ast.File) ([]byte, error) {
	fileExpr, err := parseBuildTags(file)
	if err != nil {
		return nil, err
	}
	buildConstraint, err := outputConstraint(c.sourceTag, fileExpr, c.buildTags)
	if err != nil {
		return nil, err
	}
	// Comments are awkward to attach to the tree (they rely on token.Pos, which
	// is coupled to a token.FileSet). Instead, just write out the raw strings.
	var b bytes.Buffer
	b.WriteString("// Code generated by genc. DO NOT EDIT.\n\n")
	b.WriteString(buildConstraint)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "package %s\n", file.Name.Name)
	for _, decl := range file.Decls {
		b.WriteString("\n")
		// Compiled functions have no position information, their doc
		// comments are written out before them.
		if fn, ok := decl.(*ast.FuncDecl); ok && !fn.Pos().IsValid() {
			if fn.Doc != nil {
				for _, comment := range fn.Doc.List {
					b.WriteString(comment.Text)
					b.WriteString("\n")
				}
			}
			undocumented := *fn
			undocumented.Doc = nil
			if err := format.Node(&b, c.fset, &undocumented); err != nil {
				return nil, err
			}
		} else {
			node := &printer.CommentedNode{Node: decl, Comments: declComments(file, decl)}
			if err := format.Node(&b, c.fset, node); err != nil {
				return nil, err
			}
		}
		b.WriteString("\n")
	}
	return format.Source(b.Bytes())
}

// declComments returns the comments of a declaration which has position
// information, including its doc comment.
func declComments(file *ast.File, decl ast.Decl) []*ast.CommentGroup {
	start, end := decl.Pos(), decl.End()
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Doc != nil {
			start = d.Doc.Pos()
		}
	case *ast.GenDecl:
		if d.Doc != nil {
			start = d.Doc.Pos()
		}
	}
	var comments []*ast.CommentGroup
	for _, group := range file.Comments {
		if group.Pos() >= start && group.End() <= end {
			comments = append(comments, group)
		}
	}
	return comments
}

func (c *compiler) writeFile(path string, file *ast.File) error {
	b, err := c.formatFile(file)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
