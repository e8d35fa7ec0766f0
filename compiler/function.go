package compiler

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log"
	"strconv"
)

// frameName is the name of the local variable holding the frame of a compiled
// generator function.
const frameName = "_f"

// fileCompiler compiles the generator functions of a source file.
type fileCompiler struct {
	fset *token.FileSet
	pkg  *types.Package
	info *types.Info

	// Local names of the packages imported by the file, and of the packages
	// that must be imported by the output file to name the types of frame
	// fields.
	imports map[string]string
	missing map[string]string
}

func newFileCompiler(fset *token.FileSet, pkg *types.Package, info *types.Info, file *ast.File) *fileCompiler {
	fc := &fileCompiler{
		fset:    fset,
		pkg:     pkg,
		info:    info,
		imports: map[string]string{},
		missing: map[string]string{},
	}
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := info.PkgNameOf(spec)
		if name == nil {
			continue
		}
		switch name.Name() {
		case "_":
		case ".":
			fc.imports[path] = ""
		default:
			fc.imports[path] = name.Name()
		}
	}
	return fc
}

func (fc *fileCompiler) qualifier(p *types.Package) string {
	if p == fc.pkg {
		return ""
	}
	if name, ok := fc.imports[p.Path()]; ok {
		return name
	}
	fc.missing[p.Path()] = p.Name()
	return p.Name()
}

// isGenerator reports whether decl is a generator function, which receives a
// *generator.Context as first parameter.
func (fc *fileCompiler) isGenerator(decl *ast.FuncDecl) bool {
	if decl.Body == nil {
		return false
	}
	fn, ok := fc.info.Defs[decl.Name].(*types.Func)
	if !ok {
		return false
	}
	params := fn.Type().(*types.Signature).Params()
	return params.Len() > 0 && isContext(params.At(0).Type())
}

func (fc *fileCompiler) unsupportedError(decl *ast.FuncDecl, node ast.Node, feature string) error {
	pos := node.Pos()
	if !pos.IsValid() {
		pos = decl.Pos()
	}
	return &UnsupportedError{
		Pos:     fc.fset.Position(pos),
		Func:    decl.Name.Name,
		Feature: feature,
	}
}

// compileFunction compiles a generator function so it can be suspended at its
// yield points and resumed later. The function pushes a frame holding its
// instruction pointer, parameters and local variables on the generator stack,
// and the statements of its body are laid out in switch statements
// dispatching to the statement it was suspended in.
func (fc *fileCompiler) compileFunction(decl *ast.FuncDecl) (*ast.FuncDecl, error) {
	log.Printf("compiling generator %s.%s", fc.pkg.Name(), decl.Name.Name)

	sig := fc.info.Defs[decl.Name].(*types.Func).Type().(*types.Signature)
	if results := sig.Results(); results.Len() != 1 ||
		results.At(0).Name() != "" ||
		!types.Identical(results.At(0).Type(), types.Universe.Lookup("error").Type()) {
		return nil, fc.unsupportedError(decl, decl.Type, "generator functions must return a single unnamed error")
	}
	ctxNames := decl.Type.Params.List[0].Names
	if len(ctxNames) == 0 || ctxNames[0].Name == "_" {
		return nil, fc.unsupportedError(decl, decl.Type, "unnamed context parameter")
	}
	ctx := ctxNames[0]

	yields := findYields(decl.Body, fc.info)
	if node, feature := unsupported(decl.Body, fc.info, yields); feature != "" {
		return nil, fc.unsupportedError(decl, node, feature)
	}

	body := desugar(fc.pkg, fc.info, decl.Body, yields)
	yields = findYields(body, fc.info)
	if node, feature := checkYieldPoints(body, fc.info, yields); feature != "" {
		return nil, fc.unsupportedError(decl, node, feature)
	}

	fields, params, names := fc.frameFields(decl, body)
	hoisted := fc.rewriteDecls(body)
	renameObjects(body, fc.info, names)

	spans := trackDispatchSpans(body, yields)
	body = compileDispatch(body, yields, spans).(*ast.BlockStmt)

	gen := &ast.BlockStmt{}
	gen.List = append(gen.List, hoisted...)
	gen.List = append(gen.List, fc.prologue(ctx, fields, params, names)...)
	gen.List = append(gen.List, body.List...)
	if _, ok := gen.List[len(gen.List)-1].(*ast.ReturnStmt); !ok {
		gen.List = append(gen.List, &ast.ReturnStmt{Results: []ast.Expr{ast.NewIdent("nil")}})
	}

	compiled := &ast.FuncDecl{
		Doc:  decl.Doc,
		Recv: decl.Recv,
		Name: decl.Name,
		Type: decl.Type,
		Body: gen,
	}
	clearPos(compiled)
	return compiled, nil
}

// prologue generates the statements that push the frame of the function on
// the generator stack, initialize it on the first call, and pop it when the
// function returns without suspending:
//
//	_f := generator.Push[struct {
//		IP int
//		X0 int
//	}](&c.Stack)
//	if _f.IP == 0 {
//		_f.IP = 1
//		_f.X0 = n
//	}
//	defer func() {
//		if !c.Unwinding() {
//			generator.Pop(&c.Stack)
//		}
//	}()
func (fc *fileCompiler) prologue(ctx *ast.Ident, fields []*ast.Field, params []types.Object, names map[types.Object]string) []ast.Stmt {
	frameType := &ast.StructType{
		Fields: &ast.FieldList{
			List: append([]*ast.Field{{
				Names: []*ast.Ident{ast.NewIdent("IP")},
				Type:  ast.NewIdent("int"),
			}}, fields...),
		},
	}
	stack := &ast.UnaryExpr{
		Op: token.AND,
		X:  &ast.SelectorExpr{X: ast.NewIdent(ctx.Name), Sel: ast.NewIdent("Stack")},
	}

	push := &ast.AssignStmt{
		Lhs: []ast.Expr{ast.NewIdent(frameName)},
		Tok: token.DEFINE,
		Rhs: []ast.Expr{&ast.CallExpr{
			Fun:  &ast.IndexExpr{X: fc.generatorFunc("Push"), Index: frameType},
			Args: []ast.Expr{stack},
		}},
	}

	setup := &ast.IfStmt{
		Cond: &ast.BinaryExpr{X: frameIP(), Op: token.EQL, Y: &ast.BasicLit{Kind: token.INT, Value: "0"}},
		Body: &ast.BlockStmt{List: []ast.Stmt{
			&ast.AssignStmt{
				Lhs: []ast.Expr{frameIP()},
				Tok: token.ASSIGN,
				Rhs: []ast.Expr{&ast.BasicLit{Kind: token.INT, Value: "1"}},
			},
		}},
	}
	for _, param := range params {
		setup.Body.List = append(setup.Body.List, &ast.AssignStmt{
			Lhs: []ast.Expr{&ast.SelectorExpr{X: ast.NewIdent(frameName), Sel: ast.NewIdent(names[param])}},
			Tok: token.ASSIGN,
			Rhs: []ast.Expr{ast.NewIdent(param.Name())},
		})
	}

	pop := &ast.DeferStmt{
		Call: &ast.CallExpr{
			Fun: &ast.FuncLit{
				Type: &ast.FuncType{Params: &ast.FieldList{}},
				Body: &ast.BlockStmt{List: []ast.Stmt{
					&ast.IfStmt{
						Cond: &ast.UnaryExpr{
							Op: token.NOT,
							X: &ast.CallExpr{
								Fun: &ast.SelectorExpr{X: ast.NewIdent(ctx.Name), Sel: ast.NewIdent("Unwinding")},
							},
						},
						Body: &ast.BlockStmt{List: []ast.Stmt{
							&ast.ExprStmt{X: &ast.CallExpr{
								Fun:  fc.generatorFunc("Pop"),
								Args: []ast.Expr{&ast.UnaryExpr{Op: token.AND, X: &ast.SelectorExpr{X: ast.NewIdent(ctx.Name), Sel: ast.NewIdent("Stack")}}},
							}},
						}},
					},
				}},
			},
		},
	}

	return []ast.Stmt{push, setup, pop}
}

// generatorFunc returns an expression referring to a function of the
// generator package, as imported by the file.
func (fc *fileCompiler) generatorFunc(name string) ast.Expr {
	pkgName, ok := fc.imports[generatorPackage]
	if !ok {
		panic(fmt.Sprintf("%s is not imported", generatorPackage))
	}
	if pkgName == "" {
		return ast.NewIdent(name)
	}
	return &ast.SelectorExpr{X: ast.NewIdent(pkgName), Sel: ast.NewIdent(name)}
}
