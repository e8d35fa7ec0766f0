package compiler

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/astutil"
)

// frameFields allocates a field of the frame struct for each parameter and
// local variable of a generator function. The context parameter, the
// receiver and the variables declared in function literals are excluded.
//
// Variables are identified by their type-checker object rather than their
// name, so shadowed variables get distinct fields.
func (fc *fileCompiler) frameFields(decl *ast.FuncDecl, body *ast.BlockStmt) (fields []*ast.Field, params []types.Object, names map[types.Object]string) {
	names = map[types.Object]string{}
	add := func(obj types.Object) {
		if _, ok := names[obj]; ok || obj.Name() == "_" {
			return
		}
		name := fmt.Sprintf("X%d", len(fields))
		names[obj] = name
		fields = append(fields, &ast.Field{
			Names: []*ast.Ident{ast.NewIdent(name)},
			Type:  typeExpr(obj.Type(), fc.qualifier),
		})
	}

	for i, field := range decl.Type.Params.List {
		for j, name := range field.Names {
			if i == 0 && j == 0 {
				continue // context
			}
			if obj := fc.info.Defs[name]; obj != nil && obj.Name() != "_" {
				add(obj)
				params = append(params, obj)
			}
		}
	}

	ast.Inspect(body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.Ident:
			if v, ok := fc.info.Defs[n].(*types.Var); ok && !v.IsField() {
				add(v)
			}
		}
		return true
	})
	return fields, params, names
}

// rewriteDecls prepares the body of a generator function for its variables to
// live in the frame struct: short variable declarations become assignments,
// var declarations become assignments of their initial or zero values, and
// type and constant declarations are removed from the body and returned, to
// be hoisted to the function prologue.
func (fc *fileCompiler) rewriteDecls(body *ast.BlockStmt) (hoisted []ast.Stmt) {
	astutil.Apply(body, func(cursor *astutil.Cursor) bool {
		switch n := cursor.Node().(type) {
		case *ast.FuncLit:
			return false
		case *ast.AssignStmt:
			if _, ok := cursor.Parent().(*ast.TypeSwitchStmt); ok && cursor.Name() == "Assign" {
				break
			}
			if n.Tok == token.DEFINE {
				n.Tok = token.ASSIGN
			}
		case *ast.RangeStmt:
			if n.Tok == token.DEFINE {
				n.Tok = token.ASSIGN
			}
		case *ast.DeclStmt:
			gen := n.Decl.(*ast.GenDecl)
			if gen.Tok == token.VAR {
				cursor.Replace(fc.varDeclAssign(gen))
				return false
			}
			hoisted = append(hoisted, n)
			if cursor.Index() >= 0 {
				cursor.Delete()
			} else {
				cursor.Replace(&ast.EmptyStmt{Implicit: true})
			}
			return false
		}
		return true
	}, nil)
	return hoisted
}

func (fc *fileCompiler) varDeclAssign(gen *ast.GenDecl) ast.Stmt {
	var list []ast.Stmt
	for _, spec := range gen.Specs {
		spec := spec.(*ast.ValueSpec)
		if len(spec.Values) > 0 {
			lhs := make([]ast.Expr, len(spec.Names))
			for i, name := range spec.Names {
				lhs[i] = name
			}
			list = append(list, &ast.AssignStmt{Lhs: lhs, Tok: token.ASSIGN, Rhs: spec.Values})
			continue
		}
		for _, name := range spec.Names {
			if name.Name == "_" {
				continue
			}
			list = append(list, &ast.AssignStmt{
				Lhs: []ast.Expr{name},
				Tok: token.ASSIGN,
				Rhs: []ast.Expr{zeroValue(fc.info.TypeOf(name), fc.qualifier)},
			})
		}
	}
	switch len(list) {
	case 0:
		return &ast.EmptyStmt{Implicit: true}
	case 1:
		return list[0]
	default:
		return &ast.BlockStmt{List: list}
	}
}

// renameObjects replaces the references to the variables of a generator
// function with the fields of its frame. Function literals are traversed so
// closures capturing variables of the function use the frame as well.
func renameObjects(body *ast.BlockStmt, info *types.Info, names map[types.Object]string) {
	astutil.Apply(body, nil, func(cursor *astutil.Cursor) bool {
		ident, ok := cursor.Node().(*ast.Ident)
		if !ok {
			return true
		}
		if name, ok := names[info.ObjectOf(ident)]; ok {
			cursor.Replace(&ast.SelectorExpr{X: ast.NewIdent(frameName), Sel: ast.NewIdent(name)})
		}
		return true
	})
}
