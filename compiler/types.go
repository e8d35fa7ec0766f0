package compiler

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
)

// typeExpr converts a types.Type to an ast.Expr, qualifying the names of
// other packages with qualifier.
func typeExpr(typ types.Type, qualifier types.Qualifier) ast.Expr {
	if b, ok := typ.(*types.Basic); ok && b.Info()&types.IsUntyped != 0 {
		typ = types.Default(typ)
	}
	s := types.TypeString(typ, qualifier)
	expr, err := parser.ParseExpr(s)
	if err != nil {
		panic(fmt.Sprintf("cannot represent type %s: %v", s, err))
	}
	return expr
}

// zeroValue returns an expression evaluating to the zero value of typ.
func zeroValue(typ types.Type, qualifier types.Qualifier) ast.Expr {
	if _, ok := typ.(*types.TypeParam); ok {
		return &ast.StarExpr{
			X: &ast.CallExpr{
				Fun:  ast.NewIdent("new"),
				Args: []ast.Expr{typeExpr(typ, qualifier)},
			},
		}
	}
	switch t := typ.Underlying().(type) {
	case *types.Basic:
		switch {
		case t.Info()&types.IsBoolean != 0:
			return ast.NewIdent("false")
		case t.Info()&types.IsString != 0:
			return &ast.BasicLit{Kind: token.STRING, Value: `""`}
		case t.Kind() == types.UnsafePointer:
			return ast.NewIdent("nil")
		default:
			return &ast.BasicLit{Kind: token.INT, Value: "0"}
		}
	case *types.Struct, *types.Array:
		return &ast.CompositeLit{Type: typeExpr(typ, qualifier)}
	default:
		return ast.NewIdent("nil")
	}
}
