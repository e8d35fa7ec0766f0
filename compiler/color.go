package compiler

import (
	"go/ast"
	"go/token"
	"go/types"
)

const generatorPackage = "github.com/stealthrocket/generator"

// isContext reports whether t is *generator.Context[V] for some V.
func isContext(t types.Type) bool {
	p, ok := types.Unalias(t).(*types.Pointer)
	if !ok {
		return false
	}
	n, ok := types.Unalias(p.Elem()).(*types.Named)
	if !ok {
		return false
	}
	obj := n.Origin().Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == generatorPackage && obj.Name() == "Context"
}

// isYieldCall reports whether call may suspend the generator: either a call to
// the Yield method of a context, or a call receiving a context as argument,
// which delegates to another generator function.
func isYieldCall(call *ast.CallExpr, info *types.Info) bool {
	if sel, ok := call.Fun.(*ast.SelectorExpr); ok && sel.Sel.Name == "Yield" && isContext(info.TypeOf(sel.X)) {
		return true
	}
	for _, arg := range call.Args {
		if isContext(info.TypeOf(arg)) {
			return true
		}
	}
	return false
}

// findYields colors the nodes of a tree that contain yield points. The yield
// calls are colored as well as all their ancestors up to root.
func findYields(root ast.Node, info *types.Info) map[ast.Node]struct{} {
	yields := map[ast.Node]struct{}{}
	var stack []ast.Node
	ast.Inspect(root, func(n ast.Node) bool {
		if n == nil {
			stack = stack[:len(stack)-1]
			return true
		}
		stack = append(stack, n)
		if call, ok := n.(*ast.CallExpr); ok && isYieldCall(call, info) {
			for _, node := range stack {
				yields[node] = struct{}{}
			}
		}
		return true
	})
	return yields
}

// isPureCall reports whether call is a type conversion or a builtin without
// side effects, which can safely be evaluated again when resuming.
func isPureCall(call *ast.CallExpr, info *types.Info) bool {
	if tv, ok := info.Types[call.Fun]; ok && tv.IsType() {
		return true
	}
	var ident *ast.Ident
	switch f := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		ident = f
	case *ast.SelectorExpr:
		if x, ok := f.X.(*ast.Ident); ok {
			if pkg, ok := info.ObjectOf(x).(*types.PkgName); ok && pkg.Imported().Path() == "unsafe" {
				return true
			}
		}
		return false
	default:
		return false
	}
	if _, ok := info.ObjectOf(ident).(*types.Builtin); !ok {
		return false
	}
	switch ident.Name {
	case "len", "cap", "min", "max", "real", "imag", "complex":
		return true
	}
	return false
}

// hasSideEffects reports whether evaluating expr calls functions or receives
// from channels. Function literals are not evaluated and are ignored.
func hasSideEffects(expr ast.Expr, info *types.Info) (found bool) {
	ast.Inspect(expr, func(n ast.Node) bool {
		switch e := n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.CallExpr:
			if !isPureCall(e, info) {
				found = true
			}
		case *ast.UnaryExpr:
			if e.Op == token.ARROW {
				found = true
			}
		}
		return !found
	})
	return
}
