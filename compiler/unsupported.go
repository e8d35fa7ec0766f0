package compiler

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
)

// UnsupportedError is returned when a generator function uses a language
// feature that the compiler cannot transform.
type UnsupportedError struct {
	Pos     token.Position
	Func    string
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s: not implemented: %s", e.Pos, e.Func, e.Feature)
}

// unsupported checks the body of a generator function for language features
// that cannot be compiled. It returns the offending node and a description of
// the feature, or an empty string if the body is supported.
func unsupported(body *ast.BlockStmt, info *types.Info, yields map[ast.Node]struct{}) (node ast.Node, feature string) {
	ast.Inspect(body, func(n ast.Node) bool {
		if feature != "" {
			return false
		}
		_, mayYield := yields[n]

		switch s := n.(type) {
		case *ast.FuncLit:
			if mayYield {
				node, feature = n, "yield points in function literals"
			}
			return false
		case *ast.DeferStmt:
			node, feature = n, "defer"
		case *ast.BranchStmt:
			if s.Tok == token.GOTO {
				node, feature = n, "goto"
			}
		case *ast.GoStmt:
			if mayYield {
				node, feature = n, "yield points in go statements"
			}
		case *ast.SwitchStmt:
			if mayYield {
				if f := fallthroughStmt(s); f != nil {
					node, feature = f, "fallthrough in switch statements containing yield points"
				}
			}
		case *ast.TypeSwitchStmt:
			if mayYield {
				node, feature = n, "yield points in type switch statements"
			}
		case *ast.SelectStmt:
			if mayYield {
				node, feature = n, "yield points in select statements"
			}
		case *ast.LabeledStmt:
			switch s.Stmt.(type) {
			case *ast.ForStmt, *ast.RangeStmt, *ast.SwitchStmt:
			default:
				if mayYield {
					node, feature = n, "labels on statements other than loops and switches containing yield points"
				}
			}
		case *ast.RangeStmt:
			if mayYield {
				switch t := info.TypeOf(s.X).Underlying().(type) {
				case *types.Slice, *types.Array:
				case *types.Basic:
					if t.Info()&types.IsInteger == 0 {
						node, feature = n, fmt.Sprintf("range over %s containing yield points", t)
					}
				default:
					node, feature = n, fmt.Sprintf("range over %s containing yield points", t)
				}
			}
		case *ast.ForStmt:
			if mayYield {
				node, feature = s, unsupportedPost(s.Post, info, yields)
			}
		}
		return feature == ""
	})
	if feature == "" {
		if lit := loopCapture(body, info); lit != nil {
			node, feature = lit, "function literals capturing variables declared in loops"
		}
	}
	return
}

func fallthroughStmt(s *ast.SwitchStmt) ast.Stmt {
	for _, stmt := range s.Body.List {
		body := stmt.(*ast.CaseClause).Body
		if len(body) == 0 {
			continue
		}
		if b, ok := body[len(body)-1].(*ast.BranchStmt); ok && b.Tok == token.FALLTHROUGH {
			return b
		}
	}
	return nil
}

// loopCapture returns a function literal of body which captures a variable
// declared in a loop. Go declares those once per iteration, while the
// variables of generator functions live in a single frame.
func loopCapture(body *ast.BlockStmt, info *types.Info) (lit *ast.FuncLit) {
	ast.Inspect(body, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.ForStmt, *ast.RangeStmt:
			if lit == nil {
				lit = loopCaptureIn(n, info)
			}
			return false
		}
		return lit == nil
	})
	return
}

func loopCaptureIn(loop ast.Node, info *types.Info) (lit *ast.FuncLit) {
	ast.Inspect(loop, func(n ast.Node) bool {
		f, ok := n.(*ast.FuncLit)
		if !ok {
			return lit == nil
		}
		ast.Inspect(f.Body, func(n ast.Node) bool {
			ident, ok := n.(*ast.Ident)
			if !ok {
				return lit == nil
			}
			v, ok := info.Uses[ident].(*types.Var)
			if !ok || v.IsField() {
				return true
			}
			inLoop := loop.Pos() <= v.Pos() && v.Pos() < loop.End()
			inFunc := f.Pos() <= v.Pos() && v.Pos() < f.End()
			if inLoop && !inFunc {
				lit = f
			}
			return lit == nil
		})
		return false
	})
	return
}

func unsupportedPost(post ast.Stmt, info *types.Info, yields map[ast.Node]struct{}) string {
	if _, ok := yields[post]; ok {
		return "yield points in for loop post statements"
	}
	switch p := post.(type) {
	case nil, *ast.IncDecStmt:
	case *ast.AssignStmt:
		for _, e := range p.Rhs {
			if hasSideEffects(e, info) {
				return "function calls in for loop post statements"
			}
		}
	default:
		return fmt.Sprintf("for loop post statement %T", p)
	}
	return ""
}

// checkYieldPoints verifies that the statements of a desugared body which
// contain yield points can be executed again when the generator resumes:
// each has a single yield call and no other function call.
func checkYieldPoints(body *ast.BlockStmt, info *types.Info, yields map[ast.Node]struct{}) (node ast.Node, feature string) {
	var check func(ast.Stmt) bool
	check = func(stmt ast.Stmt) bool {
		if _, ok := yields[stmt]; !ok {
			return true
		}
		switch s := stmt.(type) {
		case *ast.BlockStmt:
			for _, child := range s.List {
				if !check(child) {
					return false
				}
			}
			return true
		case *ast.IfStmt:
			return check(s.Body) && (s.Else == nil || check(s.Else))
		case *ast.ForStmt:
			return check(s.Body)
		case *ast.LabeledStmt:
			return check(s.Stmt)
		case *ast.SwitchStmt:
			for _, clause := range s.Body.List {
				for _, child := range clause.(*ast.CaseClause).Body {
					if !check(child) {
						return false
					}
				}
			}
			return true
		}

		var yieldCalls, otherCalls int
		ast.Inspect(stmt, func(n ast.Node) bool {
			switch e := n.(type) {
			case *ast.FuncLit:
				return false
			case *ast.CallExpr:
				switch {
				case isYieldCall(e, info):
					yieldCalls++
				case !isPureCall(e, info):
					otherCalls++
				}
			}
			return true
		})
		switch {
		case yieldCalls > 1:
			node, feature = stmt, "multiple yield points in one statement"
		case otherCalls > 0:
			node, feature = stmt, "yield points mixed with other function calls in one statement"
		}
		return feature == ""
	}
	check(body)
	return
}
