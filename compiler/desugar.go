package compiler

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
)

// desugarer rewrites the statements of a generator function which contain
// yield points into a smaller set of statements that the dispatch mechanism
// can resume into: blocks, if statements, labeled infinite for loops, labeled
// switch statements with a single default clause, and simple statements
// holding a single yield point.
//
// Statements that do not contain yield points are left untouched.
type desugarer struct {
	pkg    *types.Package
	info   *types.Info
	yields map[ast.Node]struct{}
	vars   int
	labels int
}

func desugar(pkg *types.Package, info *types.Info, body *ast.BlockStmt, yields map[ast.Node]struct{}) *ast.BlockStmt {
	d := &desugarer{pkg: pkg, info: info, yields: yields}
	return &ast.BlockStmt{List: d.desugarList(body.List)}
}

func (d *desugarer) mayYield(n ast.Node) bool {
	_, ok := d.yields[n]
	return ok
}

// newVar creates a variable of type t, registering it in the type information
// so the following compilation passes see it like any other local variable.
func (d *desugarer) newVar(t types.Type) *ast.Ident {
	ident := ast.NewIdent(fmt.Sprintf("_v%d", d.vars))
	d.vars++
	d.info.Defs[ident] = types.NewVar(token.NoPos, d.pkg, ident.Name, t)
	return ident
}

// color marks the nodes of a tree built by the desugarer which contain yield
// points.
func (d *desugarer) color(tree ast.Node) {
	for n := range findYields(tree, d.info) {
		d.yields[n] = struct{}{}
	}
}

func (d *desugarer) newLabel() *ast.Ident {
	ident := ast.NewIdent(fmt.Sprintf("_l%d", d.labels))
	d.labels++
	return ident
}

func (d *desugarer) desugarList(stmts []ast.Stmt) []ast.Stmt {
	var list []ast.Stmt
	for _, stmt := range stmts {
		list = append(list, d.desugar(stmt)...)
	}
	return list
}

func (d *desugarer) desugar(stmt ast.Stmt) []ast.Stmt {
	if !d.mayYield(stmt) {
		return []ast.Stmt{stmt}
	}
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return []ast.Stmt{&ast.BlockStmt{List: d.desugarList(s.List)}}
	case *ast.LabeledStmt:
		if sw, ok := s.Stmt.(*ast.SwitchStmt); ok {
			return d.desugarSwitch(sw, s.Label)
		}
		return d.desugarLoop(s.Stmt, s.Label)
	case *ast.ForStmt, *ast.RangeStmt:
		return d.desugarLoop(s, nil)
	case *ast.SwitchStmt:
		return d.desugarSwitch(s, nil)
	case *ast.IfStmt:
		return d.desugarIf(s)
	case *ast.ExprStmt:
		if call, ok := s.X.(*ast.CallExpr); ok {
			return d.hoistYieldArgs(call, s)
		}
	case *ast.AssignStmt:
		if len(s.Rhs) == 1 {
			if call, ok := s.Rhs[0].(*ast.CallExpr); ok {
				return d.hoistYieldArgs(call, s)
			}
		}
	case *ast.ReturnStmt:
		if len(s.Results) == 1 {
			if call, ok := s.Results[0].(*ast.CallExpr); ok {
				return d.hoistYieldArgs(call, s)
			}
		}
	}
	return []ast.Stmt{stmt}
}

// hoistYieldArgs moves the arguments of a yield call that have side effects
// to temporary variables assigned before the statement, so they are not
// evaluated again when the generator resumes.
func (d *desugarer) hoistYieldArgs(call *ast.CallExpr, stmt ast.Stmt) []ast.Stmt {
	if !isYieldCall(call, d.info) {
		return []ast.Stmt{stmt}
	}
	var list []ast.Stmt
	for i, arg := range call.Args {
		if !hasSideEffects(arg, d.info) {
			continue
		}
		v := d.newVar(types.Default(d.info.TypeOf(arg)))
		list = append(list, &ast.AssignStmt{
			Lhs: []ast.Expr{v},
			Tok: token.DEFINE,
			Rhs: []ast.Expr{arg},
		})
		call.Args[i] = v
	}
	return append(list, stmt)
}

// desugarIf evaluates the init statement and the condition of an if
// statement ahead of it, so the branch taken can be resumed into:
//
//	if init; cond { ... } else if cond2 { ... }
//
// becomes:
//
//	init
//	_v0 := cond
//	if _v0 {
//		...
//	} else {
//		_v1 := cond2
//		if _v1 { ... }
//	}
func (d *desugarer) desugarIf(s *ast.IfStmt) []ast.Stmt {
	var list []ast.Stmt
	if s.Init != nil {
		list = append(list, d.desugar(s.Init)...)
	}
	cond := s.Cond
	if tv, ok := d.info.Types[cond]; !ok || tv.Value == nil {
		t := d.info.TypeOf(cond)
		if t == nil {
			t = types.Typ[types.Bool]
		}
		v := d.newVar(types.Default(t))
		list = append(list, &ast.AssignStmt{
			Lhs: []ast.Expr{v},
			Tok: token.DEFINE,
			Rhs: []ast.Expr{cond},
		})
		cond = v
	}

	ifStmt := &ast.IfStmt{
		Cond: cond,
		Body: &ast.BlockStmt{List: d.desugarList(s.Body.List)},
	}
	switch e := s.Else.(type) {
	case *ast.BlockStmt:
		ifStmt.Else = &ast.BlockStmt{List: d.desugarList(e.List)}
	case *ast.IfStmt:
		if d.mayYield(e) {
			ifStmt.Else = &ast.BlockStmt{List: d.desugarIf(e)}
		} else {
			ifStmt.Else = e
		}
	}
	return append(list, ifStmt)
}

func (d *desugarer) desugarLoop(stmt ast.Stmt, label *ast.Ident) []ast.Stmt {
	switch s := stmt.(type) {
	case *ast.ForStmt:
		return d.desugarFor(s, label)
	case *ast.RangeStmt:
		return d.desugarRange(s, label)
	default:
		panic(fmt.Sprintf("not a loop: %T", stmt))
	}
}

// desugarFor turns a for loop into an infinite loop guarded by its condition:
//
//	for init; cond; post { ... }
//
// becomes:
//
//	init
//	_l0:
//	for ; ; post {
//		if !(cond) {
//			break _l0
//		}
//		...
//	}
//
// Unlabeled break and continue statements targeting the loop are labeled,
// since the loop body ends up nested in dispatch switch statements.
func (d *desugarer) desugarFor(s *ast.ForStmt, label *ast.Ident) []ast.Stmt {
	userLabel := label != nil
	if !userLabel {
		label = d.newLabel()
	}

	var list []ast.Stmt
	if s.Init != nil {
		list = append(list, d.desugar(s.Init)...)
	}

	body := d.desugarList(s.Body.List)
	if s.Cond != nil {
		guard := &ast.IfStmt{
			Cond: &ast.UnaryExpr{Op: token.NOT, X: &ast.ParenExpr{X: s.Cond}},
			Body: &ast.BlockStmt{List: []ast.Stmt{
				&ast.BranchStmt{Tok: token.BREAK, Label: label},
			}},
		}
		guards := []ast.Stmt{guard}
		if d.mayYield(s.Cond) {
			guards = d.desugarIf(guard)
		}
		body = append(guards, body...)
	}

	loop := &ast.ForStmt{
		Post: s.Post,
		Body: &ast.BlockStmt{List: body},
	}
	used := relabel(loop.Body, label, true, true)
	if !used && !userLabel && s.Cond == nil {
		return append(list, loop)
	}
	return append(list, &ast.LabeledStmt{Label: label, Stmt: loop})
}

// desugarRange turns a range loop over a slice, an array or an integer into
// a for loop indexing the range expression, which is evaluated once:
//
//	for i, v := range x { ... }
//
// becomes:
//
//	_v0 := x
//	for _v1 := 0; _v1 < len(_v0); _v1++ {
//		i := _v1
//		v := _v0[_v1]
//		...
//	}
func (d *desugarer) desugarRange(s *ast.RangeStmt, label *ast.Ident) []ast.Stmt {
	rangeType := types.Default(d.info.TypeOf(s.X))
	x := d.newVar(rangeType)
	list := []ast.Stmt{
		&ast.AssignStmt{Lhs: []ast.Expr{x}, Tok: token.DEFINE, Rhs: []ast.Expr{s.X}},
	}

	var i *ast.Ident
	var bound ast.Expr
	if _, ok := rangeType.Underlying().(*types.Basic); ok {
		i = d.newVar(rangeType)
		bound = x
	} else {
		i = d.newVar(types.Typ[types.Int])
		bound = &ast.CallExpr{Fun: ast.NewIdent("len"), Args: []ast.Expr{x}}
	}

	var body []ast.Stmt
	if s.Key != nil && !isBlank(s.Key) {
		body = append(body, &ast.AssignStmt{
			Lhs: []ast.Expr{s.Key},
			Tok: s.Tok,
			Rhs: []ast.Expr{i},
		})
	}
	if s.Value != nil && !isBlank(s.Value) {
		body = append(body, &ast.AssignStmt{
			Lhs: []ast.Expr{s.Value},
			Tok: s.Tok,
			Rhs: []ast.Expr{&ast.IndexExpr{X: x, Index: i}},
		})
	}
	body = append(body, s.Body.List...)

	loop := &ast.ForStmt{
		Init: &ast.AssignStmt{
			Lhs: []ast.Expr{i},
			Tok: token.DEFINE,
			Rhs: []ast.Expr{&ast.BasicLit{Kind: token.INT, Value: "0"}},
		},
		Cond: &ast.BinaryExpr{X: i, Op: token.LSS, Y: bound},
		Post: &ast.IncDecStmt{X: i, Tok: token.INC},
		Body: &ast.BlockStmt{List: body},
	}
	return append(list, d.desugarFor(loop, label)...)
}

// desugarSwitch turns an expression switch into a chain of if statements.
// The tag is evaluated once, and the cases are compared in order:
//
//	switch init; tag {
//	case a, b:
//		...
//	default:
//		...
//	}
//
// becomes:
//
//	init
//	_v0 := tag
//	_l0:
//	switch {
//	default:
//		{
//			_v1 := _v0 == a || _v0 == b
//			if _v1 {
//				...
//			} else {
//				...
//			}
//		}
//	}
//
// The enclosing switch remains the target of the break statements of the
// cases, it is omitted when there are none.
func (d *desugarer) desugarSwitch(s *ast.SwitchStmt, label *ast.Ident) []ast.Stmt {
	var list []ast.Stmt
	if s.Init != nil {
		list = append(list, d.desugar(s.Init)...)
	}

	var tag ast.Expr
	if s.Tag != nil {
		v := d.newVar(types.Default(d.info.TypeOf(s.Tag)))
		assign := &ast.AssignStmt{
			Lhs: []ast.Expr{v},
			Tok: token.DEFINE,
			Rhs: []ast.Expr{s.Tag},
		}
		d.color(assign)
		list = append(list, d.desugar(assign)...)
		tag = v
	}

	var head ast.Stmt
	var tail *ast.IfStmt
	var defaultBody *ast.BlockStmt
	for _, stmt := range s.Body.List {
		clause := stmt.(*ast.CaseClause)
		body := &ast.BlockStmt{List: clause.Body}
		if clause.List == nil {
			defaultBody = body
			continue
		}
		var cond ast.Expr
		for _, value := range clause.List {
			if tag != nil {
				value = &ast.BinaryExpr{X: tag, Op: token.EQL, Y: value}
			}
			if cond == nil {
				cond = value
			} else {
				cond = &ast.BinaryExpr{X: cond, Op: token.LOR, Y: value}
			}
		}
		ifStmt := &ast.IfStmt{Cond: cond, Body: body}
		if tail == nil {
			head = ifStmt
		} else {
			tail.Else = ifStmt
		}
		tail = ifStmt
	}
	if defaultBody != nil {
		if tail == nil {
			head = defaultBody
		} else {
			tail.Else = defaultBody
		}
	}
	if head == nil {
		return list
	}
	d.color(head)
	chain := d.desugar(head)

	userLabel := label != nil
	if !userLabel {
		label = ast.NewIdent("")
	}
	sw := &ast.SwitchStmt{Body: &ast.BlockStmt{List: []ast.Stmt{
		&ast.CaseClause{Body: []ast.Stmt{&ast.BlockStmt{List: chain}}},
	}}}
	if !relabel(sw, label, true, false) && !userLabel {
		return append(list, chain...)
	}
	if !userLabel {
		label.Name = d.newLabel().Name
	}
	return append(list, &ast.LabeledStmt{Label: label, Stmt: sw})
}

func isBlank(e ast.Expr) bool {
	ident, ok := e.(*ast.Ident)
	return ok && ident.Name == "_"
}

// relabel attaches label to the unlabeled break and continue statements of
// root which target the statement being desugared. It reports whether any
// statement was labeled.
func relabel(root ast.Node, label *ast.Ident, breaks, continues bool) (used bool) {
	ast.Inspect(root, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.FuncLit, *ast.ForStmt, *ast.RangeStmt:
			return false
		case *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
			if breaks && n != root {
				if continues && relabel(n, label, false, true) {
					used = true
				}
				return false
			}
		case *ast.BranchStmt:
			if s.Label != nil {
				break
			}
			if (continues && s.Tok == token.CONTINUE) || (breaks && s.Tok == token.BREAK) {
				s.Label = label
				used = true
			}
		}
		return true
	})
	return
}
