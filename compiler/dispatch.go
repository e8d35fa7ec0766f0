package compiler

import (
	"go/ast"
	"go/token"
	"strconv"
)

// trackDispatchSpans assigns a non-zero monotonically increasing integer ID to
// each leaf statement in the tree using a post-order traversal, and then
// assigns a "span" to all statements in the tree which is equal to the
// half-open range of IDs seen in that subtree.
//
// Only statements containing yield points are descended into; any other
// statement is a leaf.
//
// The resulting information is used to build the generator dispatch switch
// statements.
func trackDispatchSpans(stmt ast.Stmt, yields map[ast.Node]struct{}) map[ast.Stmt]dispatchSpan {
	spans := map[ast.Stmt]dispatchSpan{}
	trackDispatchSpans0(stmt, yields, spans, 1)
	return spans
}

type dispatchSpan struct{ start, end int }

func trackDispatchSpans0(stmt ast.Stmt, yields map[ast.Node]struct{}, dispatchSpans map[ast.Stmt]dispatchSpan, nextID int) int {
	startID := nextID
	_, mayYield := yields[stmt]
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		if !mayYield {
			nextID++
			break
		}
		for _, child := range s.List {
			nextID = trackDispatchSpans0(child, yields, dispatchSpans, nextID)
		}
	case *ast.IfStmt:
		if !mayYield {
			nextID++
			break
		}
		nextID = trackDispatchSpans0(s.Body, yields, dispatchSpans, nextID)
		if s.Else != nil {
			nextID = trackDispatchSpans0(s.Else, yields, dispatchSpans, nextID)
		}
	case *ast.ForStmt:
		if !mayYield {
			nextID++
			break
		}
		nextID = trackDispatchSpans0(s.Body, yields, dispatchSpans, nextID)
	case *ast.SwitchStmt:
		if !mayYield {
			nextID++
			break
		}
		// Desugared switch statements have a single default clause.
		for _, child := range s.Body.List[0].(*ast.CaseClause).Body {
			nextID = trackDispatchSpans0(child, yields, dispatchSpans, nextID)
		}
	case *ast.LabeledStmt:
		nextID = trackDispatchSpans0(s.Stmt, yields, dispatchSpans, nextID)
	default:
		nextID++ // leaf
	}
	dispatchSpans[stmt] = dispatchSpan{startID, nextID}
	return nextID
}

// compileDispatch adds the generator's dispatch statements to a tree.
//
// The dispatch mechanism is used when resuming a suspended generator. Each
// function on the stack needs to jump to the statement it was suspended in,
// even when there are arbitrary levels of branches and loops. To do this, we
// generate a switch inside each block, using the information from
// trackDispatchSpans.
func compileDispatch(stmt ast.Stmt, yields map[ast.Node]struct{}, dispatchSpans map[ast.Stmt]dispatchSpan) ast.Stmt {
	if _, ok := yields[stmt]; !ok {
		return stmt
	}
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		switch {
		case len(s.List) == 1:
			child := compileDispatch(s.List[0], yields, dispatchSpans)
			s.List[0] = unnestBlocks(child)
		case len(s.List) > 1:
			stmt = &ast.BlockStmt{List: []ast.Stmt{compileDispatch0(s.List, yields, dispatchSpans)}}
		}
	case *ast.IfStmt:
		s.Body = compileDispatch(s.Body, yields, dispatchSpans).(*ast.BlockStmt)
		if e, ok := s.Else.(*ast.BlockStmt); ok {
			s.Else = compileDispatch(e, yields, dispatchSpans)
		}
	case *ast.ForStmt:
		forSpan := dispatchSpans[s]
		s.Body = compileDispatch(s.Body, yields, dispatchSpans).(*ast.BlockStmt)
		// Reset IP after each loop iteration.
		ipVal := &ast.BasicLit{Kind: token.INT, Value: strconv.Itoa(forSpan.start)}
		switch post := s.Post.(type) {
		case nil:
			s.Post = &ast.AssignStmt{Lhs: []ast.Expr{frameIP()}, Tok: token.ASSIGN, Rhs: []ast.Expr{ipVal}}
		case *ast.IncDecStmt:
			op := token.ADD
			if post.Tok == token.DEC {
				op = token.SUB
			}
			s.Post = &ast.AssignStmt{
				Lhs: []ast.Expr{post.X, frameIP()},
				Tok: token.ASSIGN,
				Rhs: []ast.Expr{
					&ast.BinaryExpr{X: post.X, Op: op, Y: &ast.BasicLit{Kind: token.INT, Value: "1"}},
					ipVal,
				},
			}
		case *ast.AssignStmt:
			if op, ok := assignOps[post.Tok]; ok {
				post.Rhs[0] = &ast.BinaryExpr{X: post.Lhs[0], Op: op, Y: post.Rhs[0]}
				post.Tok = token.ASSIGN
			}
			post.Lhs = append(post.Lhs, frameIP())
			post.Rhs = append(post.Rhs, ipVal)
		}
	case *ast.SwitchStmt:
		clause := s.Body.List[0].(*ast.CaseClause)
		for i, child := range clause.Body {
			clause.Body[i] = unnestBlocks(compileDispatch(child, yields, dispatchSpans))
		}
	case *ast.LabeledStmt:
		s.Stmt = compileDispatch(s.Stmt, yields, dispatchSpans)
	}
	return stmt
}

var assignOps = map[token.Token]token.Token{
	token.ADD_ASSIGN:     token.ADD,
	token.SUB_ASSIGN:     token.SUB,
	token.MUL_ASSIGN:     token.MUL,
	token.QUO_ASSIGN:     token.QUO,
	token.REM_ASSIGN:     token.REM,
	token.AND_ASSIGN:     token.AND,
	token.OR_ASSIGN:      token.OR,
	token.XOR_ASSIGN:     token.XOR,
	token.SHL_ASSIGN:     token.SHL,
	token.SHR_ASSIGN:     token.SHR,
	token.AND_NOT_ASSIGN: token.AND_NOT,
}

func compileDispatch0(stmts []ast.Stmt, yields map[ast.Node]struct{}, dispatchSpans map[ast.Stmt]dispatchSpan) ast.Stmt {
	var cases []ast.Stmt
	for i, child := range stmts {
		childSpan := dispatchSpans[child]
		compiledChild := compileDispatch(child, yields, dispatchSpans)
		compiledChild = unnestBlocks(compiledChild)
		caseBody := []ast.Stmt{compiledChild}
		if i < len(stmts)-1 {
			caseBody = append(caseBody,
				&ast.AssignStmt{
					Lhs: []ast.Expr{frameIP()},
					Tok: token.ASSIGN,
					Rhs: []ast.Expr{&ast.BasicLit{Kind: token.INT, Value: strconv.Itoa(childSpan.end)}},
				},
				&ast.BranchStmt{Tok: token.FALLTHROUGH})
		}
		cases = append(cases, &ast.CaseClause{
			List: []ast.Expr{
				&ast.BinaryExpr{
					X:  frameIP(),
					Op: token.LSS, /* < */
					Y:  &ast.BasicLit{Kind: token.INT, Value: strconv.Itoa(childSpan.end)}},
			},
			Body: caseBody,
		})
	}
	return &ast.SwitchStmt{Body: &ast.BlockStmt{List: cases}}
}

func frameIP() *ast.SelectorExpr {
	return &ast.SelectorExpr{X: ast.NewIdent(frameName), Sel: ast.NewIdent("IP")}
}

func unnestBlocks(stmt ast.Stmt) ast.Stmt {
	for {
		s, ok := stmt.(*ast.BlockStmt)
		if !ok || len(s.List) != 1 {
			return stmt
		}
		stmt = s.List[0]
	}
}
