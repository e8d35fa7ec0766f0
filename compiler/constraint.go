package compiler

import (
	"go/ast"
	"go/build/constraint"
	"reflect"
)

func containsExpr(expr, contains constraint.Expr) bool {
	switch x := expr.(type) {
	case *constraint.AndExpr:
		return containsExpr(x.X, contains) || containsExpr(x.Y, contains)
	case *constraint.OrExpr:
		return containsExpr(x.X, contains) && containsExpr(x.Y, contains)
	default:
		return reflect.DeepEqual(expr, contains)
	}
}

func withoutBuildTag(expr constraint.Expr, buildTag *constraint.TagExpr) constraint.Expr {
	notBuildTag := &constraint.NotExpr{X: buildTag}
	if containsExpr(expr, notBuildTag) {
		return expr
	} else if expr == nil {
		return notBuildTag
	} else {
		return &constraint.AndExpr{X: expr, Y: notBuildTag}
	}
}

// parseBuildTags returns the build constraint of a file, or nil if it has
// none. Only the comments preceding the package clause are considered.
func parseBuildTags(file *ast.File) (constraint.Expr, error) {
	var plusBuildLines constraint.Expr
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}
		for _, c := range group.List {
			switch {
			case constraint.IsGoBuild(c.Text):
				return constraint.Parse(c.Text)
			case constraint.IsPlusBuild(c.Text):
				x, err := constraint.Parse(c.Text)
				if err != nil {
					return nil, err
				}
				if plusBuildLines == nil {
					plusBuildLines = x
				} else {
					plusBuildLines = &constraint.AndExpr{X: plusBuildLines, Y: x}
				}
			}
		}
	}
	return plusBuildLines, nil
}

// isSourceFile reports whether a file holds generator functions to compile:
// its build constraint requires the source tag.
func isSourceFile(file *ast.File, sourceTag string) (bool, error) {
	expr, err := parseBuildTags(file)
	if err != nil || expr == nil {
		return false, err
	}
	return containsExpr(expr, &constraint.TagExpr{Tag: sourceTag}), nil
}

// withoutTag removes the build tag from the conjunctions of expr. It returns
// nil if nothing is left.
func withoutTag(expr constraint.Expr, buildTag *constraint.TagExpr) constraint.Expr {
	switch x := expr.(type) {
	case *constraint.AndExpr:
		left, right := withoutTag(x.X, buildTag), withoutTag(x.Y, buildTag)
		switch {
		case left == nil:
			return right
		case right == nil:
			return left
		}
		return &constraint.AndExpr{X: left, Y: right}
	case *constraint.TagExpr:
		if x.Tag == buildTag.Tag {
			return nil
		}
	}
	return expr
}

// outputConstraint returns the build constraint of a file generated from a
// source file constrained by fileExpr. The source tag is negated, and the
// other tags of the source file are kept along with buildTags.
func outputConstraint(sourceTag string, fileExpr constraint.Expr, buildTags string) (string, error) {
	tag := &constraint.TagExpr{Tag: sourceTag}
	expr := withoutTag(fileExpr, tag)
	if buildTags != "" {
		x, err := constraint.Parse("//go:build " + buildTags)
		if err != nil {
			return "", err
		}
		if expr == nil {
			expr = x
		} else {
			expr = &constraint.AndExpr{X: expr, Y: x}
		}
	}
	return "//go:build " + withoutBuildTag(expr, tag).String(), nil
}
