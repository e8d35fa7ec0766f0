package compiler

import (
	"go/ast"
	"go/token"
	"reflect"
)

var posType = reflect.TypeOf(token.NoPos)

// clearPos sets every position of the nodes of tree to token.NoPos. The
// compiled functions mix source nodes with generated nodes, which go/printer
// lays out incorrectly unless none of them has a position.
func clearPos(tree ast.Node) {
	ast.Inspect(tree, func(node ast.Node) bool {
		if node == nil {
			return false
		}
		v := reflect.ValueOf(node)
		if v.Kind() != reflect.Pointer || v.IsNil() {
			return true
		}
		v = v.Elem()
		if v.Kind() != reflect.Struct {
			return true
		}
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.Type() == posType && f.CanSet() {
				f.SetInt(int64(token.NoPos))
			}
		}
		return true
	})
}
