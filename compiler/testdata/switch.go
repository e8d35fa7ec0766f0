//go:build genc

package testdata

import (
	"strconv"

	"github.com/stealthrocket/generator"
)

func Classify(c *generator.Context[string], values []int) error {
	for _, v := range values {
		switch {
		case v < 0:
			continue
		case v == 0:
			c.Yield("zero")
		case v%2 == 0:
			if v > 10 {
				break
			}
			c.Yield("even")
		default:
			c.Yield("odd")
		}
	}
	return nil
}

func Numbers(c *generator.Context[string], n int) error {
	for i := range n {
		switch r := i % 4; r {
		case 0:
			c.Yield("zero")
		case 1, 2:
			c.Yield(strconv.Itoa(r))
		}
	}
	return nil
}
