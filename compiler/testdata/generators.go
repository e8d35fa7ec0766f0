//go:build genc

package testdata

import (
	"errors"
	"strconv"

	"github.com/stealthrocket/generator"
)

//go:generate go run github.com/stealthrocket/generator/cmd/genc

var ErrFailing = errors.New("failing")

func Identity(c *generator.Context[int], n int) error {
	c.Yield(n)
	return nil
}

func Squares(c *generator.Context[int], n int) error {
	for i := 1; i <= n; i++ {
		c.Yield(i * i)
	}
	return nil
}

func SquaresTwice(c *generator.Context[int], n int) error {
	if err := Squares(c, n); err != nil {
		return err
	}
	return Squares(c, n)
}

func EvenSquares(c *generator.Context[int], n int) error {
	for i := 1; i <= n; i++ {
		if i%2 == 0 {
			c.Yield(i * i)
		}
	}
	return nil
}

func NestedLoops(c *generator.Context[int], n int) error {
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			for k := 1; k <= n; k++ {
				c.Yield(i * j * k)
			}
		}
	}
	return nil
}

func FizzBuzz(c *generator.Context[string], n int) error {
	for i := 1; i <= n; i++ {
		if i%15 == 0 {
			c.Yield("FizzBuzz")
		} else if i%3 == 0 {
			c.Yield("Fizz")
		} else if i%5 == 0 {
			c.Yield("Buzz")
		} else {
			c.Yield(strconv.Itoa(i))
		}
	}
	return nil
}

func LoopBreakAndContinue(c *generator.Context[int], n int) error {
	for i := 0; ; i++ {
		if i%2 == 1 {
			continue
		}
		if i > n {
			break
		}
		c.Yield(i)
	}
	return nil
}

func RangeSlice(c *generator.Context[string], values []string) error {
	for i, v := range values {
		c.Yield(strconv.Itoa(i) + ":" + v)
	}
	return nil
}

func RangeInt(c *generator.Context[int], n int) error {
	for i := range n {
		c.Yield(n - 1 - i)
	}
	return nil
}

func Shadowing(c *generator.Context[int], n int) error {
	x := n
	c.Yield(x)
	{
		x := x * 2
		c.Yield(x)
	}
	var y int
	c.Yield(x + y)
	return nil
}

// Repeat yields v n times.
func Repeat[T any](c *generator.Context[T], v T, n int) error {
	for range n {
		c.Yield(v)
	}
	return nil
}

func Failing(c *generator.Context[int], n int) error {
	for i := 0; i < n; i++ {
		c.Yield(i)
	}
	return ErrFailing
}
