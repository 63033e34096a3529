package composite_test

import (
	"fmt"

	"github.com/ezachrisen/composite"
)

// Example showing a composite rule with a logical connective
func Example() {
	age, resident, sponsored := 21, false, true

	adult := composite.NewBasicRule("adult", "at least 18 years old", 1).
		When(func() bool { return age >= 18 })
	res := composite.NewBasicRule("resident", "lives here", 2).
		When(func() bool { return resident })
	spon := composite.NewBasicRule("sponsored", "has a sponsor", 3).
		When(func() bool { return sponsored })

	c := composite.New("eligibility")
	if err := c.Add(adult, res, spon); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(c.Evaluate())

	c.SetLogicalConjunction("[adult] && ([resident] || [sponsored])")
	result := c.EvaluateResult()
	fmt.Println(result.Expression)
	fmt.Println(result.Pass)
	// Output:
	// false
	// true && (false || true)
	// true
}

// Example showing that an invalid connective makes the composite false
func Example_invalidConnective() {
	c := composite.New("broken")
	_ = c.Add(composite.NewBasicRule("a", "", 1).When(func() bool { return true }))

	c.SetLogicalConjunction("([a]")
	result := c.EvaluateResult()
	fmt.Println(result.Pass, result.Reason())

	c.SetLogicalConjunction("[a] && [b]")
	result = c.EvaluateResult()
	fmt.Println(result.Pass, result.Reason())
	fmt.Println(result.Err)
	// Output:
	// false format_error
	// false unknown_name
	// rule named {b} not found in logical connective
}

// Example showing Fire, which executes all sub-rules if the composite is true
func Example_fire() {
	c := composite.New("greeting")
	_ = c.Add(
		composite.NewBasicRule("hello", "", 1).
			When(func() bool { return true }).
			Then(func() error { fmt.Println("hello"); return nil }),
		composite.NewBasicRule("world", "", 2).
			When(func() bool { return true }).
			Then(func() error { fmt.Println("world"); return nil }),
	)
	fired, err := c.Fire()
	fmt.Println(fired, err)
	// Output:
	// hello
	// world
	// true <nil>
}
