package cel_test

import (
	"fmt"

	"github.com/ezachrisen/composite"
	"github.com/ezachrisen/composite/cel"
)

// Example showing CEL rules combined in a composite
func Example() {
	facts := cel.Facts{"temperature": 31, "humidity": 80}

	hot, err := cel.NewRule("hot", `temperature > 30`, facts)
	if err != nil {
		fmt.Println(err)
		return
	}
	humid, err := cel.NewRule("humid", `humidity > 70`, facts,
		cel.WithAssignment("warning", `"heat index high"`))
	if err != nil {
		fmt.Println(err)
		return
	}

	c := composite.New("heat_warning")
	_ = c.Add(hot, humid)
	c.SetLogicalConjunction("[hot] && [humid]")

	fired, err := c.Fire()
	fmt.Println(fired, err)
	fmt.Println(facts["warning"])
	// Output:
	// true <nil>
	// heat index high
}
