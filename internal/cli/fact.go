package cli

import (
	"fmt"

	"github.com/quenchapp/quench/internal/facts"
)

type FactCmd struct{}

func (c *FactCmd) Run(ctx *Context) error {
	fmt.Println(facts.Random())
	return nil
}
