package root

import (
	"github.com/aumos-platform/testbed/apps/cli/cmd/bootstrap"
	"github.com/aumos-platform/testbed/apps/cli/cmd/seed"
)

func init() {
	Root().AddCommand(bootstrap.Command())
	Root().AddCommand(seed.Command())
}
