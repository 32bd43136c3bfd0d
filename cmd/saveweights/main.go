// saveweights saves the vertex group weights of a mesh object to a file and
// applies them back, merging with groups that already exist.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/saveweights/internal/logger"
)

func main() {
	err := newRootCmd(os.Stdout).Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
