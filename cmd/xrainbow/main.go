// Command xrainbow cycles the gamma correction of an X11 display through a
// rainbow of hues until interrupted or a time limit elapses.
package main

import (
	"fmt"
	"os"
)

func main() {
	// The command logic lives in run so it can be exercised without
	// touching the process's real arguments or exit status.
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "xrainbow: %s\n", err)
		os.Exit(1)
	}
}
