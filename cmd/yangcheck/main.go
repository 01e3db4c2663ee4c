// Command yangcheck is a demonstration front end for the yangresolve
// module: it resolves already-parsed YANG modules to a fixpoint and
// reports what remains unresolved.
package main

import "github.com/jacoelho/yangresolve/internal/cli"

func main() {
	cli.Execute()
}
