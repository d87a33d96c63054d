// Command stretchcoeff prints the -scale value that retimes a track
// from one tempo to another.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/neputevshina/olawarp"
)

// run parses args, prints the scale factor to stdout and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("stretchcoeff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	from := fs.Float64("from", 0, "source `bpm`")
	to := fs.Float64("to", 0, "target `bpm`")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !(*from > 0) || !(*to > 0) {
		fmt.Fprintln(stderr, "-from and -to must be positive")
		fs.Usage()
		return 2
	}
	fmt.Fprintln(stdout, olawarp.BPMScale(*from, *to))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
