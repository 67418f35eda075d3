// Command slicecheck replays YAML repro cases through the partitioner.
//
//	slicecheck [-v] [-view] case.yaml...
//
// Cases are written by the game with the C key. The exit status is 1 when
// any case does not match its expectations.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/slicer/repro"
)

func main() {
	verbose := flag.Bool("v", false, "print fragment vertices")
	view := flag.Bool("view", false, "open a window showing the first case")
	flag.Parse()
	log.SetFlags(0)

	if flag.NArg() == 0 {
		log.Fatal("slicecheck: no case files")
	}

	failed := false
	var first *caseView
	for _, path := range flag.Args() {
		c, outcomes, err := check(path)
		if err != nil {
			log.Printf("slicecheck: %s: %v", path, err)
			failed = true
		}
		if outcomes == nil {
			continue
		}
		printOutcomes(os.Stdout, c, outcomes, *verbose)
		if first == nil {
			first = &caseView{c: c, outcomes: outcomes}
		}
	}

	if *view && first != nil {
		if err := runViewer(first); err != nil {
			log.Fatal(err)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func check(path string) (repro.Case, []repro.Outcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return repro.Case{}, nil, err
	}
	c, err := repro.Parse(data)
	if err != nil {
		return repro.Case{}, nil, err
	}
	outcomes := repro.Run(c)
	return c, outcomes, repro.Check(outcomes)
}

func printOutcomes(w io.Writer, c repro.Case, outcomes []repro.Outcome, verbose bool) {
	name := c.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "%s: %d segments, %d bodies\n", name, len(c.Path), len(c.Bodies))
	for _, o := range outcomes {
		status := "split"
		if o.Unchanged {
			status = "unchanged"
		}
		fmt.Fprintf(w, "  body %d: %s into %d (area %.3f -> %.3f)", o.Index, status, len(o.Result.Polygons), o.AreaIn, o.AreaOut)
		if o.Result.Err != nil {
			fmt.Fprintf(w, " [%v]", o.Result.Err)
		}
		fmt.Fprintln(w)
		for _, u := range o.Result.Unresolved {
			fmt.Fprintf(w, "    %v\n", u)
		}
		if !verbose {
			continue
		}
		for i, p := range o.Result.Polygons {
			fmt.Fprintf(w, "    fragment %d:", i)
			for _, v := range p {
				fmt.Fprintf(w, " (%.3f, %.3f)", v.X, v.Y)
			}
			fmt.Fprintln(w)
		}
	}
}
