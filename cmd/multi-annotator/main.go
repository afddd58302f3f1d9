// Command multi-annotator is a thin illustrative CLI wired on top of
// the proformamass library, demonstrating formula algebra and charge
// enumeration. It is not the library's main deliverable (that's the
// proformamass package); SPEC_FULL.md §2 treats this binary as
// illustrative only.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/noatgnu/proformamass/proformamass"
)

func main() {
	formula := flag.String("formula", "C6H12O6", "molecular formula in Hill notation")
	charge := flag.Int("charge", 1, "target charge state to enumerate adduct combinations for")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	f, err := proformamass.ParseHillNotation(*formula)
	if err != nil {
		logger.Error("parsing formula", "formula", *formula, "error", err)
		os.Exit(1)
	}

	fmt.Printf("formula: %s\n", f.HillNotation())
	fmt.Printf("monoisotopic mass: %.4f\n", f.MonoisotopicMass())
	fmt.Printf("average weight: %.4f\n", f.AverageWeight())
	fmt.Printf("most abundant isotopologue mass: %.4f\n", f.MostAbundantMass())

	if *charge > 0 {
		combos := proformamass.Options(proformamass.StandardAdducts(), int32(*charge))
		fmt.Printf("\ncharge +%d adduct combinations: %d\n", *charge, len(combos))
		for _, mc := range combos {
			fmt.Printf("  %+v (carrier mass %.4f)\n", mc, mc.Formula().MonoisotopicMass())
		}
	}
}
