package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/indelTools/clean"
	"github.com/dasnellings/indelTools/realign"
	"github.com/vertgenlab/gonomics/exception"
)

func cleanUsage(cleanFlags *flag.FlagSet) {
	fmt.Print(
		"clean - realign reads around indels within each target interval. Reads are realigned when an alternate\n" +
			"consensus carrying a single indel explains them significantly better than the reference.\n\n" +
			"Usage:\n" +
			"  indeltools clean [options] -i input.bam -r reference.fa -t targets.bed -o output.bam\n\n" +
			"Options:\n")
	cleanFlags.PrintDefaults()
}

func runClean(args []string) {
	var err error
	cleanFlags := flag.NewFlagSet("clean", flag.ExitOnError)
	defaults := realign.DefaultSettings()

	input := cleanFlags.String("i", "", "Input bam file. Must be coordinate sorted.")
	output := cleanFlags.String("o", "stdout", "Output bam file.")
	reference := cleanFlags.String("r", "", "Reference fasta file. Must be indexed (.fai).")
	targets := cleanFlags.String("t", "", "Bed file of target intervals to clean.")
	lod := cleanFlags.Float64("LOD", defaults.LodThreshold, "LOD threshold above which the cleaner will clean. Improvement is measured in tenths of summed base quality.")
	entropy := cleanFlags.Float64("entropy", defaults.EntropyThreshold, "Percentage of mismatching base quality scores at a position to be considered having high entropy.")
	maxConsensuses := cleanFlags.Int("maxConsensuses", defaults.MaxConsensuses, "Max alternate consensuses to try (necessary to improve performance in deep coverage).")
	maxReads := cleanFlags.Int("maxReadsForConsensuses", defaults.MaxReadsForConsensuses, "Max reads used for finding the alternate consensuses (necessary to improve performance in deep coverage).")
	cleanedOnly := cleanFlags.Bool("cleanedOnly", false, "Only output reads that were realigned.")
	indels := cleanFlags.String("indels", "", "Output file for the indels found in cleaned intervals.")
	stats := cleanFlags.String("stats", "", "Output file for the decision made for each interval.")
	snps := cleanFlags.String("snps", "", "Output file for positions that mismatched before cleaning, and whether they still do.")
	plotFile := cleanFlags.String("plot", "", "Output image with a histogram of interval improvement scores. Format is set by the file extension (e.g. .png, .pdf).")
	windowPad := cleanFlags.Int("windowPad", 0, "Reference bases to add on either side of each target interval.")
	verbose := cleanFlags.Int("verbose", 0, "Set to 1 for a run summary, 2 to also log each interval decision.")

	err = cleanFlags.Parse(args)
	exception.PanicOnErr(err)
	cleanFlags.Usage = func() { cleanUsage(cleanFlags) }

	if *input == "" || *reference == "" || *targets == "" {
		cleanFlags.Usage()
		errExit("\nERROR: must have inputs for -i, -r, and -t")
	}

	s := realign.Settings{
		LodThreshold:           *lod,
		EntropyThreshold:       *entropy,
		MaxConsensuses:         *maxConsensuses,
		MaxReadsForConsensuses: *maxReads,
	}
	if err = s.Validate(); err != nil {
		cleanFlags.Usage()
		errExit("\nERROR: " + err.Error())
	}
	if *windowPad < 0 {
		cleanFlags.Usage()
		errExit("\nERROR: -windowPad cannot be negative")
	}

	o := clean.Options{
		IndelsFile:  *indels,
		StatsFile:   *stats,
		SnpsFile:    *snps,
		PlotFile:    *plotFile,
		WindowPad:   *windowPad,
		CleanedOnly: *cleanedOnly,
		Verbose:     *verbose,
	}

	clean.Clean(*input, *output, *reference, *targets, s, o)
}
