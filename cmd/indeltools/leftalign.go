package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/indelTools/fai"
	"github.com/dasnellings/indelTools/realign"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fasta"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
	"log"
)

func leftAlignUsage(leftAlignFlags *flag.FlagSet) {
	fmt.Print(
		"leftalign - move the indel of every read with a single indel to its leftmost equivalent position\n\n" +
			"Usage:\n" +
			"  indeltools leftalign [options] -i input.bam -r reference.fa -o output.bam\n\n" +
			"Options:\n")
	leftAlignFlags.PrintDefaults()
}

func runLeftAlign(args []string) {
	var err error
	leftAlignFlags := flag.NewFlagSet("leftalign", flag.ExitOnError)

	input := leftAlignFlags.String("i", "", "Input bam file.")
	output := leftAlignFlags.String("o", "stdout", "Output bam file.")
	reference := leftAlignFlags.String("r", "", "Reference fasta file. Must be indexed (.fai).")

	err = leftAlignFlags.Parse(args)
	exception.PanicOnErr(err)
	leftAlignFlags.Usage = func() { leftAlignUsage(leftAlignFlags) }

	if *input == "" || *reference == "" {
		leftAlignFlags.Usage()
		errExit("\nERROR: must have inputs for -i and -r")
	}

	leftAlign(*input, *output, *reference)
}

func leftAlign(input, output, reference string) {
	var err error
	reads, header := sam.GoReadToChan(input)
	seeker := fasta.NewSeeker(reference, "")
	idx := fai.ReadIndex(reference + ".fai")
	out := fileio.EasyCreate(output)
	bw := sam.NewBamWriter(out, header)

	var count int
	for r := range realign.GoLeftAlign(reads, seeker, idx) {
		sam.WriteToBamFileHandle(bw, r, 0)
		count++
	}

	err = bw.Close()
	exception.PanicOnErr(err)
	err = out.Close()
	exception.PanicOnErr(err)
	err = seeker.Close()
	exception.PanicOnErr(err)
	log.Printf("Processed %d reads\n", count)
}
