package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/grimdork/climate/arg"

	"github.com/Urethramancer/mips/assembler"
	"github.com/Urethramancer/mips/disassembler"
)

func main() {
	opt := arg.New("mipsdis")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "File to write the source to. Defaults to stdout.", "", false, arg.VarString, nil)
	opt.SetPositional("INPUT", "Object file (.o).", "", true, arg.VarString)

	err := opt.Parse(os.Args)
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return
		}
		fmt.Fprintf(os.Stderr, "Error parsing arguments: %v\n", err)
		os.Exit(1)
	}

	inputFile := opt.GetPosString("INPUT")
	outputFile := opt.GetString("output")

	data, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	obj, err := assembler.ReadObject(bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading object: %v\n", err)
		os.Exit(1)
	}

	text, err := disassembler.Disassemble(obj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Disassembly error: %v\n", err)
		os.Exit(1)
	}

	if outputFile == "" {
		fmt.Print(text)
		return
	}

	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Disassembly written to %s\n", outputFile)
}
