package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/grimdork/climate/arg"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/Urethramancer/mips/assembler"
)

func main() {
	opt := arg.New("mipsasm")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Object file to write. Defaults to the input name with a .o extension.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "s", "symbols", "Print the symbol table after assembly.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Trace level for the assembler passes (0-2).", 0, false, arg.VarInt, nil)
	opt.SetPositional("INPUT", "Assembly source file (.s).", "", true, arg.VarString)

	err := opt.Parse(os.Args)
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return
		}
		fmt.Fprintf(os.Stderr, "Error parsing arguments: %v\n", err)
		os.Exit(1)
	}

	setupLogging(opt.GetInt("verbose"))
	defer glog.Flush()

	input := opt.GetPosString("INPUT")
	output := opt.GetString("output")
	if output == "" {
		output, err = objectName(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	data, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	// Assemble into memory first so a failed run never leaves a partial object.
	asm := assembler.New()
	var obj bytes.Buffer
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if err := asm.AssembleLines(lines, &obj); err != nil {
		glog.Flush()
		fmt.Fprintf(os.Stderr, "%s: %v\n", input, err)
		os.Exit(1)
	}

	if opt.GetBool("symbols") {
		dumpSymbols(asm.Symbols())
	}

	if err := os.WriteFile(output, obj.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	glog.V(1).Infof("wrote %s: text %d bytes, data %d bytes", output, asm.TextSize(), asm.DataSize())
}

// objectName turns "prog.s" into "prog.o". Anything else is not an assembly file.
func objectName(input string) (string, error) {
	ext := filepath.Ext(input)
	base := filepath.Base(input)
	if ext != ".s" || base == ext {
		return "", errors.New("'" + input + "' file is not an assembly file")
	}
	return strings.TrimSuffix(input, ext) + ".o", nil
}

// dumpSymbols pretty-prints the symbol table to stderr, in colour on a terminal.
func dumpSymbols(symbols []assembler.Symbol) {
	printer := pp.New()
	printer.SetOutput(os.Stderr)
	printer.SetColoringEnabled(term.IsTerminal(int(os.Stderr.Fd())))
	table := make([]string, len(symbols))
	for i, s := range symbols {
		table[i] = fmt.Sprintf("%s: 0x%08x (%s)", s.Name, s.Address, s.Section)
	}
	printer.Println(table)
}

// setupLogging routes glog to stderr at the requested verbosity.
func setupLogging(level int) {
	flag.Set("logtostderr", "true")
	flag.Set("v", strconv.Itoa(level))
}
