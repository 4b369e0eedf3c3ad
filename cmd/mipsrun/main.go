package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/grimdork/climate/arg"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/Urethramancer/mips/assembler"
	"github.com/Urethramancer/mips/cpu"
)

// This program loads an object file, runs it until control leaves the text
// section, and prints the resulting machine state.
func main() {
	opt := arg.New("mipsrun")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "n", "steps", "Maximum number of instructions to execute.", 1000000, false, arg.VarInt, nil)
	opt.SetOption(arg.GroupDefault, "m", "memory", "Also dump the data section after execution.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Trace every executed instruction.", false, false, arg.VarBool, nil)
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

	flag.Set("logtostderr", "true")
	if opt.GetBool("verbose") {
		flag.Set("v", strconv.Itoa(3))
	}
	defer glog.Flush()

	f, err := os.Open(opt.GetPosString("INPUT"))
	if err != nil {
		glog.Fatalf("Failed to read input: %s", err)
	}
	obj, err := assembler.ReadObject(f)
	f.Close()
	if err != nil {
		glog.Fatalf("Failed to load object: %s", err)
	}

	c := cpu.New()
	c.LoadText(obj.Text)
	c.LoadData(obj.Data)
	fmt.Printf("Loaded %d instructions and %d data words\n\n", len(obj.Text), len(obj.Data))

	if err := c.Run(opt.GetInt("steps")); err != nil {
		dumpRegisters(c)
		glog.Fatalf("CPU execution failed: %v", err)
	}

	dumpRegisters(c)
	if opt.GetBool("memory") {
		dumpData(c, len(obj.Data))
	}
	fmt.Printf("\nExecution finished after %d instructions.\n", c.Steps)
}

func dumpRegisters(c *cpu.CPU) {
	for i, v := range c.R {
		fmt.Printf("$%-4s %08x", cpu.RegisterNames[i], v)
		if i%4 == 3 {
			fmt.Println()
		} else {
			fmt.Print("   ")
		}
	}
	fmt.Printf("pc    %08x\n", c.PC)
}

// dumpData pretty-prints the data section words by address.
func dumpData(c *cpu.CPU, words int) {
	printer := pp.New()
	printer.SetColoringEnabled(term.IsTerminal(int(os.Stdout.Fd())))
	mem := make(map[string]string, words)
	for i := 0; i < words; i++ {
		addr := uint32(cpu.DataStart + i*cpu.BytesPerWord)
		mem[fmt.Sprintf("0x%08x", addr)] = fmt.Sprintf("0x%08x", c.Mem[addr])
	}
	printer.Println(mem)
}
