// Command asm4380 assembles VM4380 source files into the binary object
// format the companion VM loads.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"asm4380/asm"
)

const usageText = "usage: asm4380 <input>.asm"

func main() {
	app := &cli.App{
		Name:                 "asm4380",
		Usage:                "Two-pass assembler for the VM4380 instruction set",
		UsageText:            "asm4380 <input>.asm",
		HideHelpCommand:      true,
		EnableBashCompletion: false,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "opcodes",
				Usage: "print the opcode reference table and exit",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("opcodes") {
				printOpcodeTable()
				return nil
			}
			return runAssemble(c.Args().Slice())
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(usageText)
		os.Exit(1)
	}
}

func runAssemble(args []string) error {
	if len(args) != 1 {
		fmt.Println(usageText)
		os.Exit(1)
	}

	input := args[0]
	outPath, ok := asm.OutputPath(input)
	if !ok {
		fmt.Println(usageText)
		os.Exit(1)
	}

	if _, err := os.Stat(input); err != nil {
		fmt.Println(usageText)
		os.Exit(1)
	}

	if err := asm.AssembleFile(input, outPath); err != nil {
		ae, ok := err.(*asm.Error)
		if ok && ae.Kind == asm.KindUsage {
			fmt.Println(usageText)
			os.Exit(1)
		}
		reportError(err)
		os.Exit(2)
	}
	return nil
}

// reportError prints the mandated two-line diagnostic.
func reportError(err error) {
	if ae, ok := err.(*asm.Error); ok {
		fmt.Printf("Assembler error occurred on line %d!\n", ae.Line)
		fmt.Println(ae.Msg)
		return
	}
	fmt.Println(err.Error())
}

func printOpcodeTable() {
	for _, e := range asm.AllOpcodes() {
		fmt.Printf("%2d  %-6s %s\n", e.Number, e.Name, e.Operands)
	}
}
