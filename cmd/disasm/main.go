// Command disasm renders a raw 8080 binary into a listing file, one
// mnemonic per line, following the same addr/mnemonic/bytes layout the
// original cpudiag tooling produced.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hejops/intel8080/disasm"
)

func main() {
	var origin string
	var outPath string

	rootCmd := &cobra.Command{
		Use:   "disasm FILE",
		Short: "Disassemble an 8080 binary into a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseOrigin(origin)
			if err != nil {
				return fmt.Errorf("bad --addr: %w", err)
			}

			blob, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			if len(blob) == 0 {
				return fmt.Errorf("%s is empty", args[0])
			}

			listing := disasm.Listing(blob, addr)

			if outPath == "" {
				outPath = args[0] + ".disassembled"
			}
			if err := os.WriteFile(outPath, []byte(listing), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}

			fmt.Printf("Disassembled %d bytes -> %s\n", len(blob), outPath)
			return nil
		},
	}
	rootCmd.Flags().StringVar(&origin, "addr", "0x0000", "load address of the first byte (hex, e.g. 0x0100)")
	rootCmd.Flags().StringVarP(&outPath, "output", "o", "", "output path (default: FILE.disassembled)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseOrigin(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
