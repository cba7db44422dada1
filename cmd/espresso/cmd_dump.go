package main

import (
	"fmt"

	"github.com/dhamidi/espresso/classfile"
	"github.com/dhamidi/espresso/format"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump <file.class>",
		Short: "Dump a class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := classfile.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}

			out := cmd.OutOrStdout()
			switch dumpFormat {
			case "json":
				if err := format.NewJSONEncoder(out).Encode(cf); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Fprintln(out)
			case "line":
				if err := format.NewLineEncoder(out).Encode(cf); err != nil {
					return fmt.Errorf("encode line: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s (expected json or line)", dumpFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (json, line)")

	return cmd
}
