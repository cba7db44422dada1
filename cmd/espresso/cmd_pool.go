package main

import (
	"fmt"

	"github.com/dhamidi/espresso/classfile"
	"github.com/dhamidi/espresso/resolve"
	"github.com/spf13/cobra"
)

func newPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool <file.class>",
		Short: "List the constant pool with every index resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := classfile.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}

			out := cmd.OutOrStdout()
			cp := cf.ConstantPool
			for pos, raw := range cp {
				index := pos + 1
				c, err := resolve.ConstantAt(cp, uint16(index))
				if err != nil {
					fmt.Fprintf(out, "#%d\t%s\t!%s\n", index, raw.Tag(), err)
					continue
				}
				fmt.Fprintf(out, "#%d\t%s\t%s\n", index, c.Tag(), poolValue(c))
			}
			return nil
		},
	}
}

func poolValue(c resolve.Constant) string {
	if s, ok := c.(resolve.Utf8); ok {
		return fmt.Sprintf("%q", string(s))
	}
	return c.String()
}
