package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/espresso/classfile"
	"github.com/dhamidi/espresso/resolve"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.class>...",
		Short: "Decode, resolve and re-encode class files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				name, err := checkFile(path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "fail\t%s\t%s\n", path, err)
					continue
				}
				fmt.Fprintf(out, "ok\t%s\t%s\n", path, name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d class files failed", failed, len(args))
			}
			return nil
		},
	}
}

func checkFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	cf, err := classfile.Decode(data)
	if err != nil {
		return "", err
	}
	class, err := resolve.FromClassFile(cf)
	if err != nil {
		return "", err
	}
	again, err := classfile.Marshal(cf)
	if err != nil {
		return "", fmt.Errorf("re-encode: %w", err)
	}
	// Flag bits without a meaning are dropped on decode, so the bytes may
	// legitimately change; the decoded trees must not.
	decoded, err := classfile.Decode(again)
	if err != nil {
		return "", fmt.Errorf("decode re-encoded bytes: %w", err)
	}
	if diff := cmp.Diff(cf, decoded); diff != "" {
		return "", fmt.Errorf("re-encoded class differs (-input +re-encoded):\n%s", diff)
	}
	return class.SourceName(), nil
}
