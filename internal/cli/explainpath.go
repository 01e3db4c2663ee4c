package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacoelho/yangresolve/internal/pathparse"
	"github.com/jacoelho/yangresolve/internal/qname"
)

func newExplainPathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain-path <schema-nodeid>",
		Short: "Parse a schema nodeid and print its segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplainPath(args[0])
		},
	}
	return cmd
}

func runExplainPath(text string) error {
	segments, absolute, consumed, err := pathparse.ParseSchemaNodeID([]byte(text))
	if err != nil {
		return fmt.Errorf("explain-path: %w", err)
	}
	fmt.Printf("absolute: %t, consumed: %d bytes\n", absolute, consumed)
	for i, seg := range segments {
		name := qname.Name{Module: string(seg.Module), Local: string(seg.Name)}
		fmt.Printf("  [%d] %s\n", i, name.String())
	}
	return nil
}
