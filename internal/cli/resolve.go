package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jacoelho/yangresolve"
	"github.com/jacoelho/yangresolve/internal/model"
)

type resolveFlags struct {
	Modules             []string
	KeepEmptyContainers bool
	RPCInput            bool
	RPCOutput           bool
	NoAutoDelete        bool
}

func newResolveCommand() *cobra.Command {
	flags := resolveFlags{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a set of already-parsed modules (JSON-encoded internal/model.Module) to a fixpoint",
		Long: "resolve reads one JSON-encoded internal/model.Module per --module path and runs " +
			"yangresolve.ResolveSchema over the set. It is a demonstration front end: a real " +
			"deployment's own YANG parser produces the model.Module values this module consumes " +
			"as its ParserCollaborator input; yangcheck does not itself parse YANG source text.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), flags)
		},
	}
	cmd.Flags().StringSliceVar(&flags.Modules, "module", nil, "Path to a JSON-encoded parsed module (repeatable)")
	cmd.Flags().BoolVar(&flags.KeepEmptyContainers, "keep-empty-containers", false, "Do not prune non-presence containers left with no live children")
	cmd.Flags().BoolVar(&flags.RPCInput, "rpc-input", false, "Restrict data resolution to rpc input subtrees")
	cmd.Flags().BoolVar(&flags.RPCOutput, "rpc-output", false, "Restrict data resolution to rpc output subtrees")
	cmd.Flags().BoolVar(&flags.NoAutoDelete, "no-auto-del", false, "Do not delete when-false subtrees, only record their when-state")
	_ = viper.BindPFlag("keep_empty_containers", cmd.Flags().Lookup("keep-empty-containers"))
	_ = viper.BindPFlag("rpc_input", cmd.Flags().Lookup("rpc-input"))
	_ = viper.BindPFlag("rpc_output", cmd.Flags().Lookup("rpc-output"))
	_ = viper.BindPFlag("no_auto_del", cmd.Flags().Lookup("no-auto-del"))
	return cmd
}

// fileParserCollaborator implements yangresolve.ParserCollaborator by
// decoding one JSON-encoded internal/model.Module.
type fileParserCollaborator struct {
	module *model.Module
}

func (f *fileParserCollaborator) ParsedSchema() *model.Module           { return f.module }
func (f *fileParserCollaborator) Diagnostics() []yangresolve.Diagnostic { return nil }

func loadParserCollaborator(path string) (*fileParserCollaborator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var m model.Module
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &fileParserCollaborator{module: &m}, nil
}

func flagsFrom(f resolveFlags) yangresolve.Flags {
	var out yangresolve.Flags
	if viper.GetBool("keep_empty_containers") || f.KeepEmptyContainers {
		out |= yangresolve.KeepEmptyContainers
	}
	if viper.GetBool("rpc_input") || f.RPCInput {
		out |= yangresolve.RPCInput
	}
	if viper.GetBool("rpc_output") || f.RPCOutput {
		out |= yangresolve.RPCOutput
	}
	if viper.GetBool("no_auto_del") || f.NoAutoDelete {
		out |= yangresolve.NoAutoDelete
	}
	return out
}

func runResolve(ctx context.Context, flags resolveFlags) error {
	if len(flags.Modules) == 0 {
		return fmt.Errorf("resolve: at least one --module is required")
	}

	parsers := make([]yangresolve.ParserCollaborator, 0, len(flags.Modules))
	for _, path := range flags.Modules {
		p, err := loadParserCollaborator(path)
		if err != nil {
			return err
		}
		parsers = append(parsers, p)
	}

	resolved, err := yangresolve.ResolveSchema(ctx, parsers, yangresolve.WithFlags(flagsFrom(flags)))
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}

	for _, m := range resolved.Modules {
		log.Info().
			Str("module", m.Name).
			Str("revision", m.Revision).
			Int("nodes", len(m.Nodes)).
			Int("types", len(m.Types)).
			Msg("resolved")
		fmt.Printf("%s@%s: %d top-level nodes, %d types, %d identities\n",
			m.Name, m.Revision, len(m.Top), len(m.Types), len(m.Identities))
	}
	return nil
}
