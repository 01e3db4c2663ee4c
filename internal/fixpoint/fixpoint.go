// Package fixpoint drives the schema and data worklists to completion:
// Round A (type derivation, uses expansion) then Round B (everything
// else) for schema items, Phase 1 (when evaluation) then Phase 2
// (leafref, instance-id, must, prune) for data items, aborting resolution
// on the first hard error.
//
// The driver is deliberately agnostic to what a schema or data item
// actually resolves — that logic lives in internal/expand, internal/
// leafref and internal/interval — and is injected as a SchemaResolveFunc
// / DataResolveFunc, the same separation of reentrancy/cycle-detection
// *mechanism* from caller-supplied *policy* that internal/graphcycle.Detect
// applies one level down, inside internal/invariant's identity-cycle check.
//
// Grounded on other_examples/golangsnmp-gomib__resolver.go's named-phase
// driver (registerModules -> resolveImports -> resolveTypes -> resolveOids
// -> analyzeSemantics, each phase logged at entry/exit with counts),
// translated to the corpus's actual logging dependency: github.com/rs/
// zerolog's chained-field style, as used throughout
// avular-robotics-avular-packages/internal/adapters and internal/core,
// rather than gomib's own log/slog.
package fixpoint

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"github.com/jacoelho/yangresolve/internal/unres"
)

// Outcome is the result of attempting to resolve one worklist item.
type Outcome uint8

const (
	Resolved Outcome = iota
	Deferred
	Failed
)

// SchemaResolveFunc attempts to resolve one schema worklist item. emit
// lets the resolver enqueue newly-discovered items (grouping expansion
// producing fresh nodes with their own unresolved types, augments,
// refines) without the driver knowing anything about their origin.
type SchemaResolveFunc func(item unres.SchemaItem, emit func(unres.SchemaItem)) (Outcome, error)

// DataResolveFunc attempts to resolve one data worklist item.
type DataResolveFunc func(item unres.DataItem, emit func(unres.DataItem)) (Outcome, error)

// Driver runs the schema and data worklists to a fixpoint.
type Driver struct {
	Schema SchemaResolveFunc
	Data   DataResolveFunc

	// Diagnostics is set by RunSchema for the second, diagnostics-
	// enabled re-run of Round B once the suppressed first pass leaves
	// items unresolved. SchemaResolveFunc implementations read it to
	// decide whether to report the true cause of a failure or stay
	// silent and simply return Deferred.
	Diagnostics bool
}

// RunSchema classifies items into Round A / Round B, runs Round A to
// completion, then Round B, re-running Round B with diagnostics
// unsuppressed if anything was left unresolved.
func (d *Driver) RunSchema(items []unres.SchemaItem) error {
	var roundA, roundB unres.Worklist[unres.SchemaItem]
	for _, item := range items {
		if item.Kind.RoundA() {
			roundA.Enqueue(item)
		} else {
			roundB.Enqueue(item)
		}
	}

	emit := func(item unres.SchemaItem) {
		if item.Kind.RoundA() {
			roundA.Enqueue(item)
		} else {
			roundB.Enqueue(item)
		}
	}

	log.Debug().Int("items", roundA.Len()).Msg("fixpoint: starting schema round A")
	if err := d.runSchemaRound(&roundA, emit); err != nil {
		return err
	}
	log.Debug().Msg("fixpoint: schema round A complete")

	log.Debug().Int("items", roundB.Len()).Msg("fixpoint: starting schema round B")
	leftover, err := d.drainSchemaRoundOnce(&roundB, emit)
	if err != nil {
		return err
	}
	if len(leftover) == 0 {
		log.Debug().Msg("fixpoint: schema round B complete")
		return nil
	}

	log.Warn().Int("items", len(leftover)).Msg("fixpoint: schema round B left items unresolved, re-running with diagnostics")
	for _, item := range leftover {
		roundB.Enqueue(item)
	}
	d.Diagnostics = true
	stillLeftover, err := d.drainSchemaRoundOnce(&roundB, emit)
	if err != nil {
		return err
	}
	if len(stillLeftover) == 0 {
		log.Debug().Msg("fixpoint: schema round B complete on diagnostic re-run")
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("fixpoint: schema round B left %d items unresolved with no diagnosable cause", len(stillLeftover)))
}

// runSchemaRound repeatedly drains round, retrying deferred items, until
// the queue empties or a full pass makes no progress.
func (d *Driver) runSchemaRound(round *unres.Worklist[unres.SchemaItem], emit func(unres.SchemaItem)) error {
	for round.Len() > 0 {
		batch := round.Drain()
		resolvedCount := 0
		var stillPending []unres.SchemaItem
		for _, item := range batch {
			outcome, err := d.Schema(item, emit)
			if err != nil {
				return err
			}
			switch outcome {
			case Resolved:
				resolvedCount++
			case Deferred:
				stillPending = append(stillPending, item)
			case Failed:
				return errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg("fixpoint: schema item failed without error detail")
			}
		}
		for _, item := range stillPending {
			round.Enqueue(item)
		}
		if resolvedCount == 0 && round.Len() > 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("fixpoint: schema round A made no progress with %d items still pending", round.Len()))
		}
	}
	return nil
}

// drainSchemaRoundOnce runs every item in round exactly once — Round B
// items must not depend on each other for ordering — including items
// emitted into round while it runs, returning items that came back
// Deferred.
func (d *Driver) drainSchemaRoundOnce(round *unres.Worklist[unres.SchemaItem], emit func(unres.SchemaItem)) ([]unres.SchemaItem, error) {
	var leftover []unres.SchemaItem
	for round.Len() > 0 {
		batch := round.Drain()
		for _, item := range batch {
			outcome, err := d.Schema(item, emit)
			if err != nil {
				return nil, err
			}
			if outcome == Deferred {
				leftover = append(leftover, item)
			} else if outcome == Failed {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg("fixpoint: schema round B item failed without error detail")
			}
		}
	}
	return leftover, nil
}
