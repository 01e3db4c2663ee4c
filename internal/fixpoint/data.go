package fixpoint

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"github.com/jacoelho/yangresolve/internal/unres"
)

// RunData classifies items into Phase 1 (when evaluation) and Phase 2
// (leafref, instance-id, must, prune), running Phase 1 to a fixpoint
// before starting Phase 2 — a node's when is only meaningful once every
// ancestor when is in a terminal state, and Phase 2's leafref/must checks
// assume the tree's final deleted-subtree shape is already settled.
func (d *Driver) RunData(items []unres.DataItem) error {
	var phase1, phase2 unres.Worklist[unres.DataItem]
	for _, item := range items {
		if item.Kind.Phase1() {
			phase1.Enqueue(item)
		} else {
			phase2.Enqueue(item)
		}
	}

	emitPhase1 := func(item unres.DataItem) {
		if item.Kind.Phase1() {
			phase1.Enqueue(item)
		} else {
			phase2.Enqueue(item)
		}
	}

	log.Debug().Int("items", phase1.Len()).Msg("fixpoint: starting data phase 1 (when evaluation)")
	if err := d.runDataRound(&phase1, emitPhase1); err != nil {
		return err
	}
	log.Debug().Msg("fixpoint: data phase 1 complete")

	log.Debug().Int("items", phase2.Len()).Msg("fixpoint: starting data phase 2")
	emitPhase2 := func(item unres.DataItem) { phase2.Enqueue(item) }
	if err := d.runDataRound(&phase2, emitPhase2); err != nil {
		return err
	}
	log.Debug().Msg("fixpoint: data phase 2 complete")
	return nil
}

func (d *Driver) runDataRound(round *unres.Worklist[unres.DataItem], emit func(unres.DataItem)) error {
	for round.Len() > 0 {
		batch := round.Drain()
		resolvedCount := 0
		var stillPending []unres.DataItem
		for _, item := range batch {
			outcome, err := d.Data(item, emit)
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
					WithMsg("fixpoint: data item failed without error detail")
			}
		}
		for _, item := range stillPending {
			round.Enqueue(item)
		}
		if resolvedCount == 0 && round.Len() > 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("fixpoint: data round made no progress with %d items still pending", round.Len()))
		}
	}
	return nil
}
