package domain

import (
	"github.com/mouse-blink/gooze-repair/internal/adapter"
	"github.com/mouse-blink/gooze-repair/internal/logging"
	"github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/mouse-blink/gooze-repair/internal/oracle"
	"github.com/mouse-blink/gooze-repair/internal/randx"
)

// Driver is the single object owning the mutable handles threaded through
// the search: the oracle client, its config, the sandboxed check runner,
// the memo/fitness caches, the PRNG state, and the logger. spec.md §9
// calls explicitly for "an explicit context value carrying mutable
// handles... or equivalently a single driver object owning those fields,"
// in place of the original's reader/state/IO monad stack; this is that
// object. Every method on Driver is called from the single cooperative
// search thread (spec.md §5) except where a method's own doc comment says
// otherwise (C7's bounded-concurrency fitness fan-out).
type Driver struct {
	Oracle oracle.Oracle
	Config oracle.Config
	Runner adapter.CheckRunner

	Memo    *model.MemoCache
	Fitness *model.FitnessCache

	Rand *randx.Rand
	Log  *logging.Logger
}

// NewDriver constructs a Driver with fresh, empty caches.
func NewDriver(oc oracle.Oracle, cfg oracle.Config, runner adapter.CheckRunner, seed uint64, log *logging.Logger) *Driver {
	if log == nil {
		log = logging.Nop()
	}

	return &Driver{
		Oracle:  oc,
		Config:  cfg,
		Runner:  runner,
		Memo:    model.NewMemoCache(),
		Fitness: model.NewFitnessCache(),
		Rand:    randx.New(seed),
		Log:     log,
	}
}
