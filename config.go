package ecs

import "github.com/TheBitDrifter/table"

// Config holds process-wide tuning knobs, the same shape as the reference's
// package-level config (config.go): a single mutable struct reached through
// a package variable rather than threaded through every constructor.
var Config config = config{
	eventPollCap: 0,
}

type config struct {
	tableEvents  table.TableEvents
	eventPollCap int
}

// SetTableEvents installs the table.TableEvents callbacks every chunk's
// table.Table is built with (§4.C).
func (c *config) SetTableEvents(te table.TableEvents) {
	c.tableEvents = te
}

// SetEventPollCap bounds how many events EventBus.Poll dispatches per call
// (0 = unbounded). Caps the work a single Poll can do when a producer has
// queued far more than any one frame should drain (§4.G, SPEC_FULL.md).
func (c *config) SetEventPollCap(n int) {
	c.eventPollCap = n
}
