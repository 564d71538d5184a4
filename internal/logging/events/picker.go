package events

import "github.com/atomfield/quickpick/internal/logging"

type PickerTracer struct{}

type QueryTracer struct{}

var (
	Picker = PickerTracer{}
	Query  = QueryTracer{}
)

func (PickerTracer) Cursor(ix int) {
	logging.Trace("picker.cursor", map[string]interface{}{"index": ix})
}

func (PickerTracer) Scroll(offset int) {
	logging.Trace("picker.scroll", map[string]interface{}{"offset": offset})
}

func (PickerTracer) Confirm(secondary bool, ix int) {
	logging.Trace("picker.confirm", map[string]interface{}{"secondary": secondary, "index": ix})
}

func (PickerTracer) Dismiss() {
	logging.Trace("picker.dismiss", nil)
}

func (QueryTracer) Changed(query string, generation uint64) {
	logging.Trace("query.changed", map[string]interface{}{"query": query, "generation": generation})
}

func (QueryTracer) Settled(generation uint64) {
	logging.Trace("query.settled", map[string]interface{}{"generation": generation})
}

func (QueryTracer) Stale(generation, latest uint64) {
	logging.Trace("query.stale", map[string]interface{}{"generation": generation, "latest": latest})
}

func (QueryTracer) Dropped(generation uint64) {
	logging.Trace("query.dropped", map[string]interface{}{"generation": generation})
}
