package events

import (
	"time"

	"github.com/atomfield/quickpick/internal/logging"
)

type IndexTracer struct{}

type HistoryTracer struct{}

var (
	Index   = IndexTracer{}
	History = HistoryTracer{}
)

func (IndexTracer) Scan(root string, files int, elapsed time.Duration) {
	logging.Trace("index.scan", map[string]interface{}{
		"root":    root,
		"files":   files,
		"elapsed": elapsed.String(),
	})
}

func (IndexTracer) WatchError(err error) {
	if err == nil {
		return
	}
	logging.Trace("index.watch-error", map[string]interface{}{"error": err.Error()})
}

func (HistoryTracer) Recorded(path string) {
	logging.Trace("history.recorded", map[string]interface{}{"path": path})
}

func (HistoryTracer) Cleared() {
	logging.Trace("history.cleared", nil)
}
