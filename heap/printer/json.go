package printer

import (
	"encoding/json"

	"github.com/joshuapare/arenakit/heap"
)

// printJSON writes the snapshot as indented JSON for tooling.
func (p *Printer) printJSON(snap heap.Snapshot) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
