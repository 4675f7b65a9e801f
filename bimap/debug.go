package bimap

import (
	"log"
)

// DebugPrint logs every pair of this Dict, oldest first.
func (d *Dict[K]) DebugPrint() {
	log.Printf("> bimap len=%d", d.Len())
	for k, v := range d.Pairs() {
		if k == v {
			log.Printf("  %#v <-> (self)", any(k))
			continue
		}
		log.Printf("  %#v <-> %#v", any(k), any(v))
	}
}
