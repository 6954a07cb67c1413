package physics

import (
	"github.com/jinzhu/copier"
)

// Clone returns a deep copy of the world, bodies included. The frame loop
// keeps a pristine clone of the scenario's starting state so a reset always
// restarts from exactly the same conditions.
func (w *World) Clone() *World {
	c := NewWorld()
	_ = copier.CopyWithOption(c, w, copier.Option{DeepCopy: true})
	c.log = w.log
	return c
}
