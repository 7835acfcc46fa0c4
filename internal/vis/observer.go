package vis

import (
	"fmt"
	"io"
)

// ProgressObserver prints one line per completed frame. Every thins
// the output: 1 prints every frame, n prints frames 0, n, 2n, ...
type ProgressObserver struct {
	W     io.Writer
	Total int
	Every int
}

func (p *ProgressObserver) OnFrame(frame int, modifier, mean float64, seed uint64) {
	every := p.Every
	if every < 1 {
		every = 1
	}
	if frame%every != 0 {
		return
	}
	fmt.Fprintf(p.W, "frame %d/%d  modifier=%+.4f  mean=%+.4f  seed=%d\n",
		frame+1, p.Total, modifier, mean, seed)
}
