package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-grain/dsp/buffer"
)

func ExampleRef() {
	ref := buffer.NewRef("source", buffer.FromSlice([]float64{0, 0.5, 1}))

	ref.Store(buffer.New(4, 2))
	fmt.Println(ref.Load().Frames(), ref.Load().Channels(), ref.TakeModified(), ref.TakeModified())

	// Output:
	// 4 2 true false
}
