package heap_test

import (
	"fmt"

	"github.com/buddyheap/heap"
)

func Example() {
	a := heap.NewAllocator()

	buf := a.Allocate(64)
	copy(buf, []byte("hello"))

	grown := a.Resize(buf, 512)
	fmt.Println(string(grown[:5]))

	a.Free(grown)
	fmt.Println(a.NumAllocatedBlocks() == a.NumFreeBlocks())

	// Output:
	// hello
	// true
}
