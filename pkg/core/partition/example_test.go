package partition_test

import (
	"fmt"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
	"github.com/matzehuels/boundlayout/pkg/core/partition"
)

func ExampleDecompose() {
	region := geom.Box{X: 0, Y: 0, W: 100, H: 100}
	overlap := geom.Box{X: 50, Y: 0, W: 100, H: 100}

	tree := partition.Decompose(region, []geom.Box{overlap})
	for _, leaf := range tree.Leaves() {
		fmt.Println(leaf)
	}
	// Output: (0, 0, 50×100)
}
