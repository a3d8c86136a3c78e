package links_test

import (
	"fmt"

	"github.com/Ortofta/kaoto/pkg/links"
)

type row struct{ visible bool }

func (r row) Realized() bool { return true }

func (r row) BoundsIfVisible() (links.Rect, bool) {
	return links.Rect{W: 100, H: 20}, r.visible
}

func ExampleExtract() {
	// The source field is hidden under its collapsed parent.
	oracle := links.OracleFunc(func(path string) links.NodeReference {
		switch path {
		case "body:Order://order":
			return row{visible: true}
		case "body:Order://order/id":
			return row{visible: false}
		case "out:Invoice://invoice/ref":
			return row{visible: true}
		}
		return nil
	})

	conns, err := links.Extract(nil, []links.Correlation{
		{SourcePath: "body:Order://order/id", TargetPath: "out:Invoice://invoice/ref"},
	}, oracle)
	if err != nil {
		panic(err)
	}
	for _, c := range conns {
		fmt.Println(c.SourcePath, "drawn from", c.SourceAnchor)
	}
	// Output: body:Order://order/id drawn from body:Order://order
}
