package nodelink_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ortofta/kaoto/pkg/render/nodelink"
	"github.com/Ortofta/kaoto/pkg/viz"
)

func ExampleToDOT() {
	from := viz.NewGroup("route/from", viz.NodeData{ProcessorName: "from", ComponentName: "timer"})
	from.AddChild(viz.NewNode("route/from/steps/0/log", viz.NodeData{ProcessorName: "log"}))
	from.AddChild(viz.NewNode("route/from/steps/1/to", viz.NodeData{ProcessorName: "to", ComponentName: "direct"}))
	g, _ := viz.NewGraph(from)

	dot := nodelink.ToDOT(g, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "route/from" -> "route/from/steps/0/log";
	// "route/from/steps/0/log" -> "route/from/steps/1/to";
}

func ExampleRenderSVG() {
	root := viz.NewGroup("route", viz.NodeData{ProcessorName: "route"})
	root.AddChild(viz.NewNode("route/from", viz.NodeData{ProcessorName: "from"}))
	g, _ := viz.NewGraph(root)

	svg, err := nodelink.RenderSVG(context.Background(), nodelink.ToDOT(g, nodelink.Options{}))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Generated SVG (%d bytes)\n", len(svg))
	// Output varies based on Graphviz installation
}
