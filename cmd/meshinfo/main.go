// meshinfo is a headless CLI for inspecting glTF scene meshes and their
// interactivity status.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hot7585325/WebVR/internal/engine/loader"
	"github.com/hot7585325/WebVR/internal/engine/scene"
	"github.com/hot7585325/WebVR/internal/interact"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "list", "ls":
		cmdList(args)
	case "find":
		cmdFind(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshinfo - glTF mesh inspection utility

Usage:
  meshinfo <command> [options]

Commands:
  info <model.gltf>                       Show scene statistics
  list <model.gltf> [-interactive "A,B"]  List meshes with interactive status
  find <model.gltf> <name>                Look up a mesh by exact name

Examples:
  meshinfo info car.glb
  meshinfo list car.glb -interactive "Wheel, Glass"
  meshinfo find car.glb Body`)
}

func loadModel(path string) *scene.Node {
	root, err := loader.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return root
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshinfo info <model.gltf>")
		os.Exit(1)
	}

	root := loadModel(args[0])

	nodes, primitives, vertices, triangles := 0, 0, 0, 0
	var bounds scene.Bounds
	haveBounds := false
	root.Walk(func(n *scene.Node) bool {
		nodes++
		if n.Mesh == nil {
			return true
		}
		primitives += len(n.Mesh.Primitives)
		vertices += n.Mesh.VertexCount()
		triangles += n.Mesh.TriangleCount()
		if !haveBounds {
			bounds = n.Mesh.Bounds
			haveBounds = true
		} else {
			bounds = bounds.Merge(n.Mesh.Bounds)
		}
		return true
	})

	records := interact.DiscoverMeshes(root)

	fmt.Printf("Model:      %s\n", args[0])
	fmt.Printf("Nodes:      %d\n", nodes)
	fmt.Printf("Meshes:     %d\n", len(records))
	fmt.Printf("Primitives: %d\n", primitives)
	fmt.Printf("Vertices:   %d\n", vertices)
	fmt.Printf("Triangles:  %d\n", triangles)
	if haveBounds {
		fmt.Printf("Bounds:     (%.2f, %.2f, %.2f) .. (%.2f, %.2f, %.2f)\n",
			bounds.Min.X, bounds.Min.Y, bounds.Min.Z,
			bounds.Max.X, bounds.Max.Y, bounds.Max.Z)
	}
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	interactive := fs.String("interactive", "", "Comma-separated interactive mesh names (default: all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshinfo list <model.gltf> [-interactive \"A,B\"]")
		os.Exit(1)
	}

	root := loadModel(fs.Arg(0))

	// The component gives the same 1-indexed listing the viewer logs in
	// debug mode; no picker is needed for a headless run.
	c := interact.New(root, nil, interact.Options{InteractiveMeshes: *interactive})
	root.Events().Emit(interact.EventModelLoaded, root)

	names := c.MeshNames()
	if len(names) == 0 {
		fmt.Println("No meshes found")
		return
	}
	fmt.Print(c.DebugListing())
}

func cmdFind(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: meshinfo find <model.gltf> <name>")
		os.Exit(1)
	}

	root := loadModel(args[0])
	name := args[1]

	for _, r := range interact.DiscoverMeshes(root) {
		if r.Name != name {
			continue
		}
		fmt.Printf("Mesh:       %s\n", r.Name)
		fmt.Printf("Parent:     %s\n", r.ParentName)
		fmt.Printf("Primitives: %d\n", len(r.Node.Mesh.Primitives))
		fmt.Printf("Vertices:   %d\n", r.Node.Mesh.VertexCount())
		for i, m := range r.Node.Mesh.Materials() {
			if m == nil {
				fmt.Printf("Material %d: (none)\n", i)
				continue
			}
			fmt.Printf("Material %d: %s %s\n", i, m.Name, m.Color().Hex())
		}
		return
	}

	fmt.Fprintf(os.Stderr, "Mesh not found: %s\n", name)
	os.Exit(1)
}
