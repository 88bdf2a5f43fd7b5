// objtool is a CLI utility for inspecting Wavefront OBJ models.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/rad-engine/pkg/formats"
	"github.com/Faultbox/rad-engine/pkg/mesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "bounds":
		err = cmdBounds(os.Stdout, args)
	case "validate", "check":
		err = cmdValidate(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - Wavefront OBJ model utility

Usage:
  objtool <command> [options] <file.obj>...

Commands:
  info <file.obj>...        Show element counts
  bounds <file.obj>...      Show axis-aligned bounding boxes
  validate <file.obj>...    Parse and upload-check models

Examples:
  objtool info monkey.obj
  objtool bounds -j 4 models/*.obj
  objtool validate cube.obj broken.obj`)
}

type parsed struct {
	path string
	obj  *formats.OBJ
	err  error
}

// parseAll parses every file with at most jobs files in flight. Parse
// failures are reported per file; only read errors abort.
func parseAll(ctx context.Context, paths []string, jobs int) ([]parsed, error) {
	out := make([]parsed, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			obj, err := formats.ParseOBJ(string(data))
			out[i] = parsed{path: path, obj: obj, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseArgs(name string, args []string) (paths []string, jobs int, err error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	j := fs.Int("j", 0, "Parse at most N files at once (0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return nil, 0, err
	}
	if fs.NArg() < 1 {
		return nil, 0, fmt.Errorf("usage: objtool %s [-j N] <file.obj>...", name)
	}
	return fs.Args(), *j, nil
}

func cmdInfo(w io.Writer, args []string) error {
	paths, jobs, err := parseArgs("info", args)
	if err != nil {
		return err
	}
	results, err := parseAll(context.Background(), paths, jobs)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Fprintf(w, "File:       %s\n", r.path)
		if r.err != nil {
			fmt.Fprintf(w, "  Error:    %v\n", r.err)
			continue
		}
		o := r.obj
		fmt.Fprintf(w, "  Vertices:  %d\n", len(o.Positions))
		fmt.Fprintf(w, "  UVs:       %d\n", len(o.UVs))
		fmt.Fprintf(w, "  Normals:   %d\n", len(o.Normals))
		fmt.Fprintf(w, "  Faces:     %d\n", len(o.Faces))
		fmt.Fprintf(w, "  Triangles: %d\n", o.TriangleCount())
		if len(o.Objects) > 0 {
			fmt.Fprintf(w, "  Objects:   %v\n", o.Objects)
		}

		// Faces per material
		perMat := make(map[string]int)
		for _, f := range o.Faces {
			perMat[f.Material]++
		}
		names := make([]string, 0, len(perMat))
		for name := range perMat {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			label := name
			if label == "" {
				label = "(none)"
			}
			fmt.Fprintf(w, "    %-12s %d faces\n", label, perMat[name])
		}
	}
	return nil
}

func cmdBounds(w io.Writer, args []string) error {
	paths, jobs, err := parseArgs("bounds", args)
	if err != nil {
		return err
	}
	results, err := parseAll(context.Background(), paths, jobs)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(w, "%s: error: %v\n", r.path, r.err)
			continue
		}
		lo, hi, ok := r.obj.Bounds()
		if !ok {
			fmt.Fprintf(w, "%s: empty\n", r.path)
			continue
		}
		fmt.Fprintf(w, "%s: min (%g, %g, %g) max (%g, %g, %g) size (%g, %g, %g)\n",
			r.path,
			lo[0], lo[1], lo[2],
			hi[0], hi[1], hi[2],
			hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2])
	}
	return nil
}

// cmdValidate checks that every file parses and fits the mesh upload limits.
func cmdValidate(w io.Writer, args []string) error {
	paths, jobs, err := parseArgs("validate", args)
	if err != nil {
		return err
	}
	results, err := parseAll(context.Background(), paths, jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.err == nil {
			b := mesh.FromParsed(r.obj)
			if len(b.Vertices) > mesh.MaxImplicitVertices {
				r.err = fmt.Errorf("%d vertices: %w", len(b.Vertices), mesh.ErrTooManyVertices)
			}
		}
		if r.err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", r.path, r.err)
			continue
		}
		fmt.Fprintf(w, "ok   %s\n", r.path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files invalid", failed, len(results))
	}
	return nil
}
