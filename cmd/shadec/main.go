// Command shadec inspects, compiles and renders the embedded shader
// programs.
//
// Usage:
//
//	shadec [-v] list
//	shadec [-v] inspect -program NAME
//	shadec [-v] compile -program NAME -o out.spv
//	shadec [-v] render -program NAME [-time T] [-size N] [-mode standard|shadow] [-scale K] [-o out.png]
//	shadec [-v] gpu [-backend noop|vulkan] [-shadow]
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/terramine/shading"
	"github.com/terramine/shading/internal/gpu"
	"github.com/terramine/shading/shaders"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	if *verbose {
		l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		shading.SetLogger(l)
		gpu.SetLogger(l)
	}

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	var err error
	switch cmd {
	case "list":
		err = runList()
	case "inspect":
		err = runInspect(args)
	case "compile":
		err = runCompile(args)
	case "render":
		err = runRender(args)
	case "gpu":
		err = runGPU(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: shadec [-v] list|inspect|compile|render|gpu [flags]\n")
	flag.PrintDefaults()
}

func runList() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFILE\tLANGUAGE\tSTAGES")
	for _, p := range shaders.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.File, p.Language, p.Stages)
	}
	return w.Flush()
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	name := fs.String("program", "", "program name")
	_ = fs.Parse(args)

	p, err := shaders.Lookup(*name)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s, %s, %s)\n", p.Name, p.File, p.Language, p.Stages)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, a := range p.Inputs {
		fmt.Fprintf(w, "  in\t%s\tlocation %d\t%v\n", a.Name, a.Location, a.Format)
	}
	for _, r := range p.Resources {
		if r.Group == shaders.NoGroup {
			fmt.Fprintf(w, "  %s\t%s\tby name\t\n", r.Kind, r.Name)
			continue
		}
		fmt.Fprintf(w, "  %s\t%s\tgroup %d binding %d\t\n", r.Kind, r.Name, r.Group, r.Binding)
	}
	for _, o := range p.Outputs {
		fmt.Fprintf(w, "  out\t%s\tlocation %d\t%v\n", o.Name, o.Location, o.Format)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if err := p.Validate(); err != nil {
		return err
	}
	fmt.Println("contract matches source")

	if p.Language == shaders.WGSL {
		r, err := p.Reflect()
		if err != nil {
			return err
		}
		fmt.Printf("naga: %d entry points\n", len(r.EntryPoints))
		for _, g := range r.Globals {
			fmt.Printf("  %s %s group %d binding %d (%s)\n", g.Kind, g.Name, g.Group, g.Binding, g.Space)
		}
	}
	return nil
}

func runCompile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	name := fs.String("program", "", "WGSL program name")
	output := fs.String("o", "", "output .spv file (default NAME.spv)")
	_ = fs.Parse(args)

	p, err := shaders.Lookup(*name)
	if err != nil {
		return err
	}
	words, err := p.CompileSPIRV()
	if err != nil {
		return err
	}

	out := *output
	if out == "" {
		out = p.Name + ".spv"
	}
	if err := os.WriteFile(out, shaders.SPIRVBytes(words), 0o644); err != nil {
		return err
	}
	log.Printf("%s: %d SPIR-V words written to %s", p.Name, len(words), out)
	return nil
}
