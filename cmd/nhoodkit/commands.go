package main

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/katalvlaran/milo/codec"
	"github.com/katalvlaran/milo/nhoods"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	return fs
}

func parse(fs *flag.FlagSet, args []string, required map[string]*string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", fs.Name(), err)
	}
	for _, name := range sortedKeys(required) {
		if *required[name] == "" {
			return fmt.Errorf("%s: -%s is required", fs.Name(), name)
		}
	}

	return nil
}

func runAdjacency(e *env, args []string) error {
	fs := newFlagSet("adjacency")
	in := fs.String("nhoods", "", "indicator matrix file (cells × neighbourhoods)")
	out := fs.String("out", "", "output file for the adjacency matrix")
	overlap := fs.Int("overlap", e.cfg.Overlap, "minimum shared cells")
	if err := parse(fs, args, map[string]*string{"nhoods": in, "out": out}); err != nil {
		return err
	}

	x, err := codec.LoadFile(*in)
	if err != nil {
		return err
	}
	adj, err := nhoods.Adjacency(x, *overlap, e.cfg.NhoodOptions(e.log)...)
	if err != nil {
		return err
	}
	if err = codec.SaveFile(*out, adj, e.cfg.CodecOptions()...); err != nil {
		return err
	}
	e.log.Info("adjacency written", "nhoods", adj.Rows(), "overlap", *overlap, "out", *out)

	return nil
}

func runExpression(e *env, args []string) error {
	fs := newFlagSet("expression")
	in := fs.String("nhoods", "", "indicator matrix file (cells × neighbourhoods)")
	exprPath := fs.String("expr", "", "expression matrix file (features × cells)")
	out := fs.String("out", "", "output file for the mean expression matrix")
	features := fs.String("features", strings.Join(e.cfg.Features, ","), "comma-separated feature names")
	empty := fs.String("empty", e.cfg.EmptyPolicy, "empty neighbourhood policy: error, nan")
	if err := parse(fs, args, map[string]*string{"nhoods": in, "expr": exprPath, "out": out}); err != nil {
		return err
	}
	e.cfg.EmptyPolicy = *empty
	e.cfg.Features = nil
	if *features != "" {
		e.cfg.Features = strings.Split(*features, ",")
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	x, err := codec.LoadFile(*in)
	if err != nil {
		return err
	}
	exprs, err := codec.LoadFile(*exprPath)
	if err != nil {
		return err
	}
	exp, err := nhoods.CalcExpressionMatrix(x, exprs, e.cfg.NhoodOptions(e.log)...)
	if err != nil {
		return err
	}
	res := exp.NhoodExpression()
	if err = codec.SaveFile(*out, res, e.cfg.CodecOptions()...); err != nil {
		return err
	}
	e.log.Info("expression written", "features", res.Rows(), "nhoods", res.Cols(), "out", *out)

	return nil
}

func runSizes(e *env, args []string) error {
	fs := newFlagSet("sizes")
	in := fs.String("nhoods", "", "indicator matrix file (cells × neighbourhoods)")
	if err := parse(fs, args, map[string]*string{"nhoods": in}); err != nil {
		return err
	}
	x, err := codec.LoadFile(*in)
	if err != nil {
		return err
	}
	sizes, err := nhoods.Sizes(x)
	if err != nil {
		return err
	}
	names := x.ColNames()
	for j, s := range sizes {
		label := fmt.Sprint(j)
		if names != nil {
			label = names[j]
		}
		if _, err = fmt.Fprintf(e.stdout, "%s\t%d\n", label, s); err != nil {
			return err
		}
	}

	return nil
}

func sortedKeys(m map[string]*string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	return sortedStrings(out)
}

func sortedStrings(s []string) []string {
	sort.Strings(s)

	return s
}
