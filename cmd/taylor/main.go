package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	taylor "github.com/andrejajanja/taylor-compiler"
)

func main() {
	log.SetFlags(0)
	var (
		inname, check, rng string
		nl, echo, inx, v   bool
		deg, prec, places  int
		at                 float64
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees and postfix order")
	flag.IntVar(&deg, "deg", taylor.DefaultDegree, "degree of the Taylor polynomial")
	flag.Float64Var(&at, "at", 0, "expansion point")
	flag.BoolVar(&inx, "x", false, "print polynomials in powers of x instead of x minus the expansion point")
	flag.IntVar(&places, "places", -1, "round coefficients to this many decimal places (-1 for shortest)")
	flag.StringVar(&check, "check", "", "compare each polynomial against the function at this point")
	flag.StringVar(&rng, "range", "", `integrate each expression over "start end steps"`)
	flag.IntVar(&prec, "p", 64, "precision of point evaluation in bits")
	flag.BoolVar(&v, "v", false, "log debugging information")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}
	if v {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var checkx float64
	if check != "" {
		var err error
		checkx, err = strconv.ParseFloat(check, 64)
		if err != nil {
			log.Fatalf("parsing check point %q: %v", check, err)
		}
	}
	var lo, hi float64
	var steps uint64
	if rng != "" {
		var err error
		lo, hi, steps, err = parseRange(rng)
		if err != nil {
			log.Fatal(err)
		}
	}

	srcs, err := sources(inname, nl, flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	ev, err := taylor.NewEvaluator(taylor.Degree(deg), taylor.Around(at), taylor.WithCache(taylor.NewCache()))
	if err != nil {
		log.Fatal(err)
	}
	pt := taylor.NewContext(taylor.Prec(uint(prec)))
	for _, src := range srcs {
		e, err := ev.Parse(ctx, src)
		if err != nil {
			log.Fatal(err)
		}
		if echo {
			fmt.Printf("%v : %s\n", e, e.Postfix())
		}
		s, err := ev.Eval(ctx, e)
		if err != nil {
			log.Fatal(err)
		}
		out, vr := s, fmt.Sprintf("(x-%g)", at)
		if at < 0 {
			vr = fmt.Sprintf("(x+%g)", -at)
		}
		if at == 0 || inx {
			out, vr = taylor.Expand(s, at), "x"
		}
		fmt.Println(out.Render(vr, int32(places)))

		f := pt.Func(e)
		if check != "" {
			want, err := f(checkx)
			if err != nil {
				log.Fatal(err)
			}
			got := s.At(checkx - at)
			fmt.Printf("at %g: polynomial %g, function %g, error %g\n", checkx, got, want, got-want)
		}
		if rng != "" {
			r, err := taylor.Riemann(f, lo, hi, steps)
			if err != nil {
				log.Fatal(err)
			}
			p, err := taylor.Integrate(s, at, lo, hi)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("integral over [%g, %g]: polynomial %g, Riemann sum %g\n", lo, hi, p, r)
		}
	}
}

// sources collects the expressions to compile.
func sources(inname string, nl bool, args []string) ([]string, error) {
	var r []string
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		f = in
	case inname == "-", len(args) == 0:
		f = os.Stdin
	}
	if f != nil {
		b, err := io.ReadAll(bufio.NewReader(f))
		if err != nil {
			return nil, err
		}
		text := strings.TrimRight(string(b), "\r\n")
		if nl {
			for _, line := range strings.Split(text, "\n") {
				line = strings.TrimSpace(line)
				if line != "" {
					r = append(r, line)
				}
			}
		} else {
			r = append(r, text)
		}
	}
	return append(r, args...), nil
}

// parseRange parses "start end steps".
func parseRange(s string) (lo, hi float64, steps uint64, err error) {
	f := strings.Fields(s)
	if len(f) != 3 {
		return 0, 0, 0, fmt.Errorf("range must be \"start end steps\", not %q", s)
	}
	if lo, err = strconv.ParseFloat(f[0], 64); err != nil {
		return 0, 0, 0, fmt.Errorf("parsing range start %q: %w", f[0], err)
	}
	if hi, err = strconv.ParseFloat(f[1], 64); err != nil {
		return 0, 0, 0, fmt.Errorf("parsing range end %q: %w", f[1], err)
	}
	if steps, err = strconv.ParseUint(f[2], 10, 64); err != nil {
		return 0, 0, 0, fmt.Errorf("parsing number of steps %q: %w", f[2], err)
	}
	return lo, hi, steps, nil
}
