package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xyproto/env/v2"

	"github.com/zephyrtronium/arith"
)

type config struct {
	inname, verb string
	prec, block  int

	nl, repl              bool
	echo, tree, dump      bool
	lenient, right, debug bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&cfg.verb, "fmt", "%v", "result formatting string")
	flag.IntVar(&cfg.prec, "p", env.Int("ARITH_PREC", arith.DefaultPrec), "precision of float exponentiation in bits (0 for math.Pow)")
	flag.IntVar(&cfg.block, "block", env.Int("ARITH_BLOCK_SIZE", arith.DefaultBlockSize), "input read size in bytes")
	flag.BoolVar(&cfg.nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&cfg.repl, "repl", false, "read expressions interactively")
	flag.BoolVar(&cfg.echo, "echo", false, "print parsed expressions")
	flag.BoolVar(&cfg.tree, "tree", false, "print parse trees")
	flag.BoolVar(&cfg.dump, "dump", false, "dump parse tree structures")
	flag.BoolVar(&cfg.lenient, "lenient", env.Bool("ARITH_LENIENT"), "skip malformed number literals with a warning")
	flag.BoolVar(&cfg.right, "right", env.Bool("ARITH_RIGHT_ASSOC"), "group operators of equal precedence to the right")
	flag.BoolVar(&cfg.debug, "v", env.Bool("ARITH_DEBUG"), "log debug events")
	flag.Parse()

	level := zerolog.InfoLevel
	if cfg.debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	if cfg.prec < 0 {
		log.Fatal().Int("prec", cfg.prec).Msg("precision must not be negative")
	}

	c := newCalculator(cfg, os.Stdout, log.Logger)
	if cfg.repl {
		if err := c.prompt(os.Stdin); err != nil {
			log.Fatal().Err(err).Msg("reading input")
		}
		return
	}

	f, err := infile(cfg.inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal().Err(err).Msg("opening input")
	}
	var ins []io.Reader
	if f != nil {
		defer f.Close()
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}
	for _, in := range ins {
		if err := c.run(in); err != nil {
			log.Fatal().Err(err).Msg("")
		}
	}
}

// calculator evaluates expressions and prints the results.
type calculator struct {
	cfg  config
	opts []arith.ParseOption
	ctx  *arith.Context
	out  io.Writer
	log  zerolog.Logger
}

func newCalculator(cfg config, out io.Writer, logger zerolog.Logger) *calculator {
	opts := []arith.ParseOption{arith.BlockSize(cfg.block), arith.LogTo(logger)}
	if cfg.lenient {
		opts = append(opts, arith.Lenient())
	}
	if cfg.right {
		opts = append(opts, arith.RightAssociative())
	}
	return &calculator{
		cfg:  cfg,
		opts: opts,
		ctx:  arith.NewContext(arith.Prec(uint(cfg.prec)), arith.LogTo(logger)),
		out:  out,
		log:  logger,
	}
}

// run evaluates all of in as one expression, or each line of in with -n.
func (c *calculator) run(in io.Reader) error {
	if !c.cfg.nl {
		return c.calc(in)
	}
	s := bufio.NewScanner(in)
	for s.Scan() {
		if strings.TrimSpace(s.Text()) == "" {
			continue
		}
		if err := c.calc(strings.NewReader(s.Text())); err != nil {
			return err
		}
	}
	return s.Err()
}

// prompt runs an interactive loop. Errors in expressions are reported and
// the loop continues.
func (c *calculator) prompt(in io.Reader) error {
	s := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "$ ")
		if !s.Scan() {
			break
		}
		if strings.TrimSpace(s.Text()) == "" {
			continue
		}
		if err := c.calc(strings.NewReader(s.Text())); err != nil {
			fmt.Fprintln(c.out, err)
		}
	}
	fmt.Fprintln(c.out)
	return s.Err()
}

func (c *calculator) calc(src io.Reader) error {
	a, err := arith.Parse(src, c.opts...)
	var lerr *arith.LexLogError
	if errors.As(err, &lerr) {
		c.warn(lerr.Log)
		return lerr.Err
	}
	if err != nil {
		return err
	}
	c.warn(a.LexErrors())
	if c.cfg.dump {
		spew.Fdump(c.out, a)
	}
	if c.cfg.echo {
		fmt.Fprintf(c.out, "%v : ", a)
	}
	if c.cfg.tree {
		fmt.Fprintf(c.out, "%s : ", a.Tree())
	}
	r, err := c.ctx.Eval(a)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, c.cfg.verb+"\n", r)
	return nil
}

func (c *calculator) warn(errs []error) {
	for _, w := range errs {
		c.log.Warn().Err(w).Msg("skipped malformed literal")
	}
}

func infile(inname string, std bool) (*os.File, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}
