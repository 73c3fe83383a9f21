package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calculator"
)

func main() {
	var (
		inname, cfgname, level string
		echo                   bool
		scale, depth           int
	)
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.StringVar(&level, "log-level", "", "log level (trace, debug, info, warn, error)")
	flag.IntVar(&scale, "scale", -1, "maximum fractional digits of inexact results (default from config, or 10)")
	flag.IntVar(&depth, "max-depth", -1, "maximum nesting of parentheses and calls (default from config, or 200)")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.Parse()

	boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg, err := loadConfig(cfgname)
	if err != nil {
		boot.Fatal().Err(err).Msg("loading config")
	}
	if scale >= 0 {
		cfg.Scale = int32(scale)
	}
	if depth >= 0 {
		cfg.MaxDepth = depth
	}
	if level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.validate(); err != nil {
		boot.Fatal().Err(err).Msg("invalid options")
	}
	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("service", "calc").Logger().
		Level(lvl)

	calc := calculator.New(cfg.options(logger)...)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	run := func(src string) {
		if echo {
			if e, err := calc.ParseString(src); err == nil {
				fmt.Fprintf(out, "%v : ", e)
			}
		}
		fmt.Fprintln(out, calc.Calculate(src))
	}

	for _, arg := range flag.Args() {
		run(arg)
	}
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		logger.Fatal().Err(err).Msg("opening input")
	}
	if f == nil {
		return
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		run(sc.Text())
	}
	if err := sc.Err(); err != nil {
		out.Flush()
		logger.Fatal().Err(err).Msg("reading input")
	}
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}
