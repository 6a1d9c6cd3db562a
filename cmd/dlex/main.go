// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command dlex is a standalone driver for the lexer package: it reads a
// source file, runs it through a Lexer, and either dumps the resulting
// token stream or reports the diagnostics the lexer produced along the
// way. It exists to exercise the lexer package end to end, the way
// probec's "-emit tokens" mode exercises probe-lang/lang/lexer.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/dlexlang/dlex/internal/config"
	"github.com/dlexlang/dlex/internal/diag"
	"github.com/dlexlang/dlex/internal/idpool"
	"github.com/dlexlang/dlex/internal/xlog"
	"github.com/dlexlang/dlex/lexer"
	"github.com/dlexlang/dlex/token"
)

const dlexVersion = "0.1.0"

var configFileFlag = cli.StringFlag{
	Name:  "config",
	Usage: "TOML configuration file (see internal/config.Config)",
}

var commentTokensFlag = cli.BoolFlag{
	Name:  "comment-tokens",
	Usage: "emit COMMENT tokens instead of discarding/attaching them",
}

var strictDeprecationsFlag = cli.BoolFlag{
	Name:  "strict-deprecations",
	Usage: "treat deprecation diagnostics as errors",
}

func main() {
	app := cli.NewApp()
	app.Name = "dlex"
	app.Usage = "tokenize source files with the dlex lexer"
	app.Version = dlexVersion
	app.Flags = []cli.Flag{configFileFlag, commentTokensFlag, strictDeprecationsFlag}
	app.Commands = []cli.Command{
		tokensCommand,
		checkCommand,
		versionCommand,
	}
	app.Action = tokensAction

	if err := app.Run(os.Args); err != nil {
		xlog.Crit("dlex failed", "err", err)
		os.Exit(1)
	}
}

var tokensCommand = cli.Command{
	Name:      "tokens",
	Usage:     "dump the token stream for a source file",
	ArgsUsage: "<file.d>",
	Action:    tokensAction,
}

var checkCommand = cli.Command{
	Name:      "check",
	Usage:     "lex a source file and report diagnostics only",
	ArgsUsage: "<file.d>",
	Action:    checkAction,
}

var versionCommand = cli.Command{
	Name:   "version",
	Usage:  "print the dlex version and effective configuration",
	Action: versionAction,
}

func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.GlobalString(configFileFlag.Name); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("loading config: %w", err)
		}
	}
	if ctx.GlobalBool(commentTokensFlag.Name) {
		cfg.CommentTokens = true
	}
	if ctx.GlobalBool(strictDeprecationsFlag.Name) {
		cfg.TreatDeprecationsAsErrors = true
	}
	return cfg, nil
}

// newLexer reads filename and constructs a Lexer wired to pool and sink.
// It does no tagging of its own: the tokens command passes a diag.LogSink
// whose Tag is a fresh per-invocation uuid.
func newLexer(filename string, pool *idpool.Pool, sink diag.Sink, cfg config.Config) (*lexer.Lexer, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return lexer.New(filename, src, pool, sink, cfg), nil
}

func tokensAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return cli.NewExitError("usage: dlex tokens <file.d>", 1)
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	filename := ctx.Args().Get(0)
	pool := idpool.New()
	sink := diag.LogSink{Tag: uuid.NewString()}
	l, err := newLexer(filename, pool, sink, cfg)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"line", "col", "kind", "literal"})
	table.SetAutoWrapText(false)

	for tok := l.Token(); ; tok = l.Token() {
		table.Append([]string{
			fmt.Sprintf("%d", tok.Loc.Line),
			fmt.Sprintf("%d", tok.Loc.Column),
			tok.Kind.String(),
			tok.Literal(),
		})
		if tok.Kind == token.EOF {
			break
		}
		l.Next()
	}
	table.Render()

	if l.Errors() {
		return cli.NewExitError("lexing reported errors", 1)
	}
	return nil
}

func checkAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return cli.NewExitError("usage: dlex check <file.d>", 1)
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	filename := ctx.Args().Get(0)
	pool := idpool.New()
	var collector diag.Collector
	l, err := newLexer(filename, pool, &collector, cfg)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	for tok := l.Token(); tok.Kind != token.EOF; tok = l.Token() {
		l.Next()
	}

	for _, d := range collector.Deprecations {
		xlog.Warn(d.Msg, "loc", d.Loc.String())
	}
	for _, d := range collector.Errors {
		xlog.Error(d.Msg, "loc", d.Loc.String())
	}

	fmt.Printf("%s: %d error(s), %d deprecation(s), %d identifier(s) interned\n",
		filename, len(collector.Errors), len(collector.Deprecations), pool.Len())

	if l.Errors() {
		return cli.NewExitError("lexing reported errors", 1)
	}
	return nil
}

func versionAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Printf("dlex %s\n", dlexVersion)
	fmt.Printf("vendor:           %s\n", cfg.Vendor)
	fmt.Printf("compiler version: %s\n", cfg.CompilerVersion)
	fmt.Printf("doc comments:     %t\n", cfg.DocComments)
	fmt.Printf("comment tokens:   %t\n", cfg.CommentTokens)
	fmt.Printf("strict deprecations: %t\n", cfg.TreatDeprecationsAsErrors)
	return nil
}
