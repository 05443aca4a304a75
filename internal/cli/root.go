/*
 * Copyright (c) 2013-2016 Dave Collins <dave@davec.name>
 * Copyright (c) 2021 Anner van Hardenbroek
 *
 * Permission to use, copy, modify, and distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package cli implements the inspect command.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/kataras/golog"
	"github.com/spewerspew/inspect"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// rootOptions holds the flags of the root command.
type rootOptions struct {
	config     string
	types      bool
	arrayLimit int
	groupLimit int
	noOrigin   bool
	verbose    bool
}

// NewRootCommand returns the inspect command.
func NewRootCommand() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "inspect [flags] FILE...",
		Short: "Render YAML and JSON documents as object graphs",
		Long: `Render every document of the given YAML or JSON files the way
inspect.Log renders values. Use - to read standard input.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.config, "config", "", "YAML file with rendering options")
	f.BoolVar(&o.types, "types", false, "annotate values with their type")
	f.IntVar(&o.arrayLimit, "array-limit", inspect.Default.NewlineLimitArray, "arrays with this many items render on one line")
	f.IntVar(&o.groupLimit, "group-limit", inspect.Default.NewlineLimitGroup, "key groups with this many keys render on one line")
	f.BoolVar(&o.noOrigin, "no-origin", false, "omit the route after multi-line blocks")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log diagnostics to standard error")
	return cmd
}

// Execute runs the root command against the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

func (o *rootOptions) logger(w io.Writer) *golog.Logger {
	l := golog.New()
	l.SetOutput(w)
	if o.verbose {
		l.SetLevel("debug")
	} else {
		l.SetLevel("warn")
	}
	return l
}

// optionTree returns the option tree given by the flags that were set.
func (o *rootOptions) optionTree(cmd *cobra.Command) map[string]any {
	tree := map[string]any{}
	f := cmd.Flags()
	if f.Changed("array-limit") {
		tree["newlineLimitArray"] = o.arrayLimit
	}
	if f.Changed("group-limit") {
		tree["newlineLimitGroup"] = o.groupLimit
	}
	if o.noOrigin {
		tree["originProperty"] = false
	}
	if o.types {
		tree["type"] = map[string]any{
			"format": map[string]any{"ignore": false},
		}
	}
	return tree
}

// resolveOptions merges the flags over the options file.
func (o *rootOptions) resolveOptions(cmd *cobra.Command, log *golog.Logger) (*inspect.Options, error) {
	var fileTree map[string]any
	if o.config != "" {
		f, err := os.Open(o.config)
		if err != nil {
			return nil, errors.Wrap(err, "opening options file")
		}
		defer f.Close()
		if fileTree, err = inspect.ReadOptionTree(f); err != nil {
			return nil, errors.Wrapf(err, "reading %s", o.config)
		}
		log.Debugf("loaded options from %s", o.config)
	}
	merged, err := inspect.MergeTrees(o.optionTree(cmd), fileTree)
	if err != nil {
		return nil, err
	}
	return inspect.Normalize(merged)
}

// readDocuments decodes every YAML document of path.
func readDocuments(path string, stdin io.Reader) ([]any, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "opening input")
		}
		defer f.Close()
		r = f
	}
	var docs []any
	dec := yaml.NewDecoder(r)
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s", path)
		}
		docs = append(docs, doc)
	}
}

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	log := o.logger(cmd.ErrOrStderr())
	opts, err := o.resolveOptions(cmd, log)
	if err != nil {
		return err
	}

	var values []any
	for _, path := range args {
		docs, err := readDocuments(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		log.Debugf("%s: %d document(s)", path, len(docs))
		name := filepath.Base(path)
		for _, doc := range docs {
			values = append(values, map[string]any{name: doc})
		}
	}
	if len(values) == 0 {
		log.Warn("no documents found")
		return nil
	}
	return inspect.LogCustom(opts, inspect.WriterSink(cmd.OutOrStdout()), values...)
}
