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

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates name under dir holding content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns its output streams.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.yaml", "a: 1\n")

	out, _, err := execute(t, "", doc)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "[root.go]"), out)
	require.Contains(t, out, `[0]: ["doc.yaml"] = (1){`)
	require.Contains(t, out, `["a"] = [1]`)
	require.True(t, strings.HasSuffix(out, "}( doc.yaml )\n"), out)
}

func TestRenderMultipleDocuments(t *testing.T) {
	dir := t.TempDir()
	docs := writeFile(t, dir, "docs.yaml", "a: 1\n---\nb: 2\n")
	list := writeFile(t, dir, "list.json", "[1, 2]\n")

	out, _, err := execute(t, "", "--array-limit", "1", docs, list)
	require.NoError(t, err)
	require.Contains(t, out, `[0]: ["docs.yaml"] = (1){`)
	require.Contains(t, out, `[1]: ["docs.yaml"] = (1){`)
	require.Contains(t, out, `["b"] = [2]`)
	require.Contains(t, out, `[2]: ["list.json"] = (int: 2)[ [1], [2] ]( list.json )`)
}

func TestRenderStdin(t *testing.T) {
	out, _, err := execute(t, "x: true\n", "-")
	require.NoError(t, err)
	require.Contains(t, out, `[0]: ["-"] = (1){`)
	require.Contains(t, out, `["x"] = [true]`)
}

func TestFlags(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.yaml", "a: 1\n")

	out, _, err := execute(t, "", "--no-origin", doc)
	require.NoError(t, err)
	require.NotContains(t, out, "( doc.yaml )")

	out, _, err = execute(t, "", "--types", doc)
	require.NoError(t, err)
	require.Contains(t, out, `["doc.yaml"] = <map[string]interface {}>(1){`)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.yaml", "items: [1, 2]\n")
	config := writeFile(t, dir, "inspect.yaml", "newlineLimitArray: 1\noriginProperty: false\n")

	out, errOut, err := execute(t, "", "--config", config, "--verbose", doc)
	require.NoError(t, err)
	require.Contains(t, out, `["items"] = (int: 2)[ [1], [2] ]`)
	require.NotContains(t, out, "( doc.yaml )")
	require.Contains(t, errOut, "loaded options from")
	require.Contains(t, errOut, "1 document(s)")

	// Flags win over the file.
	out, _, err = execute(t, "", "--config", config, "--array-limit", "40", doc)
	require.NoError(t, err)
	require.Contains(t, out, `["items"] = (int: 2)[`+"\n")
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "")
	require.Error(t, err)

	_, _, err = execute(t, "", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "opening input")

	bad := writeFile(t, dir, "bad.yaml", "a: [1\n")
	_, _, err = execute(t, "", bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decoding")

	config := writeFile(t, dir, "inspect.yaml", "newlineLimitArray: many\n")
	doc := writeFile(t, dir, "doc.yaml", "a: 1\n")
	_, _, err = execute(t, "", "--config", config, doc)
	require.Error(t, err)
	require.Contains(t, err.Error(), "newlineLimitArray")
}

func TestEmptyInput(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.yaml", "")

	out, errOut, err := execute(t, "", empty)
	require.NoError(t, err)
	require.Empty(t, out)
	require.Contains(t, errOut, "no documents found")
}
