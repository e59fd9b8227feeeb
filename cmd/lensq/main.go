// Command lensq reads a YAML or JSON document and views or updates it
// through a lenspath path.
//
//	lensq view 'friends[..].location.city' users.yaml
//	lensq -json set 'friends[0].location' '{city: Tokyo}' < users.json
//	lensq tokens 'usersById{..}.firstname'
//	lensq format "friends.0['location']"
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/KimNorgaard/go-lenspath"
	"github.com/KimNorgaard/go-lenspath/internal/lexer"
	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

var errUsage = errors.New("usage: lensq [-json] view PATH [FILE] | set PATH VALUE [FILE] | tokens PATH | format PATH")

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logger.Error("lensq failed", "err", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("lensq", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	asJSON := fs.Bool("json", false, "print the result as JSON instead of YAML")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	rest := fs.Args()
	if len(rest) < 2 {
		return errUsage
	}
	cmd, path, rest := rest[0], rest[1], rest[2:]

	switch cmd {
	case "tokens":
		return printTokens(stdout, path)
	case "format":
		canonical, err := lenspath.Format(path)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, canonical)
		return err
	case "view":
		doc, err := readDocument(stdin, rest)
		if err != nil {
			return err
		}
		v, err := lenspath.View(path, doc)
		if err != nil {
			return err
		}
		return writeDocument(stdout, v, *asJSON)
	case "set":
		if len(rest) == 0 {
			return errUsage
		}
		var value any
		if err := yaml.Unmarshal([]byte(rest[0]), &value); err != nil {
			return fmt.Errorf("lensq: invalid value: %w", err)
		}
		doc, err := readDocument(stdin, rest[1:])
		if err != nil {
			return err
		}
		out, err := lenspath.Set(path, value, doc)
		if err != nil {
			return err
		}
		return writeDocument(stdout, out, *asJSON)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

// readDocument decodes the file named in args, or stdin when args is empty.
// An empty input decodes to nil.
func readDocument(stdin io.Reader, args []string) (any, error) {
	r := stdin
	switch len(args) {
	case 0:
	case 1:
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	default:
		return nil, errUsage
	}

	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("lensq: decoding document: %w", err)
	}
	return doc, nil
}

func writeDocument(w io.Writer, v any, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func printTokens(w io.Writer, path string) error {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	cfg.Fdump(w, lexer.Tokenize(path))
	_, err := lenspath.Compile(path, lenspath.NoCache())
	return err
}
