package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	j "github.com/goccy/go-json"

	arrskema "github.com/reoring/arrskema"
	g "github.com/reoring/arrskema/dsl"
	"github.com/reoring/arrskema/i18n"
	"github.com/reoring/arrskema/middleware"
	fjsrc "github.com/reoring/arrskema/source/fastjson"
	yamlsrc "github.com/reoring/arrskema/source/yaml"
)

type checkConfig struct {
	items        string
	ordered      string
	min          int
	max          int
	length       int
	unique       bool
	sparse       bool
	single       bool
	driver       string
	strict       bool
	abortEarly   bool
	stripUnknown bool
	asJSON       bool
	lang         string
	file         string
	set          map[string]bool // flags given on the command line
}

func checkCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfg checkConfig
	fs.StringVar(&cfg.items, "items", "", "comma-separated element types")
	fs.StringVar(&cfg.ordered, "ordered", "", "comma-separated positional element types")
	fs.IntVar(&cfg.min, "min", 0, "minimum number of elements")
	fs.IntVar(&cfg.max, "max", 0, "maximum number of elements")
	fs.IntVar(&cfg.length, "length", 0, "exact number of elements")
	fs.BoolVar(&cfg.unique, "unique", false, "reject duplicate elements")
	fs.BoolVar(&cfg.sparse, "sparse", false, "allow holes")
	fs.BoolVar(&cfg.single, "single", false, "accept a lone value as a one-element sequence")
	fs.StringVar(&cfg.driver, "driver", "go-json", "literal driver: go-json, yaml or fastjson")
	fs.BoolVar(&cfg.strict, "strict", false, "disable conversion")
	fs.BoolVar(&cfg.abortEarly, "abort-early", false, "stop at the first issue")
	fs.BoolVar(&cfg.stripUnknown, "strip-unknown", false, "drop elements no item accepts")
	fs.BoolVar(&cfg.asJSON, "json", false, "print issues as JSON")
	fs.StringVar(&cfg.lang, "lang", "en", "message language: en or ja")
	fs.StringVar(&cfg.file, "f", "", "input file (default stdin)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })

	schema, err := buildSchema(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "schema: %v\n", err)
		return 2
	}
	if err := selectDriver(cfg.driver); err != nil {
		fmt.Fprintf(stderr, "driver: %v\n", err)
		return 2
	}
	defer arrskema.UseDefaultLiteralDriver()
	i18n.SetLanguage(cfg.lang)
	defer i18n.SetLanguage("en")

	in := stdin
	if cfg.file != "" {
		f, err := os.Open(cfg.file)
		if err != nil {
			fmt.Fprintf(stderr, "input: %v\n", err)
			return 2
		}
		defer f.Close()
		in = f
	}
	raw, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(stderr, "input: %v\n", err)
		return 2
	}
	doc, err := arrskema.CurrentLiteralDriver().ParseLiteral(string(raw))
	if err != nil {
		fmt.Fprintf(stderr, "input: %v\n", err)
		return 2
	}

	opt := arrskema.Options{Convert: !cfg.strict, AbortEarly: cfg.abortEarly, StripUnknown: cfg.stripUnknown}
	res := schema.Validate(context.Background(), doc, arrskema.Root(doc), opt)
	if res.Errors != nil {
		printIssues(stdout, res.Errors, cfg.asJSON)
		return 1
	}
	out, err := j.Marshal(res.Value)
	if err != nil {
		fmt.Fprintf(stderr, "output: %v\n", err)
		return 2
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

func printIssues(w io.Writer, iss arrskema.Issues, asJSON bool) {
	if asJSON {
		_ = j.NewEncoder(w).Encode(middleware.ErrorPayload(iss))
		return
	}
	for _, it := range iss {
		path := it.Path
		if path == "" {
			path = "(root)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", path, it.Code, it.Message)
	}
}

func buildSchema(cfg checkConfig) (*g.ArraySchema, error) {
	a := g.Array()
	if cfg.items != "" {
		items, err := parseElements(cfg.items)
		if err != nil {
			return nil, err
		}
		a = a.Items(items...)
	}
	if cfg.ordered != "" {
		ordered, err := parseElements(cfg.ordered)
		if err != nil {
			return nil, err
		}
		a = a.Ordered(ordered...)
	}
	if cfg.set["min"] {
		a = a.Min(cfg.min)
	}
	if cfg.set["max"] {
		a = a.Max(cfg.max)
	}
	if cfg.set["length"] {
		a = a.Length(cfg.length)
	}
	if cfg.unique {
		a = a.Unique()
	}
	return a.Sparse(cfg.sparse).Single(cfg.single).Build()
}

// parseElements reads "[!|-]type[@label]" tokens.
func parseElements(csv string) ([]arrskema.Schema, error) {
	var out []arrskema.Schema
	for _, tok := range splitCSV(csv) {
		name, label, _ := strings.Cut(tok, "@")
		presence := arrskema.PresenceOptional
		switch {
		case strings.HasPrefix(name, "!"):
			presence, name = arrskema.PresenceRequired, name[1:]
		case strings.HasPrefix(name, "-"):
			presence, name = arrskema.PresenceForbidden, name[1:]
		}
		var s arrskema.Schema
		switch name {
		case "any":
			s = g.Any()
		case "number":
			s = g.Number()
		case "string":
			s = g.String()
		case "bool":
			s = g.Bool()
		default:
			return nil, fmt.Errorf("unknown element type %q", name)
		}
		switch presence {
		case arrskema.PresenceRequired:
			s = g.Required(s)
		case arrskema.PresenceForbidden:
			s = g.Forbidden(s)
		}
		if label != "" {
			s = g.Label(s, label)
		}
		out = append(out, s)
	}
	return out, nil
}

func selectDriver(name string) error {
	switch name {
	case "", "go-json":
		arrskema.UseDefaultLiteralDriver()
	case "yaml":
		arrskema.SetLiteralDriver(yamlsrc.Driver())
	case "fastjson":
		arrskema.SetLiteralDriver(fjsrc.Driver())
	default:
		return fmt.Errorf("unknown driver %q", name)
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
