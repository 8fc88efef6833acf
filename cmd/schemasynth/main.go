package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	schemasynth "github.com/reoring/schemasynth"
	"github.com/reoring/schemasynth/i18n"
	"github.com/reoring/schemasynth/infer"
	"github.com/reoring/schemasynth/jsonschema"
	"github.com/reoring/schemasynth/locate"
	"github.com/reoring/schemasynth/rules"
	"github.com/reoring/schemasynth/tree"
	"github.com/reoring/schemasynth/validator"
)

const langEnv = "SCHEMASYNTH_LANG"

// errFindings signals exit status 1 without an error message: the command
// ran and reported problems in its output.
var errFindings = errors.New("findings reported")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	defer c.sync()
	var err error
	switch args[0] {
	case "infer":
		err = c.inferCmd(args[1:])
	case "check":
		err = c.checkCmd(args[1:])
	case "validate":
		err = c.validateCmd(args[1:])
	case "locate":
		err = c.locateCmd(args[1:])
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFindings):
		return 1
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	}
	fmt.Fprintf(stderr, "schemasynth %s: %v\n", args[0], err)
	return 1
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `schemasynth CLI

Usage:
  schemasynth infer    [-yaml] [-o out] [-min-sample N] [-enum-max N] [-no-detect] [file|-]
  schemasynth check    [-json|-yaml] [-strict-types] [-lang L] schema.(json|yaml)
  schemasynth validate -schema schema.(json|yaml) [-json|-yaml] [-lang L] [file|-]
  schemasynth locate   [file|-] pointer...

Notes:
  - "-" or no file reads standard input.
  - -lang defaults to $SCHEMASYNTH_LANG, then English.
  - check and validate exit with status 1 when they report problems.`)
}

var errUsage = errors.New("usage")

type cli struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	log            *zap.Logger
}

// common registers the flags shared by every subcommand.
type common struct {
	verbose bool
	lang    string
}

func (c *cli) flags(name string, cm *common) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.BoolVar(&cm.verbose, "v", false, "enable debug logs")
	fs.StringVar(&cm.lang, "lang", os.Getenv(langEnv), "message language (en, ja)")
	return fs
}

// setup finishes flag handling: it installs the logger and the translator.
func (c *cli) setup(cm common) i18n.Translator {
	c.log = newLogger(c.stderr, cm.verbose)
	if cm.lang == "" {
		return i18n.English
	}
	tr, ok := i18n.Lookup(cm.lang)
	if !ok {
		c.log.Warn("unknown language, using English", zap.String("lang", cm.lang))
	}
	return tr
}

// newLogger writes human-readable records to w; verbose enables Debug.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		level.SetLevel(zap.DebugLevel)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level))
}

func (c *cli) sync() {
	if c.log != nil {
		_ = c.log.Sync()
	}
}

func (c *cli) inferCmd(args []string) error {
	var cm common
	fs := c.flags("infer", &cm)
	asYAML := fs.Bool("yaml", false, "write YAML instead of JSON")
	out := fs.String("o", "", "output file (default stdout)")
	opts := infer.DefaultOptions()
	fs.IntVar(&opts.MinSample, "min-sample", opts.MinSample, "minimum object-array length for enum and format detection")
	fs.IntVar(&opts.EnumMaxValues, "enum-max", opts.EnumMaxValues, "maximum distinct values for an enum")
	noDetect := fs.Bool("no-detect", false, "disable semantic format detection (coordinates, timestamps)")
	if err := fs.Parse(args); err != nil {
		return flagErr(err)
	}
	tr := c.setup(cm)
	if *noDetect {
		opts.Detectors = []infer.Detector{}
	}

	name, data, err := c.readInput(fs.Arg(0))
	if err != nil {
		return err
	}
	started := time.Now()
	v, err := schemasynth.ParseJSON(data)
	if err != nil {
		pos := locate.FromParseError(err, string(data))
		return fmt.Errorf("%s:%d:%d: %s: %w", name, pos.Line, pos.Column, tr.Message(i18n.KeyInferrerInvalidJSON, nil), err)
	}
	doc, err := infer.CreateSchemaFromJSON(v, opts)
	if err != nil {
		return err
	}
	c.log.Debug("inferred schema", zap.String("file", name), zap.Int("properties", len(doc.Properties)), zap.Duration("elapsed", time.Since(started)))

	var encoded []byte
	if *asYAML {
		encoded, err = jsonschema.MarshalYAML(doc)
	} else {
		encoded, err = jsonschema.MarshalIndent(doc, "", "  ")
		encoded = append(encoded, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	if *out == "" {
		_, err = c.stdout.Write(encoded)
		return err
	}
	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	c.log.Info("wrote schema", zap.String("file", *out))
	return nil
}

func (c *cli) checkCmd(args []string) error {
	var cm common
	fs := c.flags("check", &cm)
	format := outputFlags(fs)
	strict := fs.Bool("strict-types", false, "report type names outside the Draft-07 vocabulary")
	if err := fs.Parse(args); err != nil {
		return flagErr(err)
	}
	tr := c.setup(cm)
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	s, err := c.loadSchema(fs.Arg(0), tr)
	if err != nil {
		return err
	}
	root, err := tree.Build(s, tree.Options{Rules: rules.Options{Translator: tr, StrictTypes: *strict}})
	if err != nil {
		return err
	}
	c.log.Debug("built validation tree", zap.String("file", fs.Arg(0)), zap.Int("errors", root.CumulativeErrors))

	if format.structured() {
		if err := format.write(c.stdout, root); err != nil {
			return err
		}
	} else {
		for _, it := range root.Issues() {
			fmt.Fprintf(c.stdout, "%s\t%s\t%s\n", it.Path, it.Rule, it.Message)
		}
		if root.CumulativeErrors == 0 {
			fmt.Fprintln(c.stdout, tr.Message(i18n.KeyValid, nil))
		}
	}
	if root.CumulativeErrors > 0 {
		c.log.Info(tr.Message(i18n.KeyErrorCount, map[string]string{"count": fmt.Sprint(root.CumulativeErrors)}))
		return errFindings
	}
	return nil
}

func (c *cli) validateCmd(args []string) error {
	var cm common
	fs := c.flags("validate", &cm)
	format := outputFlags(fs)
	schemaPath := fs.String("schema", "", "schema file (JSON or YAML)")
	maxDepth := fs.Int("max-depth", schemasynth.DefaultMaxDepth, "maximum nesting depth of the instance")
	if err := fs.Parse(args); err != nil {
		return flagErr(err)
	}
	tr := c.setup(cm)
	if *schemaPath == "" {
		fs.Usage()
		return errUsage
	}

	s, err := c.loadSchema(*schemaPath, tr)
	if err != nil {
		return err
	}
	val, err := validator.Compile(s)
	if err != nil {
		return err
	}
	name, data, err := c.readInput(fs.Arg(0))
	if err != nil {
		return err
	}
	// A syntax error here is reported by ValidateText below.
	dups, err := schemasynth.DetectJSONDuplicateKeysBytes(data, schemasynth.Strictness{OnDuplicateKey: schemasynth.Warn}, 20)
	if err != nil {
		c.log.Debug("duplicate key scan stopped", zap.String("file", name), zap.Error(err))
	}
	for _, d := range dups {
		if d.Code == schemasynth.CodeDuplicateKey {
			c.log.Warn("duplicate key; reported positions use the last occurrence", zap.String("file", name), zap.String("path", d.Path))
		}
	}

	res := val.ValidateText(string(data), validator.Options{
		Translator: tr,
		Parse:      schemasynth.ParseOpt{MaxDepth: *maxDepth},
	})
	if format.structured() {
		if err := format.write(c.stdout, res); err != nil {
			return err
		}
	} else {
		for _, e := range res.Errors {
			path := e.Path
			if path == "/" {
				path = tr.Message(i18n.KeyPathRoot, nil)
			}
			if where := e.Describe(tr); where != "" {
				fmt.Fprintf(c.stdout, "%s: %s: %s (%s)\n", name, path, e.Message, where)
			} else {
				fmt.Fprintf(c.stdout, "%s: %s: %s\n", name, path, e.Message)
			}
		}
		if res.Valid {
			fmt.Fprintln(c.stdout, tr.Message(i18n.KeyValid, nil))
		}
	}
	if !res.Valid {
		c.log.Debug("validation failed", zap.String("file", name), zap.Int("errors", len(res.Errors)), zap.Bool("parseFailed", res.ParseFailed))
		return errFindings
	}
	return nil
}

func (c *cli) locateCmd(args []string) error {
	var cm common
	fs := c.flags("locate", &cm)
	if err := fs.Parse(args); err != nil {
		return flagErr(err)
	}
	c.setup(cm)
	if fs.NArg() < 2 {
		fs.Usage()
		return errUsage
	}
	name, data, err := c.readInput(fs.Arg(0))
	if err != nil {
		return err
	}
	ix := locate.NewIndex(string(data))
	if !ix.Complete() {
		c.log.Warn("input is not a single JSON value; positions are approximate", zap.String("file", name))
	}
	missing := false
	for _, ptr := range fs.Args()[1:] {
		if pos, ok := ix.Resolve(ptr); ok {
			fmt.Fprintf(c.stdout, "%s\t%d:%d\n", ptr, pos.Line, pos.Column)
			continue
		}
		fmt.Fprintf(c.stdout, "%s\t-\n", ptr)
		missing = true
	}
	if missing {
		return errFindings
	}
	return nil
}

// readInput reads the named file, or stdin for "" and "-".
func (c *cli) readInput(path string) (string, []byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return "<stdin>", nil, fmt.Errorf("reading stdin: %w", err)
		}
		return "<stdin>", data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return path, nil, fmt.Errorf("reading input: %w", err)
	}
	return path, data, nil
}

// loadSchema reads a schema document, choosing YAML by file extension.
func (c *cli) loadSchema(path string, tr i18n.Translator) (jsonschema.Schema, error) {
	name, data, err := c.readInput(path)
	if err != nil {
		return nil, err
	}
	var s jsonschema.Schema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		s, err = jsonschema.ParseYAML(data)
	default:
		s, err = jsonschema.Parse(data)
	}
	if err != nil {
		if iss, ok := schemasynth.AsIssues(err); ok {
			for _, it := range iss {
				c.log.Error(tr.Message(it.Code, nil), zap.String("file", name), zap.String("path", it.Path), zap.String("code", it.Code), zap.String("msg", it.Message))
			}
		}
		return nil, fmt.Errorf("loading schema %s: %w", name, err)
	}
	return s, nil
}

type outputFormat struct {
	json, yaml *bool
}

func outputFlags(fs *flag.FlagSet) outputFormat {
	return outputFormat{
		json: fs.Bool("json", false, "write the result as JSON"),
		yaml: fs.Bool("yaml", false, "write the result as YAML"),
	}
}

func (f outputFormat) structured() bool { return *f.json || *f.yaml }

func (f outputFormat) write(w io.Writer, v any) error {
	var (
		b   []byte
		err error
	)
	if *f.yaml {
		b, err = yaml.Marshal(v)
	} else {
		b, err = json.MarshalIndent(v, "", "  ")
		b = append(b, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func flagErr(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return errUsage
}
