package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	checkedit "github.com/goliatone/go-checkedit"
	"github.com/goliatone/go-checkedit/internal/config"
	"github.com/goliatone/go-checkedit/internal/logging"
	"github.com/goliatone/go-checkedit/pkg/model"
	"github.com/goliatone/go-checkedit/pkg/storage"
	"github.com/goliatone/go-checkedit/pkg/templates"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{name: "list", summary: "list built-in, directory and stored templates", run: runList},
	{name: "render", summary: "fill a template and export it as png, jpeg or pdf", run: runRender},
	{name: "batch", summary: "print one check per spreadsheet row into a PDF", run: runBatch},
	{name: "preview", summary: "write an SVG thumbnail of a template", run: runPreview},
	{name: "save", summary: "store a template or editor state file", run: runSave},
	{name: "delete", summary: "remove a stored template", run: runDelete},
	{name: "fill", summary: "fill a template interactively and export it", run: runFill},
	{name: "sample", summary: "write a sample batch spreadsheet", run: runSample},
	{name: "serve", summary: "serve the template API over HTTP", run: runServe},
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]

	var cmd *command
	for i := range commands {
		if commands[i].name == name {
			cmd = &commands[i]
			break
		}
	}
	if cmd == nil {
		log.Fatalf("unknown command %q (run with -h for a list)", name)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{cfg: cfg, logger: logger}
	err = cmd.run(ctx, a, args)
	a.close()
	if err != nil {
		log.Fatalf("%s: %v", name, err)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: checkedit [-config file] <command> [flags]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(out)
	flag.PrintDefaults()
}

// app holds the lazily built dependencies shared by the commands.
type app struct {
	cfg    config.Config
	logger *logrus.Logger
	editor *checkedit.Editor
	store  storage.Store
}

func (a *app) newEditor() (*checkedit.Editor, error) {
	if a.editor != nil {
		return a.editor, nil
	}
	opts := []checkedit.Option{
		checkedit.WithLocale(a.cfg.Locale),
		checkedit.WithLogger(a.logger),
	}
	if a.cfg.TemplatesDir != "" {
		opts = append(opts, checkedit.WithTemplateFS(os.DirFS(a.cfg.TemplatesDir)))
	}
	if a.cfg.FontPath != "" {
		data, err := os.ReadFile(a.cfg.FontPath)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		opts = append(opts, checkedit.WithFont("", data))
	}
	editor, err := checkedit.NewEditor(opts...)
	if err != nil {
		return nil, err
	}
	a.editor = editor
	return editor, nil
}

func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := storage.Open(ctx, storage.Config{
		Driver: a.cfg.Store.Driver,
		Path:   a.cfg.Store.Path,
		DSN:    a.cfg.Store.DSN,
		Addr:   a.cfg.Store.RedisAddr,
	})
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		logging.Error(a.logger, "cmd", "close", "store", nil, err)
	}
}

// template resolves id against the catalog first, then the store.
func (a *app) template(ctx context.Context, id string) (model.TemplateConfig, error) {
	editor, err := a.newEditor()
	if err != nil {
		return model.TemplateConfig{}, err
	}
	cfg, err := editor.Catalog.Get(id)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, templates.ErrNotFound) {
		return model.TemplateConfig{}, err
	}
	store, serr := a.openStore(ctx)
	if serr != nil {
		return model.TemplateConfig{}, fmt.Errorf("template %q: %w", id, err)
	}
	rec, serr := store.Load(ctx, id)
	if serr != nil {
		return model.TemplateConfig{}, fmt.Errorf("template %q: %w", id, serr)
	}
	return rec.Template, nil
}

// assignments collects repeated -set field=text flags.
type assignments map[string]string

func (a assignments) String() string {
	parts := make([]string, 0, len(a))
	for _, k := range a.keys() {
		parts = append(parts, k+"="+a[k])
	}
	return strings.Join(parts, ",")
}

func (a assignments) Set(value string) error {
	key, text, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected field=text, got %q", value)
	}
	a[strings.TrimSpace(key)] = text
	return nil
}

func (a assignments) keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Written to %s\n", path)
	return nil
}
