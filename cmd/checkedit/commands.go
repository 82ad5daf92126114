package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-checkedit/components/templatestore"
	"github.com/goliatone/go-checkedit/internal/logging"
	"github.com/goliatone/go-checkedit/internal/prompt"
	"github.com/goliatone/go-checkedit/pkg/model"
	"github.com/goliatone/go-checkedit/pkg/preview"
	"github.com/goliatone/go-checkedit/pkg/spreadsheet"
	"github.com/goliatone/go-checkedit/pkg/storage"
	"github.com/goliatone/go-checkedit/pkg/templates"
)

func runList(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	stored := fs.Bool("stored", false, "include templates from the configured store")
	fs.Parse(args)

	editor, err := a.newEditor()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSIZE")
	for _, s := range editor.Catalog.List() {
		name := s.Name
		if s.NameLocal != "" {
			name += " / " + s.NameLocal
		}
		fmt.Fprintf(w, "%s\t%s\t%gx%g\n", s.ID, name, s.Size.Width, s.Size.Height)
	}
	if *stored {
		store, err := a.openStore(ctx)
		if err != nil {
			return err
		}
		list, err := store.List(ctx)
		if err != nil {
			return err
		}
		for _, s := range list {
			fmt.Fprintf(w, "%s\t%s\tstored %s\n", s.ID, s.Name, s.Created.Format(time.RFC3339))
		}
	}
	return w.Flush()
}

func runRender(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	templateID := fs.String("template", a.cfg.DefaultTemplate, "template id (catalog or store)")
	statePath := fs.String("state", "", "editor state JSON file; overrides -template")
	imagePath := fs.String("image", "", "background image (png, jpeg or gif)")
	format := fs.String("format", "png", "export format: png, jpeg or pdf")
	output := fs.String("output", "", "output file (stdout if empty)")
	set := assignments{}
	fs.Var(set, "set", "field text as id=text; repeatable")
	fs.Parse(args)

	editor, err := a.newEditor()
	if err != nil {
		return err
	}
	if *statePath != "" {
		data, err := os.ReadFile(*statePath)
		if err != nil {
			return fmt.Errorf("read state: %w", err)
		}
		var state model.EditorState
		if err := json.Unmarshal(data, &state); err != nil {
			return fmt.Errorf("decode state: %w", err)
		}
		if err := editor.Controller.ImportCanvasData(state); err != nil {
			return err
		}
	} else {
		cfg, err := a.template(ctx, *templateID)
		if err != nil {
			return err
		}
		if err := editor.Controller.LoadTemplateConfig(cfg); err != nil {
			return err
		}
	}

	if *imagePath != "" {
		f, err := os.Open(*imagePath)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		_, err = editor.Controller.LoadBackgroundImage(ctx, f).Wait(ctx)
		f.Close()
		if err != nil {
			return err
		}
	}

	for _, id := range set.keys() {
		if err := editor.Controller.SetProperty(id, "text", set[id]); err != nil {
			return err
		}
	}

	data, _, err := editor.Export(ctx, *format)
	if err != nil {
		return err
	}
	return writeOutput(*output, data, os.Stdout)
}

func runBatch(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	templateID := fs.String("template", a.cfg.DefaultTemplate, "template id (catalog or store)")
	input := fs.String("input", "", "spreadsheet with one check per row (.xlsx, .xlsm or .csv)")
	output := fs.String("output", "checks.pdf", "PDF output file")
	maxRows := fs.Int("max", a.cfg.MaxBatch, "maximum rows per batch")
	fs.Parse(args)

	if *input == "" {
		return errors.New("-input is required")
	}
	f, err := os.Open(*input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	rows, err := spreadsheet.Read(filepath.Base(*input), f)
	f.Close()
	if err != nil {
		return err
	}

	editor, err := a.newEditor()
	if err != nil {
		return err
	}
	cfg, err := a.template(ctx, *templateID)
	if err != nil {
		return err
	}
	if err := editor.Controller.LoadTemplateConfig(cfg); err != nil {
		return err
	}
	result, err := editor.Batch(ctx, rows, *maxRows)
	if err != nil {
		logging.Error(a.logger, "cmd", "runBatch", *input, map[string]any{"rows": len(rows)}, err)
		return err
	}
	a.logger.WithField("pages", result.Pages).Info("batch printed")
	return writeOutput(*output, result.PDF, os.Stdout)
}

func runPreview(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	templateID := fs.String("template", a.cfg.DefaultTemplate, "template id (catalog or store)")
	output := fs.String("output", "", "SVG output file (stdout if empty)")
	width := fs.Int("width", preview.DefaultWidth, "thumbnail width")
	height := fs.Int("height", preview.DefaultHeight, "thumbnail height")
	fs.Parse(args)

	cfg, err := a.template(ctx, *templateID)
	if err != nil {
		return err
	}
	renderer, err := preview.New(preview.WithSize(*width, *height))
	if err != nil {
		return err
	}
	svg, err := renderer.Render(cfg)
	if err != nil {
		return err
	}
	return writeOutput(*output, svg, os.Stdout)
}

func runSave(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	file := fs.String("file", "", "template (JSON or YAML) or editor state (JSON) file")
	id := fs.String("id", "", "record id; a new one is generated when empty")
	name := fs.String("name", "", "template name")
	fs.Parse(args)

	if *file == "" {
		return errors.New("-file is required")
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	editor, err := a.newEditor()
	if err != nil {
		return err
	}
	var probe map[string]json.RawMessage
	var cfg model.TemplateConfig
	if json.Unmarshal(data, &probe) == nil && probe["backgroundElements"] != nil {
		var state model.EditorState
		if err := json.Unmarshal(data, &state); err != nil {
			return fmt.Errorf("decode state: %w", err)
		}
		cfg = editor.Catalog.FromEditorState(state, *name)
	} else if cfg, err = templates.Import(data); err != nil {
		return err
	}
	if *name != "" {
		cfg.Name = *name
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	rec, err := store.Save(ctx, storage.Record{ID: *id, Name: cfg.Name, Template: cfg})
	if err != nil {
		return err
	}
	fmt.Println(rec.ID)
	return nil
}

func runDelete(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "stored template id")
	fs.Parse(args)

	if *id == "" {
		return errors.New("-id is required")
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	return store.Delete(ctx, *id)
}

func runFill(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	format := fs.String("format", "png", "export format: png, jpeg or pdf")
	output := fs.String("output", "check.png", "output file")
	fs.Parse(args)

	editor, err := a.newEditor()
	if err != nil {
		return err
	}
	driver := prompt.NewSurveyDriver()
	id, err := prompt.ChooseTemplate(ctx, driver, editor.Catalog)
	if err != nil {
		return err
	}
	if err := editor.Controller.LoadTemplate(id); err != nil {
		return err
	}
	if err := prompt.FillFields(ctx, driver, editor.Controller); err != nil {
		return err
	}
	data, _, err := editor.Export(ctx, *format)
	if err != nil {
		return err
	}
	return writeOutput(*output, data, os.Stdout)
}

func runSample(_ context.Context, _ *app, args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	output := fs.String("output", "checks-sample.xlsx", "spreadsheet output file")
	fs.Parse(args)

	f, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("create sample: %w", err)
	}
	if err := spreadsheet.WriteSample(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Written to %s\n", *output)
	return nil
}

func runServe(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", a.cfg.Server.Addr, "listen address")
	basePath := fs.String("base", "/", "base path for the API")
	fs.Parse(args)

	editor, err := a.newEditor()
	if err != nil {
		return err
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	renderer, err := preview.New()
	if err != nil {
		return err
	}

	fns := []templatestore.OptionFn{
		templatestore.WithStore(store),
		templatestore.WithCatalog(editor.Catalog),
		templatestore.WithPreview(renderer),
		templatestore.WithLogger(a.logger),
	}
	if a.cfg.Server.APIToken != "" {
		fns = append(fns, templatestore.WithGuard(templatestore.TokenGuard(a.cfg.Server.APIToken)))
	}
	mux := http.NewServeMux()
	mounted, err := templatestore.New(fns...).RegisterRoutes(mux, *basePath)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	a.logger.WithFields(logrus.Fields{"addr": *addr, "path": mounted}).Info("template API listening")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
