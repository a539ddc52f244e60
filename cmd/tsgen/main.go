// Command tsgen compiles schema documents to TypeScript declarations.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/schemaforge/tsgen"
	"github.com/schemaforge/tsgen/schema"
	"github.com/schemaforge/tsgen/sink"
)

const version = "0.3.0"

type CLI struct {
	Verbose bool       `help:"Enable debug logging." short:"v"`
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Compile schema documents to TypeScript."`
	Check   CheckCmd   `cmd:"" help:"Validate schema documents without generating files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(log *logrus.Logger) error {
	fmt.Println(version)
	return nil
}

type GenCmd struct {
	Schemas  []string `arg:"" help:"Schema documents to compile." type:"existingfile"`
	Out      string   `help:"Output directory for generated files." short:"o" default:"."`
	RootName string   `help:"Root type name; defaults to each file's base name." name:"root-name"`
	NoExport bool     `help:"Omit the export modifier from declarations."`
	Unknown  string   `help:"Type for unconstrained schemas." enum:"any,unknown" default:"any"`
	Watch    bool     `help:"Watch for changes and regenerate." short:"w"`
}

func (c *GenCmd) Run(log *logrus.Logger) error {
	opts := tsgen.DefaultOptions()
	opts.Export = !c.NoExport
	opts.UnknownType = c.Unknown

	out := sink.NewFilesystemSink(c.Out)
	if err := c.generateAll(log, out, opts); err != nil && !c.Watch {
		return err
	}
	if !c.Watch {
		return nil
	}
	return c.watch(log, out, opts)
}

func (c *GenCmd) generateAll(log *logrus.Logger, out sink.OutputSink, opts *tsgen.Options) error {
	for _, path := range c.Schemas {
		if err := c.generateOne(log, out, opts, path); err != nil {
			return err
		}
	}
	return nil
}

func (c *GenCmd) generateOne(log *logrus.Logger, out sink.OutputSink, opts *tsgen.Options, path string) error {
	src, err := tsgen.CompileFile(path, c.RootName, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	target := outputName(path)
	if err := out.WriteFile(target, []byte(src)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.WithFields(logrus.Fields{"schema": path, "output": target}).Info("generated")
	return nil
}

// watch regenerates a schema's output whenever its file changes.
// Compilation failures are logged and the watch continues; editors save
// broken intermediate states all the time.
func (c *GenCmd) watch(log *logrus.Logger, out sink.OutputSink, opts *tsgen.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]string)
	for _, path := range c.Schemas {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = path
		// Watch the directory: editors replace files on save, and a
		// watch on the old inode would go stale.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
	log.WithField("files", len(watched)).Info("watching for changes")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			path, ok := watched[abs]
			if !ok {
				continue
			}
			if err := c.generateOne(log, out, opts, path); err != nil {
				log.WithError(err).Warn("regeneration failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		}
	}
}

// outputName maps a schema file name to its generated file name.
func outputName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, ".schema")
	return base + ".ts"
}

type CheckCmd struct {
	Schemas []string `arg:"" help:"Schema documents to validate." type:"existingfile"`
}

func (c *CheckCmd) Run(log *logrus.Logger) error {
	meta, err := schema.NewMetaValidator()
	if err != nil {
		return err
	}

	failed := false
	for _, path := range c.Schemas {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := meta.Validate(data); err != nil {
			log.WithField("schema", path).Error(err.Error())
			failed = true
			continue
		}
		doc, err := schema.Load(path)
		if err != nil {
			log.WithField("schema", path).Error(err.Error())
			failed = true
			continue
		}
		if violations := schema.ValidateRules(doc); len(violations) > 0 {
			for _, v := range violations {
				log.WithField("schema", path).Error(v.String())
			}
			failed = true
			continue
		}
		log.WithField("schema", path).Info("ok")
	}
	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("tsgen"),
		kong.Description("Compile schema documents to TypeScript types and factories."),
		kong.UsageOnError(),
	)

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cli.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	err := ctx.Run(log)
	ctx.FatalIfErrorf(err)
}
