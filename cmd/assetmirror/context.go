package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"assetmirror/internal/catalog"
	"assetmirror/internal/config"
	"assetmirror/internal/fetch"
	"assetmirror/internal/page"
	"assetmirror/internal/page/htmldoc"
	"assetmirror/internal/session"
	"assetmirror/internal/textutil"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	newDriver     func(cfg *config.Config) page.Driver
	newDownloader func(cfg *config.Config) fetch.Downloader
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		newDriver: func(cfg *config.Config) page.Driver {
			return htmldoc.New(htmldoc.Options{UserAgent: cfg.Site.UserAgent, Timeout: cfg.SiteTimeout()})
		},
		newDownloader: func(cfg *config.Config) fetch.Downloader {
			return fetch.NewHTTPDownloader(cfg)
		},
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withSession opens a locked session for the duration of fn. SIGINT and
// SIGTERM cancel the context handed to fn.
func (c *commandContext) withSession(cmd *cobra.Command, fn func(context.Context, *session.Session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	errOut := cmd.ErrOrStderr()
	s, err := session.Open(cfg, session.Options{Console: errOut, Color: shouldColorize(errOut)})
	if err != nil {
		return err
	}
	defer s.Close()

	runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return fn(s.Context(runCtx), s)
}

// withTaxonomy loads a catalog snapshot inside a session.
func (c *commandContext) withTaxonomy(cmd *cobra.Command, fn func(context.Context, *session.Session, *catalog.Taxonomy) error) error {
	return c.withSession(cmd, func(ctx context.Context, s *session.Session) error {
		tax, err := s.Store.LoadTaxonomy(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, s, tax)
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// selectTypes resolves asset type names against the snapshot. No names
// selects every type.
func selectTypes(tax *catalog.Taxonomy, names []string) ([]*catalog.AssetType, error) {
	if len(names) == 0 {
		return tax.Types, nil
	}
	selected := make([]*catalog.AssetType, 0, len(names))
	for _, name := range names {
		var found *catalog.AssetType
		for _, t := range tax.Types {
			if textutil.SameName(t.Name, name) {
				found = t
				break
			}
		}
		if found == nil {
			return nil, unknownTypeError(name, tax)
		}
		selected = append(selected, found)
	}
	return selected, nil
}
