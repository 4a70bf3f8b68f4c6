package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jimezsa/jobradar/internal/config"
	"gopkg.in/yaml.v3"
)

type ConfigCmd struct {
	Init InitConfigCmd `cmd:"" help:"Write default config, search table and proxies files."`
	Path PathConfigCmd `cmd:"" help:"Print config directory."`
	Show ShowConfigCmd `cmd:"" help:"Print the search config a run would use."`
}

type InitConfigCmd struct{}

type PathConfigCmd struct{}

type ShowConfigCmd struct {
	Config string `name:"config" short:"c" help:"Search config file to show instead of the resolved one." type:"path"`
	YAML   bool   `name:"yaml" help:"Print as YAML instead of JSON."`
}

func (c *InitConfigCmd) Run(ctx *Context) error {
	paths, err := config.Init()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		ctx.UI.Infof("Config already initialized at %s", ctx.ConfigDir)
		return nil
	}
	ctx.UI.Infof("Created: %s", strings.Join(paths, ", "))
	return nil
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.ConfigDir)
	return err
}

func (c *ShowConfigCmd) Run(ctx *Context) error {
	searchCfg, source, err := config.ResolveSearchConfig(c.Config, ctx.Config.SearchConfig)
	if err != nil {
		return fmt.Errorf("search config: %w", err)
	}
	ctx.UI.Summaryf("source: %s (%d searches)", source, len(searchCfg.Searches))

	data, err := renderSearchConfig(searchCfg, c.YAML)
	if err != nil {
		return err
	}
	_, err = ctx.Out.Write(data)
	return err
}

// renderSearchConfig keeps the JSON field names in both formats.
func renderSearchConfig(searchCfg config.SearchConfig, asYAML bool) ([]byte, error) {
	data, err := json.MarshalIndent(searchCfg, "", "  ")
	if err != nil {
		return nil, err
	}
	if !asYAML {
		return append(data, '\n'), nil
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}
