package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/wyvernzora/dendrite/internal/cli"
)

var version = "dev"

func main() {
	var c cli.CLI

	opts := []kong.Option{
		kong.Name("dendrite"),
		kong.Description("Content-aware preprocessing and chunking for RAG ingestion pipelines"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	}
	if resolver := configResolver(); resolver != nil {
		opts = append(opts, kong.Resolver(resolver))
	}

	ctx := kong.Parse(&c, opts...)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configResolver builds a kong.Resolver from .dendriterc, if one is found,
// so flag defaults reflect the project's config file before internal/cli's
// own merge pass layers explicit CLI overrides on top.
func configResolver() kong.Resolver {
	projectRoot, found, err := cli.FindProjectRoot()
	if err != nil || !found {
		return nil
	}

	f, err := os.Open(filepath.Join(projectRoot, cli.ConfigFileName))
	if err != nil {
		return nil
	}
	defer f.Close()

	resolver, err := kongyaml.Loader(f)
	if err != nil {
		return nil
	}
	return resolver
}
