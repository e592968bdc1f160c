package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/suparena/entitymanager"
	"github.com/suparena/entitymanager/config"
	"github.com/suparena/entitymanager/datastore/mongo"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configFlag  = flag.String("config", "entitymanager.yaml", "Path to the configuration file")
	collFlag    = flag.String("collection", "", "Collection to inspect")
)

func main() {
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := entitymanager.GetVersionInfo()
		fmt.Printf("EntityManager version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := mongo.Connect(ctx, cfg.Host)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer store.Disconnect(ctx)

	if *collFlag == "" {
		fmt.Fprintln(os.Stderr, "error: -collection is required")
		os.Exit(1)
	}

	infos, err := store.ListIndexes(ctx, *collFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Indexes of %s:\n", *collFlag)
	for _, info := range infos {
		fmt.Printf("  %s %v\n", info.Name, info.Keys)
	}
}
