package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/binwatch/pe-features/internal/derive"
	"github.com/binwatch/pe-features/internal/log"
	"github.com/binwatch/pe-features/internal/resultstore"
	"github.com/binwatch/pe-features/internal/utils"
	"github.com/binwatch/pe-features/pkg/api/features"
)

var (
	outDir      = flag.String("out", "", "directory for enhanced bundle JSON files (default: print to stdout)")
	upload      = flag.String("upload", "", "bucket URL for uploading enhanced feature bundles")
	listDerived = flag.Bool("list-derived", false, "prints the fixed vocabulary of derived feature names")
	help        = flag.Bool("help", false, "print help on available options")
	bundles     = utils.CommaSeparatedFlags("bundles", nil,
		"list of base feature bundle JSON files to enhance, separated by commas")
)

func enhanceOne(ctx context.Context, path string, store *resultstore.ResultStore) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading bundle: %w", err)
	}

	var bundle features.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return fmt.Errorf("parsing bundle: %w", err)
	}

	enhanced, err := derive.Enhance(ctx, bundle)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(enhanced, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding enhanced bundle: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if *outDir != "" {
		outPath := filepath.Join(*outDir, name+".enhanced.json")
		if err := os.WriteFile(outPath, out, 0o666); err != nil {
			return fmt.Errorf("writing enhanced bundle: %w", err)
		}
		slog.InfoContext(ctx, "Wrote enhanced bundle", "path", outPath)
	} else {
		fmt.Println(string(out))
	}

	if store != nil {
		// The sample digest is the digest of the bundle document itself;
		// extractors that know the executable's own digest should ship it
		// through the worker path instead.
		sample := resultstore.Sample{Name: name, SHA256: utils.GetSHA256Hash(data)}
		if err := store.Save(ctx, sample, enhanced); err != nil {
			return fmt.Errorf("uploading enhanced bundle: %w", err)
		}
	}
	return nil
}

func main() {
	log.Initialize(os.Getenv("LOGGER_ENV"))
	bundles.InitFlag()
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}
	if *listDerived {
		for _, key := range derive.Vocabulary() {
			fmt.Println(key)
		}
		return
	}
	if len(bundles.Values) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	var store *resultstore.ResultStore
	if *upload != "" {
		store = resultstore.New(*upload, resultstore.ConstructPath())
	}

	exitCode := 0
	for _, path := range bundles.Values {
		ctx := log.ContextWithAttrs(context.Background(), slog.String("bundle", path))
		if err := enhanceOne(ctx, path, store); err != nil {
			slog.ErrorContext(ctx, "Enhancement failed", "error", err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}
