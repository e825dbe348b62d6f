// Command reconcile runs the batch reconciliation pipeline: it reads the
// three raw record sets named by a pipeline config, reconciles each into its
// canonical schema, enforces referential integrity on orders, and hands the
// results to the storage and export collaborators.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"reconcile/internal/config"
	"reconcile/internal/export"
	"reconcile/internal/metrics"
	"reconcile/internal/metrics/prompush"
	"reconcile/internal/parser"
	csvparser "reconcile/internal/parser/csv"
	"reconcile/internal/parser/jsonrec"
	"reconcile/internal/reconcile"
	"reconcile/internal/storage"
	"reconcile/pkg/records"

	// register all storage backends with the factory.
	_ "reconcile/internal/storage/all"
)

func main() {
	var (
		cfgPath        string
		metricsBackend string
		pushgatewayURL string
		validate       bool
	)

	flag.StringVar(&cfgPath, "config", "configs/pipelines/techcorp.json", "pipeline config JSON path")
	flag.StringVar(&metricsBackend, "metrics-backend", "none", "metrics backend (pushgateway, none)")
	flag.StringVar(&pushgatewayURL, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	// Optional .env so DSNs can reference local secrets during development.
	if err := godotenv.Load(); err == nil && *verbose {
		log.Printf("env: loaded .env")
	}

	p, err := config.Load(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}

	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		fatalf("configuration is invalid: %v", cfgPath)
	}
	if validate {
		log.Printf("configuration is valid: %v", cfgPath)
		return
	}

	runID := uuid.NewString()
	log.Printf("run: id=%s job=%s config=%s", runID, p.Job, cfgPath)

	// Metrics backend: flag → env → disabled.
	switch metricsBackend {
	case "pushgateway":
		gwURL := pushgatewayURL
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		jobName := p.Job
		if jobName == "" {
			jobName = "reconcile"
		}
		b, err := prompush.NewBackend(jobName+"_"+runID, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init pushgateway backend: %v; using nop", err)
			break
		}
		metrics.SetBackend(b)
		defer func() {
			if err := metrics.Flush(); err != nil {
				log.Printf("metrics: flush error: %v", err)
			}
		}()
	case "", "none":
		if *verbose {
			log.Printf("metrics: disabled")
		}
	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", metricsBackend)
	}

	ctx := context.Background()
	if err := run(ctx, p); err != nil {
		fatalf("%v", err)
	}
	log.Printf("run: id=%s done", runID)
}

func run(ctx context.Context, p config.Pipeline) error {
	customers, err := readSource("customers", p.Sources.Customers)
	if err != nil {
		return err
	}
	products, err := readSource("products", p.Sources.Products)
	if err != nil {
		return err
	}
	orders, err := readSource("orders", p.Sources.Orders)
	if err != nil {
		return err
	}

	res, err := reconcile.Pipeline{
		Customers: customers,
		Products:  products,
		Orders:    orders,
	}.Run(ctx)
	if err != nil {
		return err
	}

	sets := []struct {
		spec reconcile.EntitySpec
		set  reconcile.Set
	}{
		{reconcile.Customers(), res.Customers},
		{reconcile.Products(), res.Products},
		{reconcile.Orders(), res.Orders},
	}

	if kind := p.Storage.Kind; kind != "" && kind != "none" {
		repo, err := storage.Open(ctx, storage.Config{Kind: kind, DSN: p.ExpandedDSN()})
		if err != nil {
			return err
		}
		defer repo.Close()
		for _, s := range sets {
			n, err := storage.Load(ctx, repo, s.spec.Table(), s.set.Rows(), p.BatchSize)
			if err != nil {
				return fmt.Errorf("load %s: %w", s.set.Name, err)
			}
			metrics.CountRecords(s.set.Name, "loaded", int(n))
		}
	}

	if p.Export.Dir != "" {
		for _, s := range sets {
			path, err := export.WriteSet(p.Export.Dir, s.set)
			if err != nil {
				return err
			}
			log.Printf("export: wrote %s (%d rows)", path, s.set.Len())
		}
	}

	return nil
}

// readSource opens and parses one raw input into loosely-typed records.
func readSource(entity string, src config.Source) ([]records.Record, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", entity, err)
	}
	defer f.Close()

	var pr parser.Parser
	switch src.Format {
	case "csv":
		opt := csvparser.Options{TrimSpace: true, HeaderMap: src.HeaderMap}
		if src.Delimiter != "" {
			opt.Comma = []rune(src.Delimiter)[0]
		}
		pr = csvparser.NewParser(opt)
	case "json":
		pr = jsonrec.NewParser()
	default:
		return nil, fmt.Errorf("%s source: unknown format %q", entity, src.Format)
	}

	recs, skipped, err := pr.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s source: %w", entity, err)
	}
	if skipped > 0 {
		log.Printf("parse: entity=%s skipped=%d unparsable rows", entity, skipped)
	}
	return recs, nil
}

func fatalf(format string, args ...any) {
	log.Printf(format, args...)
	os.Exit(1)
}
