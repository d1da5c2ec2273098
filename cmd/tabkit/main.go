package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tabkit/internal/config"
	"tabkit/internal/header"
	"tabkit/internal/logger"
	"tabkit/internal/lookup"
	"tabkit/internal/storage"
	"tabkit/internal/table"
)

func main() {
	cfg, err := config.Load()
	must(err)

	log, err := logger.New(cfg.LogLevel, logger.Format(cfg.LogFormat), os.Stderr)
	must(err)
	logger.SetAsDefault(log)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "header:repair":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "read the header row of this file instead of arguments")
		_ = fs.Parse(os.Args[2:])
		names := fs.Args()
		if *input != "" {
			t, err := table.LoadOne(*input, loadOptions(cfg, ""))
			must(err)
			names = t.Original
		}
		for _, p := range header.Pairs(names) {
			fmt.Printf("%s\t%s\n", p.Original, p.Repaired)
		}
	case "table:summary":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "csv|tsv|xlsx|html|eml file")
		sheet := fs.String("sheet", "", "xlsx sheet (default: all)")
		out := fs.String("out", "", "optional xlsx path for the summary")
		block := fs.Int("block", 0, "also print numeric column means over blocks of N rows")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		tables, err := table.Load(*input, loadOptions(cfg, *sheet))
		must(err)
		summaries := make([]*table.Table, 0, len(tables))
		for _, t := range tables {
			s := table.Summarize(t)
			fmt.Printf("%s: %d rows, %d columns\n", t.Name, t.Len(), t.Width())
			table.WriteSummary(os.Stdout, s)
			summaries = append(summaries, table.SummaryTable(t.Name, s))
			if *block > 0 {
				printBlockMeans(t, s, *block)
			}
		}
		if *out != "" {
			must(table.WriteXLSX(*out, summaries...))
			fmt.Printf("summary written to %s\n", *out)
		}
	case "table:load":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "csv|tsv|xlsx|html|eml file")
		sheet := fs.String("sheet", "", "xlsx sheet (default: all)")
		name := fs.String("name", "", "table name (default: from file or sheet)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		tables, err := table.Load(*input, loadOptions(cfg, *sheet))
		must(err)
		if *name != "" && len(tables) > 1 {
			must(fmt.Errorf("--name needs a single table, %s has %d", *input, len(tables)))
		}
		db := openDB(cfg)
		defer db.Close()
		for _, t := range tables {
			if *name != "" {
				t.Name = *name
			}
			stored, err := db.SaveTable(t)
			must(err)
			slog.Info("table loaded", slog.String("table", stored), slog.Int("rows", t.Len()), slog.Int("columns", t.Width()))
			fmt.Printf("loaded %s rows=%d columns=%d\n", stored, t.Len(), t.Width())
		}
	case "table:list":
		db := openDB(cfg)
		defer db.Close()
		infos, err := db.ListTables()
		must(err)
		for _, ti := range infos {
			fmt.Printf("%s\tsource=%s\trows=%d\tcolumns=%d\tupdated=%s\n", ti.Name, ti.Source, ti.Rows, ti.Columns, ti.UpdatedAt)
		}
	case "table:drop":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "stored table name")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*name) == "" {
			must(fmt.Errorf("--name is required"))
		}
		db := openDB(cfg)
		defer db.Close()
		must(db.DropTable(*name))
		slog.Info("table dropped", slog.String("table", *name))
		fmt.Printf("dropped %s\n", *name)
	case "table:derive":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "csv|tsv|xlsx|html|eml file")
		column := fs.String("column", "", "source column")
		fn := fs.String("fn", "", "left:N|right:N|mid:START:N|trim|year|month|day|quarter|weekday|yearmonth")
		out := fs.String("out", "", "output .csv or .xlsx (default: csv on stdout)")
		_ = fs.Parse(os.Args[2:])
		if *input == "" || *column == "" || *fn == "" {
			must(fmt.Errorf("--input --column --fn are required"))
		}
		t, err := table.LoadOne(*input, loadOptions(cfg, ""))
		must(err)
		added, err := table.Derive(t, *column, *fn)
		must(err)
		slog.Info("column derived", slog.String("table", t.Name), slog.String("column", added))
		if *out == "" {
			must(table.WriteCSV(os.Stdout, t, cfg.CSVDelimiter))
			return
		}
		must(writeTable(*out, t, cfg.CSVDelimiter))
		fmt.Printf("derived %s rows=%d output=%s\n", added, t.Len(), *out)
	case "table:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "stored table name")
		out := fs.String("out", "", "output .xlsx or .csv path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*name) == "" {
			must(fmt.Errorf("--name is required"))
		}
		path := *out
		if path == "" {
			path = filepath.Join(cfg.OutputDir, storage.TableName(*name)+".xlsx")
		}
		db := openDB(cfg)
		defer db.Close()
		t, err := db.LoadTable(*name)
		must(err)
		must(writeTable(path, t, cfg.CSVDelimiter))
		fmt.Printf("exported %d rows to %s\n", t.Len(), path)
	case "lookup":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "table whose column is looked up")
		column := fs.String("column", "", "column of --input holding the queries")
		ref := fs.String("ref", "", "reference table")
		key := fs.String("key", "", "key column of --ref")
		value := fs.String("value", "", "value column of --ref")
		out := fs.String("out", "", "output .csv or .xlsx (default: csv on stdout)")
		caseSensitive := fs.Bool("case-sensitive", !cfg.LookupIgnoreCase, "match keys case-sensitively")
		quiet := fs.Bool("quiet", !cfg.LookupWarnOnMissing, "do not report unmatched values")
		_ = fs.Parse(os.Args[2:])
		if *input == "" || *column == "" || *ref == "" || *key == "" || *value == "" {
			must(fmt.Errorf("--input --column --ref --key --value are required"))
		}
		left, err := table.LoadOne(*input, loadOptions(cfg, ""))
		must(err)
		right, err := table.LoadOne(*ref, loadOptions(cfg, ""))
		must(err)
		added, err := table.Join(left, *column, right, *key, *value,
			lookup.IgnoreCase(!*caseSensitive), lookup.WarnOnMissing(!*quiet))
		must(err)
		slog.Info("lookup joined", slog.String("table", left.Name), slog.String("column", added))
		if *out == "" {
			must(table.WriteCSV(os.Stdout, left, cfg.CSVDelimiter))
			return
		}
		must(writeTable(*out, left, cfg.CSVDelimiter))
		fmt.Printf("lookup done rows=%d output=%s\n", left.Len(), *out)
	default:
		usage()
		os.Exit(1)
	}
}

func loadOptions(cfg config.Config, sheet string) table.Options {
	return table.Options{Delimiter: cfg.CSVDelimiter, Sheet: sheet}
}

func openDB(cfg config.Config) *storage.DB {
	must(cfg.Require("DB_PATH", cfg.DBPath))
	db, err := storage.Open(cfg.DBPath)
	must(err)
	return db
}

func printBlockMeans(t *table.Table, summaries []table.ColumnSummary, size int) {
	for _, s := range summaries {
		if s.Kind != table.KindNumeric {
			continue
		}
		means, err := table.BlockMeans(t, s.Name, size)
		must(err)
		cells := make([]string, len(means))
		for i, m := range means {
			if math.IsNaN(m) {
				cells[i] = "NA"
				continue
			}
			cells[i] = strconv.FormatFloat(m, 'f', 4, 64)
		}
		fmt.Printf("%s means per %d rows: %s\n", s.Name, size, strings.Join(cells, " "))
	}
}

func writeTable(path string, t *table.Table, delimiter rune) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := table.WriteCSV(f, t, delimiter); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}
	return table.WriteXLSX(path, t)
}

func usage() {
	fmt.Println("usage: tabkit <command>")
	fmt.Println("commands:")
	fmt.Println("  header:repair [--input=file] [NAME...]")
	fmt.Println("  table:summary --input=file [--sheet=...] [--out=summary.xlsx] [--block=N]")
	fmt.Println("  table:load --input=file [--sheet=...] [--name=...]")
	fmt.Println("  table:list")
	fmt.Println("  table:drop --name=...")
	fmt.Println("  table:derive --input=file --column=... --fn=left:N|mid:START:N|year|quarter|... [--out=...]")
	fmt.Println("  table:export --name=... [--out=path.xlsx|path.csv]")
	fmt.Println("  lookup --input=file --column=... --ref=file --key=... --value=... [--out=...] [--case-sensitive] [--quiet]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
