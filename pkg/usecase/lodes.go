package usecase

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

const lodesBase = "https://lehd.ces.census.gov/data/lodes/LODES7"

// LodesType selects the LODES file family.
type LodesType string

const (
	LodesOD  LodesType = "od"  // origin-destination flows
	LodesRAC LodesType = "rac" // residence area characteristics
	LodesWAC LodesType = "wac" // workplace area characteristics
)

// LodesOptions selects a LODES extract.
type LodesOptions struct {
	// Type is the file family. Defaults to origin-destination.
	Type LodesType

	// Part applies to od files: "main" for within-state flows (the
	// default) or "aux" for flows that cross the state boundary.
	Part string

	// JobType defaults to JT00, all jobs.
	JobType string

	// Segment is the workforce segment for rac and wac files. Defaults
	// to S000, total jobs.
	Segment string

	Cache    bool
	Protocol model.Protocol
	Timeout  time.Duration
}

func (o LodesOptions) normalize() (LodesOptions, error) {
	if o.Type == "" {
		o.Type = LodesOD
	}
	switch o.Type {
	case LodesOD, LodesRAC, LodesWAC:
	default:
		return o, goerr.New("LODES type must be one of od, rac or wac",
			goerr.Value("type", string(o.Type)))
	}
	if o.Part == "" {
		o.Part = "main"
	}
	if o.Part != "main" && o.Part != "aux" {
		return o, goerr.New("LODES part must be main or aux", goerr.Value("part", o.Part))
	}
	if o.JobType == "" {
		o.JobType = "JT00"
	}
	if o.Segment == "" {
		o.Segment = "S000"
	}
	return o, nil
}

// Lodes retrieves a LODES commuting-data extract for a state and year.
// Block GEOIDs are left-padded to their full fifteen digits, which the
// published CSVs drop for states with leading-zero FIPS codes.
func (t *Tiger) Lodes(ctx context.Context, opt LodesOptions, state string, year int) (*model.Table, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	postal, err := statePostal(ctx, state)
	if err != nil {
		return nil, err
	}

	var url string
	if opt.Type == LodesOD {
		url = fmt.Sprintf("%s/%s/od/%s_od_%s_%s_%d.csv.gz",
			lodesBase, postal, postal, opt.Part, opt.JobType, year)
	} else {
		url = fmt.Sprintf("%s/%s/%s/%s_%s_%s_%s_%d.csv.gz",
			lodesBase, postal, opt.Type, postal, opt.Type, opt.Segment, opt.JobType, year)
	}

	fetchOpt := model.FetchOptions{Cache: opt.Cache, Protocol: opt.Protocol, Timeout: opt.Timeout}
	data, err := t.fetcher.FetchFile(ctx, url, fetchOpt)
	if err != nil {
		return nil, err
	}

	table, err := parseLodes(data)
	if err != nil && opt.Cache {
		// A cached extract can be a stale partial write. Drop it and
		// try the download once more.
		ctxlog.From(ctx).Warn("cached LODES extract failed to parse, re-downloading",
			"url", url, "error", err)
		if err := t.fetcher.Invalidate(url); err != nil {
			return nil, err
		}
		if data, err = t.fetcher.FetchFile(ctx, url, fetchOpt); err != nil {
			return nil, err
		}
		table, err = parseLodes(data)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "parsing LODES extract", goerr.Value("url", url))
	}

	padGeocodes(table)
	return table, nil
}

// parseLodes decompresses and parses a csv.gz extract.
func parseLodes(data []byte) (*model.Table, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, goerr.Wrap(err, "decompressing extract")
	}
	defer gz.Close()

	records, err := csv.NewReader(gz).ReadAll()
	if err != nil {
		return nil, goerr.Wrap(err, "reading extract rows")
	}
	if len(records) == 0 {
		return nil, goerr.New("extract is empty")
	}
	return &model.Table{Columns: records[0], Rows: records[1:]}, nil
}

// padGeocodes restores the 15-digit block GEOIDs in place.
func padGeocodes(t *model.Table) {
	for _, column := range []string{"w_geocode", "h_geocode"} {
		ix := t.ColumnIndex(column)
		if ix < 0 {
			continue
		}
		for _, row := range t.Rows {
			if ix < len(row) && len(row[ix]) < 15 {
				row[ix] = strings.Repeat("0", 15-len(row[ix])) + row[ix]
			}
		}
	}
}

// statePostal resolves state input to the lowercase postal code used in
// LODES paths.
func statePostal(ctx context.Context, state string) (string, error) {
	fips, err := ValidateState(ctx, state)
	if err != nil {
		return "", err
	}
	for _, e := range stateTable {
		if e.fips == fips {
			return strings.ToLower(e.postal), nil
		}
	}
	return "", goerr.New("no postal code for state FIPS code", goerr.Value("fips", fips))
}
