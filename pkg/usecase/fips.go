package usecase

import (
	"context"
	"encoding/csv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// countyCodesURL is the Bureau's published county FIPS reference file.
// Each line reads "AL,01,001,Autauga County,H1".
const countyCodesURL = "https://www2.census.gov/geo/docs/reference/codes/files/national_county.txt"

type stateEntry struct {
	fips   string
	postal string
	name   string
}

// stateTable covers the 50 states, DC and the island territories, so
// state validation never needs a network round trip.
var stateTable = []stateEntry{
	{"01", "AL", "Alabama"},
	{"02", "AK", "Alaska"},
	{"04", "AZ", "Arizona"},
	{"05", "AR", "Arkansas"},
	{"06", "CA", "California"},
	{"08", "CO", "Colorado"},
	{"09", "CT", "Connecticut"},
	{"10", "DE", "Delaware"},
	{"11", "DC", "District of Columbia"},
	{"12", "FL", "Florida"},
	{"13", "GA", "Georgia"},
	{"15", "HI", "Hawaii"},
	{"16", "ID", "Idaho"},
	{"17", "IL", "Illinois"},
	{"18", "IN", "Indiana"},
	{"19", "IA", "Iowa"},
	{"20", "KS", "Kansas"},
	{"21", "KY", "Kentucky"},
	{"22", "LA", "Louisiana"},
	{"23", "ME", "Maine"},
	{"24", "MD", "Maryland"},
	{"25", "MA", "Massachusetts"},
	{"26", "MI", "Michigan"},
	{"27", "MN", "Minnesota"},
	{"28", "MS", "Mississippi"},
	{"29", "MO", "Missouri"},
	{"30", "MT", "Montana"},
	{"31", "NE", "Nebraska"},
	{"32", "NV", "Nevada"},
	{"33", "NH", "New Hampshire"},
	{"34", "NJ", "New Jersey"},
	{"35", "NM", "New Mexico"},
	{"36", "NY", "New York"},
	{"37", "NC", "North Carolina"},
	{"38", "ND", "North Dakota"},
	{"39", "OH", "Ohio"},
	{"40", "OK", "Oklahoma"},
	{"41", "OR", "Oregon"},
	{"42", "PA", "Pennsylvania"},
	{"44", "RI", "Rhode Island"},
	{"45", "SC", "South Carolina"},
	{"46", "SD", "South Dakota"},
	{"47", "TN", "Tennessee"},
	{"48", "TX", "Texas"},
	{"49", "UT", "Utah"},
	{"50", "VT", "Vermont"},
	{"51", "VA", "Virginia"},
	{"53", "WA", "Washington"},
	{"54", "WV", "West Virginia"},
	{"55", "WI", "Wisconsin"},
	{"56", "WY", "Wyoming"},
	{"60", "AS", "American Samoa"},
	{"66", "GU", "Guam"},
	{"69", "MP", "Northern Mariana Islands"},
	{"72", "PR", "Puerto Rico"},
	{"74", "UM", "U.S. Minor Outlying Islands"},
	{"78", "VI", "U.S. Virgin Islands"},
}

// ValidateState resolves a state identifier to its two-digit FIPS code.
// It accepts a FIPS code (left-padded if short), a two-letter postal
// abbreviation, or a full state name; abbreviation and name matching is
// case-insensitive. Digit input is padded and returned as-is.
func ValidateState(ctx context.Context, state string) (string, error) {
	original := state
	state = strings.ToLower(strings.TrimSpace(state))

	if isDigits(state) {
		if len(state) < 2 {
			state = strings.Repeat("0", 2-len(state)) + state
		}
		return state, nil
	}

	for _, e := range stateTable {
		if strings.ToLower(e.postal) == state || strings.ToLower(e.name) == state {
			ctxlog.From(ctx).Debug("resolved state FIPS code",
				"input", original, "fips", e.fips)
			return e.fips, nil
		}
	}
	return "", goerr.New("you have likely entered an invalid state code, please revise",
		goerr.Value("state", original))
}

// ValidateCounty resolves a county identifier within a state to its
// three-digit FIPS code. Digit input is left-padded and returned
// without lookup. Name input is matched case-insensitively as a
// substring against the Bureau's county reference file; zero matches
// and ambiguous matches are both errors.
func (t *Tiger) ValidateCounty(ctx context.Context, state, county string, opt Options) (string, error) {
	stateFIPS, err := ValidateState(ctx, state)
	if err != nil {
		return "", err
	}

	county = strings.TrimSpace(county)
	if isDigits(county) {
		if len(county) < 3 {
			county = strings.Repeat("0", 3-len(county)) + county
		}
		return county, nil
	}

	counties, err := t.countyTable(ctx, stateFIPS, opt)
	if err != nil {
		return "", err
	}

	needle := strings.ToLower(county)
	var matches []countyEntry
	for _, c := range counties {
		if strings.Contains(strings.ToLower(c.name), needle) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", goerr.New("no county names match your input county string",
			goerr.Value("state", stateFIPS), goerr.Value("county", county))
	case 1:
		ctxlog.From(ctx).Debug("resolved county FIPS code",
			"input", county, "fips", matches[0].code)
		return matches[0].code, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.name
		}
		return "", goerr.New("your string matches multiple counties, please refine your selection",
			goerr.Value("county", county), goerr.Value("matches", names))
	}
}

type countyEntry struct {
	code string
	name string
}

// countyTable loads the county reference file through the fetch
// pipeline and returns the entries for one state.
func (t *Tiger) countyTable(ctx context.Context, stateFIPS string, opt Options) ([]countyEntry, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	data, err := t.fetcher.FetchFile(ctx, countyCodesURL, opt.fetchOptions())
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, goerr.Wrap(err, "parsing county reference file",
			goerr.Value("url", countyCodesURL))
	}

	var out []countyEntry
	for _, rec := range records {
		if len(rec) < 4 || rec[1] != stateFIPS {
			continue
		}
		out = append(out, countyEntry{code: rec[2], name: rec[3]})
	}
	return out, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
