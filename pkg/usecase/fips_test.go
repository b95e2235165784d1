package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tigerline/pkg/usecase"
)

func TestValidateState(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"two digit code passes through", "48", "48"},
		{"short code is padded", "1", "01"},
		{"postal abbreviation", "TX", "48"},
		{"lowercase postal abbreviation", "tx", "48"},
		{"full name", "Texas", "48"},
		{"case-insensitive name", "district of columbia", "11"},
		{"territory", "PR", "72"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fips, err := usecase.ValidateState(ctx, tc.input)
			gt.NoError(t, err)
			gt.Equal(t, fips, tc.want)
		})
	}
}

func TestValidateStateInvalid(t *testing.T) {
	_, err := usecase.ValidateState(context.Background(), "Narnia")
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("invalid state code")
}

func TestValidateCountyDigits(t *testing.T) {
	// Digit input is padded without touching the reference file.
	fetcher := newFakeFetcher()
	tiger := usecase.New(fetcher)

	fips, err := tiger.ValidateCounty(context.Background(), "TX", "1", usecase.Options{})
	gt.NoError(t, err)
	gt.Equal(t, fips, "001")
	gt.Equal(t, len(fetcher.fileURLs), 0)
}

func TestValidateCountyByName(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.files[countyCodesURL] = []byte(countyCodesFixture)
	tiger := usecase.New(fetcher)

	fips, err := tiger.ValidateCounty(context.Background(), "TX", "Travis", usecase.Options{})
	gt.NoError(t, err)
	gt.Equal(t, fips, "453")
	gt.Equal(t, fetcher.fileURLs[0], countyCodesURL)

	// Matching is a case-insensitive substring match.
	fips, err = tiger.ValidateCounty(context.Background(), "AL", "autauga", usecase.Options{})
	gt.NoError(t, err)
	gt.Equal(t, fips, "001")
}

func TestValidateCountyNoMatch(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.files[countyCodesURL] = []byte(countyCodesFixture)
	tiger := usecase.New(fetcher)

	_, err := tiger.ValidateCounty(context.Background(), "TX", "Atlantis", usecase.Options{})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("no county names match")
}

func TestValidateCountyAmbiguous(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.files[countyCodesURL] = []byte(countyCodesFixture)
	tiger := usecase.New(fetcher)

	// "Ba" matches both Baldwin and Barbour.
	_, err := tiger.ValidateCounty(context.Background(), "AL", "Ba", usecase.Options{})
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("matches multiple counties")
}
