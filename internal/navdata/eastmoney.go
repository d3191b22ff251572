package navdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/fundquant/internal/contracts"
	"github.com/wonny/fundquant/pkg/httputil"
)

// Eastmoney serves fund NAV history as a JS file at
// /pingzhongdata/{code}.js. The payload is a sequence of `var x = ...;`
// assignments; the series lives in Data_netWorthTrend as a JSON array.
var (
	fundNameRe = regexp.MustCompile(`var fS_name\s*=\s*"([^"]*)"`)
	navTrendRe = regexp.MustCompile(`var Data_netWorthTrend\s*=\s*(\[[^;]*\])\s*;`)
)

// NAV timestamps are Beijing-time midnights in epoch milliseconds.
var beijing = time.FixedZone("CST", 8*3600)

// Fund is one fund's full published history.
type Fund struct {
	Code string
	Name string
	Navs []contracts.FundNav
}

// Provider fetches NAV series from the Eastmoney fund endpoint.
type Provider struct {
	client  *httputil.Client
	baseURL string
}

// NewProvider creates an Eastmoney provider on top of client.
func NewProvider(client *httputil.Client, baseURL string) *Provider {
	return &Provider{client: client, baseURL: baseURL}
}

// FetchFund downloads and parses the full NAV history for a fund code.
func (p *Provider) FetchFund(ctx context.Context, code string) (*Fund, error) {
	url := fmt.Sprintf("%s/pingzhongdata/%s.js", p.baseURL, code)
	body, err := p.client.GetBody(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch fund %s: %w", code, err)
	}
	return parseFund(code, body)
}

// netWorthPoint is one entry of Data_netWorthTrend. equityReturn is
// sometimes published as a quoted number or an empty string.
type netWorthPoint struct {
	X            int64       `json:"x"`
	Y            json.Number `json:"y"`
	EquityReturn looseNumber `json:"equityReturn"`
}

// looseNumber accepts a JSON number, a numeric string, "" or null.
type looseNumber string

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = "0"
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			s = "0"
		}
		*n = looseNumber(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("invalid number %q", data)
	}
	*n = looseNumber(data)
	return nil
}

func parseFund(code string, body []byte) (*Fund, error) {
	fund := &Fund{Code: code}

	if m := fundNameRe.FindSubmatch(body); m != nil {
		fund.Name = string(m[1])
	}

	m := navTrendRe.FindSubmatch(body)
	if m == nil {
		return nil, fmt.Errorf("fund %s: net worth trend not found in payload", code)
	}

	var points []netWorthPoint
	if err := json.Unmarshal(m[1], &points); err != nil {
		return nil, fmt.Errorf("fund %s: decode net worth trend: %w", code, err)
	}

	seen := make(map[string]bool, len(points))
	for _, pt := range points {
		date := time.UnixMilli(pt.X).In(beijing).Format(contracts.DateFormat)
		if seen[date] {
			continue
		}
		seen[date] = true

		value, err := decimal.NewFromString(pt.Y.String())
		if err != nil {
			return nil, fmt.Errorf("fund %s: nav value on %s: %w", code, date, err)
		}
		increase, err := decimal.NewFromString(string(pt.EquityReturn))
		if err != nil {
			return nil, fmt.Errorf("fund %s: equity return on %s: %w", code, date, err)
		}

		fund.Navs = append(fund.Navs, contracts.FundNav{
			Code:     code,
			Date:     date,
			Value:    value,
			Increase: increase,
		})
	}

	if len(fund.Navs) == 0 {
		return nil, fmt.Errorf("fund %s: empty net worth trend", code)
	}
	return fund, nil
}
