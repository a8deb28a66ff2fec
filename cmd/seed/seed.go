package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/form"
)

// File the seed document.
type File struct {
	Masters map[string][]string `json:"masters"`
	Ledgers []LedgerSeed        `json:"ledgers"`
}

// LedgerSeed one ledger; Salesman is matched by name.
type LedgerSeed struct {
	Name     string `json:"name"`
	Group    string `json:"group"`
	City     string `json:"city"`
	Pincode  string `json:"pincode"`
	Mobile   string `json:"mobile"`
	GSTIN    string `json:"gstin"`
	Salesman string `json:"salesman"`
	DueDays  string `json:"due_days"`
}

// masterOrder the kinds in the order they are seeded.
var masterOrder = []apiclient.Endpoints{
	apiclient.Brand, apiclient.Category, apiclient.Product, apiclient.Model,
	apiclient.Size, apiclient.Unit, apiclient.Salesman, apiclient.Scrap,
}

// Decode reads the seed JSON. latin1 and windows-1252 inputs are converted to UTF-8.
func Decode(r io.Reader, charset string) (*File, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "windows-1252", "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("seed: unsupported charset %q", charset)
	}
	var f File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	for kind := range f.Masters {
		if endpointsFor(kind) == nil {
			return nil, fmt.Errorf("seed: unknown master kind %q", kind)
		}
	}
	return &f, nil
}

func endpointsFor(kind string) *apiclient.Endpoints {
	for i := range masterOrder {
		if masterOrder[i].Kind == kind {
			return &masterOrder[i]
		}
	}
	return nil
}

// Result counts per outcome.
type Result struct {
	Created int
	Skipped int
	Failed  int
}

// Seeder drives the desk pages so seeded rows pass the same checks as typed ones.
type Seeder struct {
	client *apiclient.Client
	log    zerolog.Logger
}

// Run seeds masters first, then ledgers. Rows a page rejects are skipped and logged.
func (s *Seeder) Run(ctx context.Context, f *File) (Result, error) {
	var res Result
	salesmen := map[string]apiclient.Record{}
	for _, ep := range masterOrder {
		names := f.Masters[ep.Kind]
		p := form.NewMasterPage(s.client, ep, nil, s.log)
		if !p.Load(ctx) {
			return res, fmt.Errorf("seed: load %s: %s", ep.Label, p.Message.Text)
		}
		for _, name := range names {
			p.SetName(name)
			if !p.Submit() {
				s.log.Warn().Str("kind", ep.Kind).Str("name", name).Msg(p.Message.Text)
				res.Skipped++
				continue
			}
			if !p.Confirm(ctx) {
				s.log.Error().Str("kind", ep.Kind).Str("name", name).Msg(p.Message.Text)
				res.Failed++
				continue
			}
			res.Created++
		}
		if ep.Kind == apiclient.Salesman.Kind {
			for _, r := range p.Records {
				salesmen[strings.ToLower(r.Name)] = r
			}
		}
	}

	if len(f.Ledgers) == 0 {
		return res, nil
	}
	lp := form.NewLedgerPage(s.client, nil, s.log)
	if !lp.Load(ctx) {
		return res, fmt.Errorf("seed: load ledgers: %s", lp.Message.Text)
	}
	for _, l := range f.Ledgers {
		lp.SetMode(ctx, form.ModeAdd)
		lp.Name, lp.City, lp.Pincode, lp.Mobile = l.Name, l.City, l.Pincode, l.Mobile
		lp.GSTIN, lp.DueDays = l.GSTIN, l.DueDays
		lp.Group.Code = l.Group
		if l.Salesman != "" {
			sm, ok := salesmen[strings.ToLower(strings.TrimSpace(l.Salesman))]
			if !ok {
				s.log.Warn().Str("ledger", l.Name).Str("salesman", l.Salesman).Msg("unknown salesman")
				res.Skipped++
				continue
			}
			lp.Salesman = sm
		}
		if !lp.Submit() {
			s.log.Warn().Str("ledger", l.Name).Msg(lp.Message.Text)
			res.Skipped++
			continue
		}
		if !lp.Confirm(ctx) {
			s.log.Error().Str("ledger", l.Name).Msg(lp.Message.Text)
			res.Failed++
			continue
		}
		res.Created++
	}
	return res, nil
}
