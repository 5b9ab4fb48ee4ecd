package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/guttosm/freight-rate-service/internal/rating"
)

// CatalogFile is the JSON layout of an offline provider export.
type CatalogFile struct {
	Products    []ProductDocument    `json:"products"`
	PostalZones []PostalZoneDocument `json:"postal_zones"`
	RemoteAreas []RemoteAreaDocument `json:"remote_areas"`
	FuelRates   []FuelRateDocument   `json:"fuel_rates"`
}

// FileCatalog serves provider data decoded from a CatalogFile.
// Everything is converted up front so bad documents fail at load.
type FileCatalog struct {
	products map[string]*model.RateCard
	order    []string
	zones    map[string]*model.PostalZoneTable
	remote   *model.RemoteAreaTable
	fuel     model.FuelSchedule
}

// LoadFileCatalog reads and converts the catalog file at path.
func LoadFileCatalog(path string) (*FileCatalog, error) {
	file, err := LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	return NewFileCatalog(file)
}

// LoadCatalogFile decodes the catalog file at path without converting it.
func LoadCatalogFile(path string) (CatalogFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return CatalogFile{}, fmt.Errorf("open catalog: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return decodeCatalogFile(f)
}

// ReadFileCatalog decodes a catalog from r.
func ReadFileCatalog(r io.Reader) (*FileCatalog, error) {
	file, err := decodeCatalogFile(r)
	if err != nil {
		return nil, err
	}
	return NewFileCatalog(file)
}

func decodeCatalogFile(r io.Reader) (CatalogFile, error) {
	var file CatalogFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return CatalogFile{}, fmt.Errorf("%w: decode catalog: %v", ErrInvalidDocument, err)
	}
	return file, nil
}

// NewFileCatalog converts the documents of file.
func NewFileCatalog(file CatalogFile) (*FileCatalog, error) {
	c := &FileCatalog{
		products: make(map[string]*model.RateCard, len(file.Products)),
		zones:    make(map[string]*model.PostalZoneTable),
	}

	for i := range file.Products {
		card, err := file.Products[i].RateCard()
		if err != nil {
			return nil, err
		}
		if _, dup := c.products[card.ID]; dup {
			return nil, invalidf("duplicate product %q", card.ID)
		}
		c.products[card.ID] = card
		c.order = append(c.order, card.ID)
	}
	sort.SliceStable(c.order, func(i, j int) bool {
		return c.products[c.order[i]].Name < c.products[c.order[j]].Name
	})

	byOrigin := make(map[string][]PostalZoneDocument)
	for _, d := range file.PostalZones {
		origin := rating.NormalizePostalCode(d.Origin)
		byOrigin[origin] = append(byOrigin[origin], d)
	}
	for origin, docs := range byOrigin {
		table, err := NewPostalZoneTable(origin, docs)
		if err != nil {
			return nil, err
		}
		c.zones[origin] = table
	}

	var err error
	if c.remote, err = NewRemoteAreaTable(file.RemoteAreas); err != nil {
		return nil, err
	}
	if c.fuel, err = NewFuelSchedule(file.FuelRates); err != nil {
		return nil, err
	}
	return c, nil
}

// GetProduct returns the rate card with the given product id.
func (c *FileCatalog) GetProduct(_ context.Context, productID string) (*model.RateCard, error) {
	card, ok := c.products[strings.TrimSpace(productID)]
	if !ok {
		return nil, fmt.Errorf("product %q: %w", productID, ErrNotFound)
	}
	return card, nil
}

// ListProducts returns the active rate cards ordered by name.
func (c *FileCatalog) ListProducts(context.Context) ([]*model.RateCard, error) {
	cards := make([]*model.RateCard, 0, len(c.order))
	for _, id := range c.order {
		if card := c.products[id]; card.Active {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// GetZoneTable returns the postal zone table of an origin.
func (c *FileCatalog) GetZoneTable(_ context.Context, origin string) (*model.PostalZoneTable, error) {
	origin = rating.NormalizePostalCode(origin)
	table, ok := c.zones[origin]
	if !ok {
		return nil, fmt.Errorf("zone table for origin %q: %w", origin, ErrNotFound)
	}
	return table, nil
}

// GetRemoteTable returns the remote area table.
func (c *FileCatalog) GetRemoteTable(context.Context) (*model.RemoteAreaTable, error) {
	return c.remote, nil
}

// GetFuelSchedule returns the fuel schedule in file order.
func (c *FileCatalog) GetFuelSchedule(context.Context) (model.FuelSchedule, error) {
	return c.fuel, nil
}

// Origins lists the origins with a zone table, sorted.
func (c *FileCatalog) Origins() []string {
	out := make([]string, 0, len(c.zones))
	for origin := range c.zones {
		out = append(out, origin)
	}
	sort.Strings(out)
	return out
}
