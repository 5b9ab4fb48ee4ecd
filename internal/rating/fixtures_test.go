package rating

import (
	"testing"
	"time"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decp(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func boolp(b bool) *bool {
	return &b
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg ...string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%v: want %s, got %s", msg, want, got)
}

func lbPackage(weight, l, w, h string) model.Package {
	return model.Package{Weight: dec(weight), Length: dec(l), Width: dec(w), Height: dec(h), Unit: model.UnitLB}
}

// rateRow builds a row where each zone adds 0.50 to the zone 2 rate.
func rateRow(breakpoint, zone2 string) model.RateRow {
	rates := make(map[model.Zone]decimal.Decimal, len(model.AllZones))
	for _, z := range model.AllZones {
		rates[z] = dec(zone2).Add(dec("0.5").Mul(decimal.NewFromInt(int64(z - 2))))
	}
	return model.RateRow{Breakpoint: dec(breakpoint), Rates: rates}
}

func zonedFee(zone2 string) model.ZonedFee {
	values := make(map[model.Zone]decimal.Decimal, len(model.AllZones))
	for _, z := range model.AllZones {
		values[z] = dec(zone2).Add(decimal.NewFromInt(int64(z - 2)))
	}
	return model.ZonedFee{Values: values}
}

func testZoneTable() *model.PostalZoneTable {
	return &model.PostalZoneTable{
		Origin: "91761",
		Ranges: []model.ZoneRange{
			{StartCode: "00501", EndCode: "19999", Zone: 8},
			{StartCode: "20000", EndCode: "39999", Zone: 4},
			{StartCode: "40000", EndCode: "69999", Zone: 6},
			{StartCode: "70000", EndCode: "89999", Zone: 5},
			{StartCode: "90000", EndCode: "99999", Zone: 2},
		},
	}
}

func testRemoteTable() *model.RemoteAreaTable {
	return &model.RemoteAreaTable{
		Ranges: []model.RemoteRange{
			{StartCode: "30300", EndCode: "30309", Type: model.RemoteDAS, Commercial: true, Residential: true},
			{StartCode: "30310", EndCode: "30319", Type: model.RemoteDASExt, Commercial: true, Residential: false},
			{StartCode: "99500", EndCode: "99599", Type: model.RemoteAlaska, Commercial: true, Residential: true},
		},
	}
}

func testFuel() model.FuelSchedule {
	return model.FuelSchedule{
		{Rate: dec("15.5"), EffectiveDate: day("2025-01-01"), Active: true},
	}
}

func overweightCondition() model.Condition {
	return model.Condition{Metric: model.MetricActualWeight, Min: decp("150")}
}

// testProduct is a ground product priced in pounds with the usual surcharge set.
func testProduct() *model.RateCard {
	return &model.RateCard{
		ID:       "ground-lb",
		Name:     "Ground",
		Carrier:  "TEST",
		Currency: "USD",
		Unit:     model.UnitLB,
		Active:   true,
		Zones:    model.AllZones,
		Rates: model.ZoneRateTable{
			rateRow("1", "8.00"),
			rateRow("5", "10.00"),
			rateRow("10", "12.00"),
			rateRow("20", "15.00"),
			rateRow("50", "25.00"),
			rateRow("100", "40.00"),
			rateRow("150", "60.00"),
		},
		Categories: []model.SurchargeCategory{
			{
				Title:          "Additional Handling",
				ExclusiveGroup: "handling",
				Items: []model.SurchargeItem{
					{
						Name:        "Weight",
						Fee:         model.FlatFee{Value: dec("25.00")},
						Eligibility: &model.Eligibility{Conditions: []model.Condition{{Metric: model.MetricActualWeight, Min: decp("50")}}},
						PSS:         []model.PSSPeriod{{StartDate: day("2025-10-01"), EndDate: day("2025-12-31"), Amount: dec("30.00")}},
					},
					{
						Name:        "Length",
						Fee:         model.FlatFee{Value: dec("20.00")},
						Eligibility: &model.Eligibility{Conditions: []model.Condition{{Metric: model.MetricLongestSide, Min: decp("48")}}},
					},
				},
			},
			{
				Title:          "Oversize",
				ExclusiveGroup: "handling",
				Items: []model.SurchargeItem{
					{
						Name:        "Oversize",
						Fee:         zonedFee("85.00"),
						Eligibility: &model.Eligibility{Conditions: []model.Condition{{Metric: model.MetricLengthGirth, Min: decp("130")}}},
					},
				},
			},
			{
				Title:     "Residential Delivery",
				SingleFee: true,
				Items: []model.SurchargeItem{
					{
						Name:        "Residential",
						Description: "residential delivery",
						Fee:         model.FlatFee{Value: dec("5.00")},
						Eligibility: &model.Eligibility{Residential: boolp(true)},
					},
				},
			},
			{
				Title: "Delivery Area Surcharge",
				Items: []model.SurchargeItem{
					{
						Name:        "DAS",
						Fee:         model.FlatFee{Value: dec("3.50")},
						Eligibility: &model.Eligibility{RemoteTypes: []model.RemoteType{model.RemoteDAS}},
					},
					{
						Name:        "DAS Extended",
						Fee:         model.FlatFee{Value: dec("4.50")},
						Eligibility: &model.Eligibility{RemoteTypes: []model.RemoteType{model.RemoteDASExt}},
					},
					{
						Name:        "DAS Alaska",
						Fee:         model.FlatFee{Value: dec("40.00")},
						Eligibility: &model.Eligibility{RemoteTypes: []model.RemoteType{model.RemoteAlaska}},
					},
				},
			},
			{
				Title: "Value Added Services",
				Items: []model.SurchargeItem{
					{
						Name:        "Signature Required",
						Fee:         model.FlatFee{Value: dec("6.00")},
						Eligibility: &model.Eligibility{OnRequest: true},
					},
				},
			},
			{
				Title: "Unauthorized",
				PSS:   []model.PSSPeriod{{StartDate: day("2025-10-01"), EndDate: day("2025-12-31"), Amount: dec("1150.00")}},
				Items: []model.SurchargeItem{
					{
						Name: "Unauthorized Package",
						Kind: model.ItemKindUnauthorized,
						Fee:  model.FlatFee{Value: dec("1000.00")},
						Items: []model.SurchargeItem{
							{
								Name:        "Over Maximum Weight",
								Fee:         model.FlatFee{Value: dec("1050.00")},
								Eligibility: &model.Eligibility{Conditions: []model.Condition{overweightCondition()}},
							},
						},
					},
				},
			},
		},
	}
}

func testRequest(pkg model.Package, destination string, shipDate time.Time) Request {
	return Request{
		Package:     pkg,
		Product:     testProduct(),
		Origin:      "91761",
		Destination: destination,
		ZoneTable:   testZoneTable(),
		RemoteTable: testRemoteTable(),
		Fuel:        testFuel(),
		ShipDate:    shipDate,
		Residential: true,
	}
}

// evalContext builds the context Evaluate sees for pkg, the same way the engine does.
func evalContext(pkg model.Package, zone model.Zone, remote model.RemoteFlags, residential bool, shipDate time.Time, services ...string) EvalContext {
	weights := ComputeWeights(pkg, model.DefaultDimDivisor)
	dims := ComputeDimensions(pkg)
	return EvalContext{
		Weights:     weights,
		Dimensions:  dims,
		Measures:    NormalizeMeasures(weights, dims),
		Zone:        zone,
		Remote:      remote,
		ShipDate:    shipDate,
		Residential: residential,
		Services:    NewServiceSet(services),
	}
}
