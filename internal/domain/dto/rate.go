package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/guttosm/freight-rate-service/internal/rating"
	"github.com/shopspring/decimal"
)

// Money rounds a full-precision amount to cents for output.
func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// WeightInfo is the weight block of packageInfo.
type WeightInfo struct {
	ActualWeight     float64 `json:"actualWeight" example:"10"`
	VolumeWeight     float64 `json:"volumeWeight" example:"4"`
	ChargeableWeight float64 `json:"chargeableWeight" example:"10"`
	Unit             string  `json:"unit" example:"LB"`
} // @name WeightInfo

// DimensionsInfo is the dimensions block of packageInfo.
type DimensionsInfo struct {
	Length           float64 `json:"length" example:"12"`
	Width            float64 `json:"width" example:"10"`
	Height           float64 `json:"height" example:"8"`
	Girth            float64 `json:"girth" example:"36"`
	TotalLengthGirth float64 `json:"totalLengthGirth" example:"48"`
	Unit             string  `json:"unit" example:"in"`
} // @name DimensionsInfo

// PackageInfo reports the derived package measures.
type PackageInfo struct {
	Weight     WeightInfo     `json:"weight"`
	Dimensions DimensionsInfo `json:"dimensions"`
} // @name PackageInfo

// NewPackageInfo converts model.PackageInfo.
func NewPackageInfo(p model.PackageInfo) PackageInfo {
	return PackageInfo{
		Weight: WeightInfo{
			ActualWeight:     Money(p.Weight.Actual),
			VolumeWeight:     Money(p.Weight.Volumetric),
			ChargeableWeight: Money(p.Weight.Chargeable),
			Unit:             string(p.Weight.Unit),
		},
		Dimensions: DimensionsInfo{
			Length:           Money(p.Dimensions.Length),
			Width:            Money(p.Dimensions.Width),
			Height:           Money(p.Dimensions.Height),
			Girth:            Money(p.Dimensions.Girth),
			TotalLengthGirth: Money(p.Dimensions.TotalLengthGirth),
			Unit:             p.Dimensions.Unit.LengthUnit(),
		},
	}
}

// BaseRate is the zone rate table price.
type BaseRate struct {
	Amount float64 `json:"amount" example:"13"`
} // @name BaseRate

// SurchargeFeeDetails explains one surcharge amount.
type SurchargeFeeDetails struct {
	BaseFee float64 `json:"baseFee" example:"25"`
	PSSFee  float64 `json:"pssFee" example:"30"`
	Reason  string  `json:"reason" example:"50 < actual_weight"`
} // @name SurchargeFeeDetails

// SurchargeDetail is one entry of surchargeDetails.
type SurchargeDetail struct {
	Amount  float64             `json:"amount" example:"30"`
	Details SurchargeFeeDetails `json:"details"`
} // @name SurchargeDetail

// NamedSurcharge pairs a surcharge detail with its output key.
type NamedSurcharge struct {
	Name   string
	Detail SurchargeDetail
}

// SurchargeDetails serializes as a JSON object keyed by surcharge name, in line order.
type SurchargeDetails []NamedSurcharge

// NewSurchargeDetails converts surcharge lines. A name already used by an earlier
// line is qualified with its category, then numbered until the key is unique.
func NewSurchargeDetails(lines []model.SurchargeLine) SurchargeDetails {
	out := make(SurchargeDetails, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		key := l.Name
		if seen[key] {
			key = l.Category + " / " + l.Name
		}
		for n, base := 2, key; seen[key]; n++ {
			key = fmt.Sprintf("%s #%d", base, n)
		}
		seen[key] = true
		out = append(out, NamedSurcharge{
			Name: key,
			Detail: SurchargeDetail{
				Amount: Money(l.Amount),
				Details: SurchargeFeeDetails{
					BaseFee: Money(l.BaseFee),
					PSSFee:  Money(l.PSSFee),
					Reason:  l.Reason,
				},
			},
		})
	}
	return out
}

// MarshalJSON implements json.Marshaler keeping line order.
func (s SurchargeDetails) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(n.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(n.Detail)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler keeping document order.
func (s *SurchargeDetails) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("surchargeDetails: expected object")
	}

	out := SurchargeDetails{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var detail SurchargeDetail
		if err := dec.Decode(&detail); err != nil {
			return err
		}
		out = append(out, NamedSurcharge{Name: name, Detail: detail})
	}
	*s = out
	return nil
}

// FuelSurcharge is the fuel percentage applied to base rate plus surcharges.
type FuelSurcharge struct {
	Rate   float64 `json:"rate" example:"15.5"`
	Basis  float64 `json:"basis" example:"18"`
	Amount float64 `json:"amount" example:"2.79"`
} // @name FuelSurcharge

// RateResponse is the itemized quote for one zone.
// @Description Itemized rate for one zone
type RateResponse struct {
	Zone             int              `json:"zone" example:"4"`
	IsRemote         bool             `json:"isRemote" example:"false"`
	RemoteType       string           `json:"remoteType" example:""`
	PackageInfo      PackageInfo      `json:"packageInfo"`
	BaseRate         BaseRate         `json:"baseRate"`
	SurchargeDetails SurchargeDetails `json:"surchargeDetails" swaggertype:"object"`
	FuelSurcharge    FuelSurcharge    `json:"fuelSurcharge"`
	TotalAmount      float64          `json:"totalAmount" example:"20.79"`
} // @name RateResponse

// UnauthorizedDetails splits the unauthorized fee.
type UnauthorizedDetails struct {
	BaseFee float64 `json:"base_fee" example:"1050"`
	PSSFee  float64 `json:"pss_fee" example:"1150"`
} // @name UnauthorizedDetails

// UnauthorizedResponse is returned instead of RateResponse when the package
// exceeds the carrier limits.
// @Description Penalty for a package beyond carrier limits
type UnauthorizedResponse struct {
	Zone           int                 `json:"zone" example:"4"`
	IsUnauthorized bool                `json:"isUnauthorized" example:"true"`
	Reason         string              `json:"reason" example:"actual weight exceeds 150 lb"`
	PackageInfo    PackageInfo         `json:"packageInfo"`
	Fee            float64             `json:"fee" example:"1150"`
	Details        UnauthorizedDetails `json:"details"`
} // @name UnauthorizedResponse

// ZoneError is one failed zone of an all-zones response.
type ZoneError struct {
	Zone    int    `json:"zone" example:"8"`
	Error   string `json:"error" example:"rate_table_mismatch"`
	Message string `json:"message" example:"rate table mismatch: no zone 8 column at breakpoint 10"`
} // @name ZoneError

// AllZonesResponse lists one entry per zone: RateResponse, UnauthorizedResponse or ZoneError.
// @Description Rates for every zone of the product
type AllZonesResponse struct {
	AllZones bool          `json:"allZones" example:"true"`
	Results  []interface{} `json:"results"`
} // @name AllZonesResponse

// NewRateResponse converts a result to RateResponse, or UnauthorizedResponse when
// the package was rejected.
func NewRateResponse(r *model.RateResult) interface{} {
	info := NewPackageInfo(r.PackageInfo)
	if u := r.Unauthorized; u != nil {
		return UnauthorizedResponse{
			Zone:           int(r.Zone),
			IsUnauthorized: true,
			Reason:         u.Reason,
			PackageInfo:    info,
			Fee:            Money(u.Fee),
			Details: UnauthorizedDetails{
				BaseFee: Money(u.BaseFee),
				PSSFee:  Money(u.PSSFee),
			},
		}
	}

	return RateResponse{
		Zone:             int(r.Zone),
		IsRemote:         r.Remote.IsRemote(),
		RemoteType:       string(r.Remote.Type),
		PackageInfo:      info,
		BaseRate:         BaseRate{Amount: Money(r.BaseRate)},
		SurchargeDetails: NewSurchargeDetails(r.Surcharges),
		FuelSurcharge: FuelSurcharge{
			Rate:   Money(r.Fuel.Rate),
			Basis:  Money(r.Fuel.Basis),
			Amount: Money(r.Fuel.Amount),
		},
		TotalAmount: Money(r.Total),
	}
}

// NewAllZonesResponse converts the per-zone results, keeping their order.
func NewAllZonesResponse(results []model.ZoneResult) AllZonesResponse {
	out := AllZonesResponse{AllZones: true, Results: make([]interface{}, 0, len(results))}
	for _, zr := range results {
		if zr.Err != nil {
			out.Results = append(out.Results, ZoneError{
				Zone:    int(zr.Zone),
				Error:   RatingErrorCode(zr.Err),
				Message: zr.Err.Error(),
			})
			continue
		}
		out.Results = append(out.Results, NewRateResponse(zr.Result))
	}
	return out
}

// RatingErrorCode maps rating errors to API error codes.
func RatingErrorCode(err error) string {
	switch {
	case errors.Is(err, rating.ErrInvalidPackageDimensions):
		return ErrCodeInvalidRequest
	case errors.Is(err, rating.ErrZoneNotFound):
		return ErrCodeZoneNotFound
	case errors.Is(err, rating.ErrProductNotEffective):
		return ErrCodeProductNotEffective
	case errors.Is(err, rating.ErrRateTableMismatch):
		return ErrCodeRateTableMismatch
	case errors.Is(err, rating.ErrNoFuelRateEffective):
		return ErrCodeNoFuelRate
	case errors.Is(err, rating.ErrUnauthorizedFeeNotConfigured):
		return ErrCodeUnauthorizedFee
	default:
		return ErrCodeInternal
	}
}

// ProductSummary lists a rate card for GET /api/products.
type ProductSummary struct {
	ID        string     `json:"id" example:"ground-lb"`
	Name      string     `json:"name" example:"Ground"`
	Carrier   string     `json:"carrier" example:"UPS"`
	Currency  string     `json:"currency" example:"USD"`
	Unit      string     `json:"unit" example:"LB"`
	Zones     []int      `json:"zones" example:"2,3,4,5,6,7,8"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
} // @name ProductSummary

// NewProductSummary converts a rate card.
func NewProductSummary(r *model.RateCard) ProductSummary {
	zones := make([]int, len(r.Zones))
	for i, z := range r.Zones {
		zones[i] = int(z)
	}
	return ProductSummary{
		ID:        r.ID,
		Name:      r.Name,
		Carrier:   r.Carrier,
		Currency:  r.Currency,
		Unit:      string(r.Unit),
		Zones:     zones,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}
