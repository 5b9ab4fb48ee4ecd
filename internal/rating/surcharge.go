package rating

import (
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// EvalContext carries everything surcharge predicates may look at.
type EvalContext struct {
	Weights     model.WeightInfo
	Dimensions  model.Dimensions
	Measures    Measures
	Zone        model.Zone
	Remote      model.RemoteFlags
	ShipDate    time.Time
	Residential bool
	// Services holds the normalized names of requested on-request items.
	Services map[string]bool
}

// NewServiceSet normalizes requested service names for EvalContext.Services.
func NewServiceSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n = normalizeName(n); n != "" {
			set[n] = true
		}
	}
	return set
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Evaluate walks the categories in declaration order and returns the charged lines.
func Evaluate(categories []model.SurchargeCategory, ctx EvalContext) ([]model.SurchargeLine, error) {
	return evaluate(categories, ctx, zerolog.Nop())
}

type categoryLines struct {
	group    string
	lines    []model.SurchargeLine
	subtotal decimal.Decimal
}

func evaluate(categories []model.SurchargeCategory, ctx EvalContext, log zerolog.Logger) ([]model.SurchargeLine, error) {
	collected := make([]categoryLines, 0, len(categories))

	for ci := range categories {
		cat := &categories[ci]
		if cat.NotApplicable || !ctx.eligible(cat.Eligibility, cat.Title) {
			continue
		}

		cl := categoryLines{group: cat.ExclusiveGroup, subtotal: decimal.Zero}
		for ii := range cat.Items {
			item := &cat.Items[ii]
			line, err := evalItem(cat, nil, item, ctx, log)
			if err != nil {
				return nil, err
			}
			if line != nil {
				cl.lines = append(cl.lines, *line)
				cl.subtotal = cl.subtotal.Add(line.Amount)
			}

			for si := range item.Items {
				line, err := evalItem(cat, item, &item.Items[si], ctx, log)
				if err != nil {
					return nil, err
				}
				if line != nil {
					cl.lines = append(cl.lines, *line)
					cl.subtotal = cl.subtotal.Add(line.Amount)
				}
			}
		}
		if len(cl.lines) > 0 {
			collected = append(collected, cl)
		}
	}

	return flattenExclusive(collected), nil
}

// flattenExclusive keeps, for each exclusive group, only the category with the
// largest subtotal. Ties go to the earlier category.
func flattenExclusive(collected []categoryLines) []model.SurchargeLine {
	winner := make(map[string]int)
	for i, cl := range collected {
		if cl.group == "" {
			continue
		}
		best, ok := winner[cl.group]
		if !ok || cl.subtotal.GreaterThan(collected[best].subtotal) {
			winner[cl.group] = i
		}
	}

	var lines []model.SurchargeLine
	for i, cl := range collected {
		if cl.group != "" && winner[cl.group] != i {
			continue
		}
		lines = append(lines, cl.lines...)
	}
	return lines
}

func evalItem(cat *model.SurchargeCategory, parent, item *model.SurchargeItem, ctx EvalContext, log zerolog.Logger) (*model.SurchargeLine, error) {
	if item.Kind == model.ItemKindUnauthorized || item.Fee == nil {
		return nil, nil
	}
	if parent != nil && parent.Kind == model.ItemKindUnauthorized {
		return nil, nil
	}
	if !ctx.eligible(item.Eligibility, item.Name) {
		return nil, nil
	}
	if _, zoned := item.Fee.(model.ZonedFee); zoned && cat.SingleFee {
		return nil, fmt.Errorf("surcharge %q / %q: %w: single-fee category has a zoned fee", cat.Title, item.Name, ErrRateTableMismatch)
	}

	base, err := item.Fee.Amount(ctx.Zone)
	if err != nil {
		return nil, fmt.Errorf("surcharge %q / %q: %w", cat.Title, item.Name, err)
	}

	line := &model.SurchargeLine{
		Category: cat.Title,
		Name:     item.Name,
		BaseFee:  base,
		PSSFee:   decimal.Zero,
		Amount:   base,
		Reason:   reasonFor(cat, item),
	}
	if pss, ok := resolvePSS(pssChain(cat, parent, item), ctx.ShipDate, log); ok {
		line.PSSFee = pss
		line.Amount = pss
	}
	return line, nil
}

type pssSource struct {
	owner   string
	periods []model.PSSPeriod
}

// pssChain lists PSS sources from the most specific node up to the category.
func pssChain(cat *model.SurchargeCategory, parent, item *model.SurchargeItem) []pssSource {
	chain := []pssSource{{owner: item.Name, periods: item.PSS}}
	if parent != nil {
		chain = append(chain, pssSource{owner: parent.Name, periods: parent.PSS})
	}
	return append(chain, pssSource{owner: cat.Title, periods: cat.PSS})
}

// resolvePSS returns the amount of the first period covering date, walking the
// chain from the most specific node. Overlaps within one node are logged.
func resolvePSS(chain []pssSource, date time.Time, log zerolog.Logger) (decimal.Decimal, bool) {
	for _, src := range chain {
		var (
			found  bool
			amount decimal.Decimal
		)
		for _, p := range src.periods {
			if !p.Covers(date) {
				continue
			}
			if found {
				log.Warn().
					Str("owner", src.owner).
					Time("ship_date", date).
					Msg("Overlapping PSS periods, using the first declared")
				break
			}
			found = true
			amount = p.Amount
		}
		if found {
			return amount, true
		}
	}
	return decimal.Zero, false
}

func reasonFor(cat *model.SurchargeCategory, item *model.SurchargeItem) string {
	if item.Description != "" {
		return item.Description
	}
	if item.Eligibility != nil && len(item.Eligibility.Conditions) > 0 {
		parts := make([]string, len(item.Eligibility.Conditions))
		for i, c := range item.Eligibility.Conditions {
			parts[i] = c.String()
		}
		return strings.Join(parts, " and ")
	}
	return cat.Title
}

// eligible evaluates a predicate. A nil predicate always holds.
func (ctx EvalContext) eligible(e *model.Eligibility, name string) bool {
	if e == nil {
		return true
	}
	for _, c := range e.Conditions {
		v, ok := ctx.Measures.Value(c.Metric)
		if !ok || !c.Holds(v) {
			return false
		}
	}
	if e.Residential != nil && *e.Residential != ctx.Residential {
		return false
	}
	if len(e.RemoteTypes) > 0 && !ctx.remoteMatches(e.RemoteTypes) {
		return false
	}
	if e.OnRequest && !ctx.Services[normalizeName(name)] {
		return false
	}
	return true
}

func (ctx EvalContext) remoteMatches(types []model.RemoteType) bool {
	if !ctx.Remote.IsRemote() {
		return false
	}
	if ctx.Residential && !ctx.Remote.Residential {
		return false
	}
	if !ctx.Residential && !ctx.Remote.Commercial {
		return false
	}
	for _, t := range types {
		if t == ctx.Remote.Type {
			return true
		}
	}
	return false
}
