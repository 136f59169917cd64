package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"mobide/models"
)

const (
	// PageSize is fixed by the provider's mobile API.
	PageSize = 20

	// powerUnitRatio converts horsepower (PS) to the unit the provider
	// expects in the pw parameter.
	powerUnitRatio = 1.36
)

// Params is the compiled provider query. Fields map 1:1 to provider
// parameter names (see Encode). Pointer fields distinguish "exactly
// zero", which the provider treats as a meaningful flag value, from
// "not selected"; string fields and facet slices are omitted when
// empty.
type Params struct {
	Damage          *int     // dam: 0 = undamaged only
	Ref             string   // ref
	Scope           string   // s
	SortBy          string   // sb
	Order           string   // od: "up" / "down"
	VehicleClass    string   // vc
	Price           string   // p: range token, provider currency
	MakeModel       string   // ms: "<brand>;<model>;<group>;"
	Mileage         string   // ml: range token
	IsSearchRequest bool     // isSearchRequest
	Offset          *int     // ps: zero-based result offset
	PageSize        *int     // psz
	FirstReg        string   // fr: first-registration year range
	Power           string   // pw: range token, provider power unit
	FuelTypes       []string // ft
	Bodies          []string // c
	Transmissions   []string // tr
	Features        []string // fe
	Condition       string   // con
}

// Encode renders the query string in a fixed parameter order. Facet
// slices become repeated key=value pairs.
func (p Params) Encode() string {
	var parts []string

	addInt := func(key string, v *int) {
		if v != nil {
			parts = append(parts, key+"="+strconv.Itoa(*v))
		}
	}
	addStr := func(key, v string) {
		if v != "" {
			parts = append(parts, key+"="+v)
		}
	}
	addMulti := func(key string, vs []string) {
		for _, v := range vs {
			parts = append(parts, key+"="+v)
		}
	}

	addInt("dam", p.Damage)
	addStr("ref", p.Ref)
	addStr("s", p.Scope)
	addStr("sb", p.SortBy)
	addStr("od", p.Order)
	addStr("vc", p.VehicleClass)
	addStr("p", p.Price)
	addStr("ms", p.MakeModel)
	addStr("ml", p.Mileage)
	if p.IsSearchRequest {
		parts = append(parts, "isSearchRequest=true")
	}
	addInt("ps", p.Offset)
	addInt("psz", p.PageSize)
	addStr("fr", p.FirstReg)
	addStr("pw", p.Power)
	addMulti("ft", p.FuelTypes)
	addMulti("c", p.Bodies)
	addMulti("tr", p.Transmissions)
	addMulti("fe", p.Features)
	addStr("con", p.Condition)

	return strings.Join(parts, "&")
}

// Compile maps a SearchFilter onto the provider's listing-search
// parameters. Price bounds are converted from the target currency back
// to the provider's (floor(price/rate)); power bounds from PS to the
// provider unit (floor(hp/1.36)). Pagination becomes a zero-based
// offset with a fixed page size of 20.
func Compile(f models.SearchFilter, rate float64) Params {
	brand := cleanCode(f.Brand)
	model, group := f.ModelGroup()

	page := f.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	sortBy := f.Sort
	if sortBy == "" {
		sortBy = "rel"
	}

	return Params{
		Damage:          intp(0),
		Ref:             "dsp",
		Scope:           "Car",
		SortBy:          sortBy,
		Order:           sortOrder(f.Order),
		VehicleClass:    "Car",
		Price:           convertedRange(f.Price, rate),
		MakeModel:       url.QueryEscape(brand + ";" + model + ";" + group + ";"),
		Mileage:         EncodeRange(f.Mileage.From, f.Mileage.To),
		IsSearchRequest: true,
		Offset:          intp(offset),
		PageSize:        intp(PageSize),
		FirstReg:        EncodeRange(f.Year.From, f.Year.To),
		Power:           powerRange(f.Power),
		FuelTypes:       f.FuelTypes,
		Bodies:          f.Bodies,
		Transmissions:   f.Transmissions,
		Features:        f.Features,
		Condition:       f.Condition,
	}
}

// CompileCount maps a SearchFilter onto the hit-count endpoint's
// parameters: no sort, no pagination, and the ps/psz flags pinned to
// zero (zero is a meaningful selection there, not "missing").
func CompileCount(f models.SearchFilter, rate float64) Params {
	brand := cleanCode(f.Brand)
	model, group := f.ModelGroup()

	var makeModel string
	if brand != "" || model != "" || group != "" {
		makeModel = brand + ";" + model + ";" + group + ";"
	}

	return Params{
		Damage:        intp(0),
		Offset:        intp(0),
		PageSize:      intp(0),
		VehicleClass:  "Car",
		Price:         convertedRange(f.Price, rate),
		MakeModel:     makeModel,
		Mileage:       EncodeRange(f.Mileage.From, f.Mileage.To),
		FirstReg:      EncodeRange(f.Year.From, f.Year.To),
		Power:         powerRange(f.Power),
		FuelTypes:     f.FuelTypes,
		Bodies:        f.Bodies,
		Transmissions: f.Transmissions,
		Features:      f.Features,
		Condition:     f.Condition,
	}
}

func sortOrder(order string) string {
	switch order {
	case "asc":
		return "up"
	case "desc":
		return "down"
	default:
		return ""
	}
}

// convertedRange converts both bounds from the target currency to the
// provider's native one before encoding.
func convertedRange(r models.Range, rate float64) string {
	return EncodeRange(divideBound(r.From, rate), divideBound(r.To, rate))
}

func powerRange(r models.Range) string {
	return EncodeRange(divideBound(r.From, powerUnitRatio), divideBound(r.To, powerUnitRatio))
}

// divideBound parses an optional numeric bound and returns
// floor(v/divisor) as a string. Unparseable bounds count as absent.
func divideBound(v string, divisor float64) string {
	if v == "" || v == "null" {
		return ""
	}
	n, err := strconv.Atoi(v)
	if err != nil || divisor == 0 {
		return ""
	}
	return strconv.Itoa(int(math.Floor(float64(n) / divisor)))
}

func cleanCode(v string) string {
	if v == "null" {
		return ""
	}
	return v
}

func intp(v int) *int {
	return &v
}
