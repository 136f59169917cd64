package query

import (
	"strings"
	"testing"

	"mobide/models"
)

func TestCompileModelGroup(t *testing.T) {
	p := Compile(models.SearchFilter{Brand: "17200", Model: "group_7"}, 100)

	// "17200;;7;" url-escaped
	if p.MakeModel != "17200%3B%3B7%3B" {
		t.Fatalf("unexpected ms slot: %s", p.MakeModel)
	}
}

func TestCompilePlainModel(t *testing.T) {
	p := Compile(models.SearchFilter{Brand: "17200", Model: "5"}, 100)

	if p.MakeModel != "17200%3B5%3B%3B" {
		t.Fatalf("unexpected ms slot: %s", p.MakeModel)
	}
}

func TestCompileNullBrandAndModel(t *testing.T) {
	p := Compile(models.SearchFilter{Brand: "null", Model: "null"}, 100)

	if p.MakeModel != "%3B%3B%3B" {
		t.Fatalf("unexpected ms slot: %s", p.MakeModel)
	}
}

func TestCompilePagination(t *testing.T) {
	cases := []struct {
		page   int
		offset int
	}{
		{0, 0},
		{1, 0},
		{2, 20},
		{3, 40},
	}

	for _, c := range cases {
		p := Compile(models.SearchFilter{Page: c.page}, 100)
		if p.Offset == nil || *p.Offset != c.offset {
			t.Errorf("page %d: offset = %v, want %d", c.page, p.Offset, c.offset)
		}
		if p.PageSize == nil || *p.PageSize != PageSize {
			t.Errorf("page %d: page size = %v, want %d", c.page, p.PageSize, PageSize)
		}
	}
}

func TestCompileCurrencyAndPowerConversion(t *testing.T) {
	f := models.SearchFilter{
		Price: models.Range{From: "1000000", To: "5000000"},
		Power: models.Range{From: "150", To: "null"},
	}
	p := Compile(f, 100)

	if p.Price != "10000:50000" {
		t.Fatalf("price range = %q, want 10000:50000", p.Price)
	}
	// floor(150 / 1.36) = 110
	if p.Power != "110:" {
		t.Fatalf("power range = %q, want 110:", p.Power)
	}
}

func TestCompileSortDefaults(t *testing.T) {
	p := Compile(models.SearchFilter{}, 100)
	if p.SortBy != "rel" {
		t.Fatalf("default sort = %q, want rel", p.SortBy)
	}
	if p.Order != "" {
		t.Fatalf("default order = %q, want empty", p.Order)
	}

	p = Compile(models.SearchFilter{Sort: "p", Order: "asc"}, 100)
	if p.SortBy != "p" || p.Order != "up" {
		t.Fatalf("asc: got sb=%q od=%q", p.SortBy, p.Order)
	}

	p = Compile(models.SearchFilter{Sort: "p", Order: "desc"}, 100)
	if p.Order != "down" {
		t.Fatalf("desc: got od=%q", p.Order)
	}
}

func TestEncodeOmitsEmptyAndKeepsZeroFlags(t *testing.T) {
	p := CompileCount(models.SearchFilter{}, 100)
	qs := p.Encode()

	for _, want := range []string{"dam=0", "ps=0", "psz=0", "vc=Car"} {
		if !strings.Contains(qs, want) {
			t.Errorf("count query %q missing %s", qs, want)
		}
	}
	for _, absent := range []string{"p=", "ml=", "fr=", "pw=", "ms=", "sb=", "od=", "con="} {
		if strings.Contains(qs, absent) {
			t.Errorf("count query %q should omit %s", qs, absent)
		}
	}
}

func TestEncodeRepeatsFacets(t *testing.T) {
	p := Compile(models.SearchFilter{
		FuelTypes:     []string{"PETROL", "DIESEL"},
		Transmissions: []string{"AUTOMATIC_GEAR"},
	}, 100)
	qs := p.Encode()

	if !strings.Contains(qs, "ft=PETROL&ft=DIESEL") {
		t.Errorf("query %q missing repeated ft values", qs)
	}
	if !strings.Contains(qs, "tr=AUTOMATIC_GEAR") {
		t.Errorf("query %q missing tr value", qs)
	}
}

func TestEncodeSearchRequestMarker(t *testing.T) {
	qs := Compile(models.SearchFilter{}, 100).Encode()
	if !strings.Contains(qs, "isSearchRequest=true") {
		t.Fatalf("search query %q missing isSearchRequest", qs)
	}
	if !strings.Contains(qs, "ref=dsp") || !strings.Contains(qs, "s=Car") {
		t.Fatalf("search query %q missing endpoint constants", qs)
	}
}
