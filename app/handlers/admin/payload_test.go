package admin

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestReadPayloadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": " Área ", "order": 3, "is_active": false, "unit": null, "tags": ["a"]}`))
	req.Header.Set("Content-Type", "application/json")

	p, err := readPayload(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.string("name", ""); got != "Área" {
		t.Errorf("name = %q", got)
	}
	if p.values["order"] != "3" || p.values["is_active"] != "false" {
		t.Errorf("values = %v", p.values)
	}
	if !p.has("unit") || p.values["unit"] != "" {
		t.Error("null should be present and empty")
	}
	if p.string("missing", "fallback") != "fallback" {
		t.Error("absent field should use the fallback")
	}
	if len(p.typeErrors["tags"]) != 1 {
		t.Errorf("typeErrors = %v", p.typeErrors)
	}
}

func TestReadPayloadForm(t *testing.T) {
	form := url.Values{"name": {"Caudal"}, "unit": {"L/s"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p, err := readPayload(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatal(err)
	}
	if p.string("name", "") != "Caudal" || p.string("unit", "") != "L/s" {
		t.Errorf("values = %v", p.values)
	}
}

func TestReadPayloadMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	if _, err := readPayload(httptest.NewRecorder(), req); err == nil {
		t.Error("expected an error for malformed JSON")
	}

	empty := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	p, err := readPayload(httptest.NewRecorder(), empty)
	if err != nil || len(p.values) != 0 {
		t.Errorf("empty body: %v %v", p, err)
	}
}

func TestCheckPrice(t *testing.T) {
	tests := map[string]string{
		"450000":      "",
		"450000.5":    "",
		"450000.00":   "",
		"99999999.99": "",
		"0.5":         "",
		"12.345":      msgPriceDecimalPlaces,
		"12.340":      msgPriceDecimalPlaces,
		"1.230":       msgPriceDecimalPlaces,
		"0.000":       msgPriceDecimalPlaces,
		"123456789":   msgPriceWholeDigits,
		"12345678901": msgPriceDigits,
		"1e9":         msgPriceDigits,
		"abc":         "A valid number is required.",
	}
	for value, want := range tests {
		got := checkPrice(value)
		if want == "" {
			if len(got) != 0 {
				t.Errorf("checkPrice(%q) = %v, want no errors", value, got)
			}
			continue
		}
		if len(got) != 1 || got[0] != want {
			t.Errorf("checkPrice(%q) = %v, want [%s]", value, got, want)
		}
	}
}
