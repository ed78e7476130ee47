package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/kbukum/rxfetch/errors"
)

type fetchSection struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type testConfig struct {
	Fetch fetchSection `mapstructure:"fetch"`
	IDs   []int        `mapstructure:"ids" validate:"required,min=1,unique,dive,gt=0"`
	Mode  string       `mapstructure:"mode" validate:"omitempty,oneof=all single"`
}

func fieldsOf(t *testing.T, err error) []FieldError {
	t.Helper()
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected field details, got %v", appErr.Details)
	}
	return fields
}

func TestValidate_Struct(t *testing.T) {
	valid := testConfig{
		Fetch: fetchSection{BaseURL: "http://localhost:8081"},
		IDs:   []int{1, 3, 4},
	}

	tests := []struct {
		name      string
		mutate    func(*testConfig)
		wantField string
		wantMsg   string
	}{
		{"valid", func(*testConfig) {}, "", ""},
		{"missing url", func(c *testConfig) { c.Fetch.BaseURL = "" }, "fetch.base_url", "is required"},
		{"bad url", func(c *testConfig) { c.Fetch.BaseURL = "not a url" }, "fetch.base_url", "must be a valid URL"},
		{"negative timeout", func(c *testConfig) { c.Fetch.Timeout = -time.Second }, "fetch.timeout", "must be 0 or more"},
		{"no ids", func(c *testConfig) { c.IDs = nil }, "ids", "is required"},
		{"empty ids", func(c *testConfig) { c.IDs = []int{} }, "ids", "must have at least 1 entries"},
		{"duplicate ids", func(c *testConfig) { c.IDs = []int{1, 1} }, "ids", "must not contain duplicates"},
		{"zero id", func(c *testConfig) { c.IDs = []int{1, 0} }, "ids[1]", "must be greater than 0"},
		{"bad mode", func(c *testConfig) { c.Mode = "some" }, "mode", "must be one of: all single"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.IDs = append([]int(nil), valid.IDs...)
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			fields := fieldsOf(t, err)
			if len(fields) != 1 || fields[0].Field != tt.wantField || fields[0].Message != tt.wantMsg {
				t.Errorf("got %+v, want %s: %s", fields, tt.wantField, tt.wantMsg)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("message should name the field: %v", err)
			}
		})
	}
}

func TestValidate_NotAStruct(t *testing.T) {
	if err := Validate(42); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestValidator_PositiveInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantMsg string
	}{
		{"3", 3, ""},
		{"", 0, "is required"},
		{"abc", 0, "must be an integer"},
		{"0", 0, "must be greater than 0"},
		{"-2", 0, "must be greater than 0"},
	}
	for _, tt := range tests {
		v := New()
		got := v.PositiveInt("id", tt.in)
		if got != tt.want {
			t.Errorf("%q: got %d, want %d", tt.in, got, tt.want)
		}
		if tt.wantMsg == "" {
			if v.HasErrors() {
				t.Errorf("%q: unexpected errors %v", tt.in, v.Errors())
			}
			continue
		}
		if !v.HasErrors() || v.Errors()[0].Message != tt.wantMsg {
			t.Errorf("%q: got %v, want %q", tt.in, v.Errors(), tt.wantMsg)
		}
	}
}

func TestValidator_Chain(t *testing.T) {
	v := New().
		Required("name", " ").
		Range("latency", 20000, 0, 10000).
		OneOf("format", "xml", []string{"json", "console"}).
		Custom(false, "ids", "must be unique")

	if len(v.Errors()) != 4 {
		t.Fatalf("expected 4 errors, got %v", v.Errors())
	}
	err := v.Validate()
	if err == nil || !strings.Contains(err.Error(), "latency: must be between 0 and 10000") {
		t.Errorf("unexpected error %v", err)
	}
	if New().Required("name", "ok").Validate() != nil {
		t.Error("expected no error")
	}
}
