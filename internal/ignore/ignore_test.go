package ignore

import (
	"testing"

	"github.com/dataarchitect/architect/internal/dialect"
	"github.com/dataarchitect/architect/internal/generate"
	"github.com/dataarchitect/architect/internal/model"
	"github.com/google/go-cmp/cmp"
)

func TestShouldIgnoreTable(t *testing.T) {
	c := &Config{Tables: []string{"stg_*", "!stg_nw_*", "CU_NAM_Customer_Name", "[bad"}}

	tests := map[string]bool{
		"stg_sap_products":     true,
		"stg_nw_customers":     false,
		"CU_NAM_Customer_Name": true,
		"CU_Customer":          false,
		"[bad":                 true,
	}
	for table, want := range tests {
		if got := c.ShouldIgnoreTable(table); got != want {
			t.Errorf("ShouldIgnoreTable(%s) = %v, want %v", table, got, want)
		}
	}

	var none *Config
	if none.ShouldIgnoreTable("stg_x") {
		t.Error("nil config ignored a table")
	}
}

func TestApply(t *testing.T) {
	m := &model.Model{Anchors: []*model.Anchor{{
		Mnemonic:   "CU",
		Descriptor: "Customer",
		Identity:   "INT",
		Attributes: []*model.Attribute{
			{Mnemonic: "NAM", Descriptor: "Name", DataRange: "TEXT"},
			{Mnemonic: "SEG", Descriptor: "Segment", DataRange: "TEXT"},
		},
	}}}
	res, err := generate.Compile(m, dialect.Postgres)
	if err != nil {
		t.Fatal(err)
	}

	c := &Config{Tables: []string{"CU_SEG_*"}}
	filtered := c.Apply(res)

	if diff := cmp.Diff([]string{"CU_Customer.sql", "CU_NAM_Customer_Name.sql"}, filtered.DDL.Names()); diff != "" {
		t.Errorf("DDL mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"CU_Customer_load.sql", "CU_NAM_Customer_Name_load.sql"}, filtered.DML.Names()); diff != "" {
		t.Errorf("DML mismatch (-want +got):\n%s", diff)
	}
	if res.DDL.Len() != 3 {
		t.Errorf("Apply modified its input: %v", res.DDL.Names())
	}

	if got := (&Config{}).Apply(res); got != res {
		t.Error("empty config should return the result unchanged")
	}
}
