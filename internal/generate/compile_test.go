package generate

import (
	"errors"
	"strings"
	"testing"

	"github.com/dataarchitect/architect/internal/dialect"
	"github.com/dataarchitect/architect/internal/keyset"
	"github.com/dataarchitect/architect/internal/model"
	"github.com/google/go-cmp/cmp"
)

func TestCompileOrder(t *testing.T) {
	res, err := Compile(testModel(), dialect.Postgres)
	if err != nil {
		t.Fatal(err)
	}

	wantDDL := []string{
		"CAT_Category.sql",
		"SEG_Segment.sql",
		"CU_Customer.sql",
		"CU_NAM_Customer_Name.sql",
		"CU_SEG_Customer_Segment.sql",
		"OR_Order.sql",
		"OR_DAT_Order_Date.sql",
		"PR_Product.sql",
		"PR_CAT_Product_Category.sql",
		"PR_NAM_Product_Name.sql",
		"CU_OR_by_placed.sql",
		"OR_PR_in_contains.sql",
		"stg_nw_order_lines.sql",
		"stg_nw_products.sql",
		"stg_sap_materials.sql",
	}
	if diff := cmp.Diff(wantDDL, res.DDL.Names()); diff != "" {
		t.Errorf("DDL order mismatch (-want +got):\n%s", diff)
	}

	wantDML := []string{
		"CAT_Category_load.sql",
		"SEG_Segment_load.sql",
		"CU_Customer_load.sql",
		"CU_NAM_Customer_Name_load.sql",
		"CU_SEG_Customer_Segment_load.sql",
		"OR_Order_load.sql",
		"OR_DAT_Order_Date_load.sql",
		"PR_Product_load_northwind.sql",
		"PR_CAT_Product_Category_load_northwind.sql",
		"PR_NAM_Product_Name_load_northwind.sql",
		"PR_Product_load_sap.sql",
		"PR_CAT_Product_Category_load_sap.sql",
		"PR_NAM_Product_Name_load_sap.sql",
		"CU_OR_by_placed_load.sql",
		"OR_PR_in_contains_load.sql",
	}
	if diff := cmp.Diff(wantDML, res.DML.Names()); diff != "" {
		t.Errorf("DML order mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileDeterministic(t *testing.T) {
	for _, d := range dialect.All() {
		t.Run(d.String(), func(t *testing.T) {
			first, err := Compile(testModel(), d)
			if err != nil {
				t.Fatal(err)
			}

			// Declaration order must not leak into the output.
			shuffled := testModel()
			shuffled.Anchors[0], shuffled.Anchors[2] = shuffled.Anchors[2], shuffled.Anchors[0]
			shuffled.Knots[0], shuffled.Knots[1] = shuffled.Knots[1], shuffled.Knots[0]
			shuffled.Ties[0], shuffled.Ties[1] = shuffled.Ties[1], shuffled.Ties[0]
			pr := shuffled.FindAnchor("PR")
			pr.StagingMappings[0], pr.StagingMappings[1] = pr.StagingMappings[1], pr.StagingMappings[0]

			second, err := Compile(shuffled, d)
			if err != nil {
				t.Fatal(err)
			}

			for _, pair := range []struct{ a, b *Output }{
				{first.DDL, second.DDL},
				{first.DML, second.DML},
			} {
				if diff := cmp.Diff(pair.a.Names(), pair.b.Names()); diff != "" {
					t.Errorf("names differ (-first +second):\n%s", diff)
				}
				for _, name := range pair.a.Names() {
					if diff := cmp.Diff(pair.a.SQL(name), pair.b.SQL(name)); diff != "" {
						t.Errorf("%s differs (-first +second):\n%s", name, diff)
					}
				}
			}
		})
	}
}

func TestCompileCustomerExample(t *testing.T) {
	m := &model.Model{Anchors: []*model.Anchor{{Mnemonic: "CU", Descriptor: "Customer", Identity: "INT"}}}

	res, err := Compile(m, dialect.Postgres)
	if err != nil {
		t.Fatal(err)
	}
	if res.DDL.Len() != 1 || res.DML.Len() != 1 {
		t.Fatalf("got %d DDL and %d DML artifacts, want 1 and 1", res.DDL.Len(), res.DML.Len())
	}
	if ddl := res.DDL.SQL("CU_Customer.sql"); !strings.Contains(ddl, "CU_ID INT PRIMARY KEY") {
		t.Errorf("anchor DDL:\n%s", ddl)
	}
	if dml := res.DML.SQL("CU_Customer_load.sql"); !strings.Contains(dml, "'architect-generated'") {
		t.Errorf("anchor DML:\n%s", dml)
	}
}

func TestCompileEmptyModel(t *testing.T) {
	res, err := Compile(&model.Model{}, dialect.TSQL)
	if err != nil {
		t.Fatal(err)
	}
	if res.DDL.Len() != 0 || res.DML.Len() != 0 {
		t.Errorf("empty model produced %v %v", res.DDL.Names(), res.DML.Names())
	}
	if res.Dialect != dialect.TSQL {
		t.Errorf("Dialect = %v", res.Dialect)
	}
}

func TestCompileMissingNaturalKey(t *testing.T) {
	m := &model.Model{Anchors: []*model.Anchor{{
		Mnemonic:        "CU",
		Descriptor:      "Customer",
		Identity:        "INT",
		StagingMappings: []*model.StagingMapping{{System: "S", Tenant: "T", Table: "stg_cu"}},
	}}}

	_, err := Compile(m, dialect.Postgres)
	if !errors.Is(err, keyset.ErrNoKeyColumns) {
		t.Fatalf("err = %v, want ErrNoKeyColumns", err)
	}
	if !strings.Contains(err.Error(), "anchor CU") {
		t.Errorf("error lacks anchor context: %v", err)
	}
}

func TestGenerateDMLArtifacts(t *testing.T) {
	out := GenerateDML(testModel(), dialect.Postgres)

	a, ok := out.Get("PR_NAM_Product_Name_load_sap.sql")
	if !ok {
		t.Fatal("missing sap attribute load")
	}
	want := &Artifact{
		Name:   "PR_NAM_Product_Name_load_sap.sql",
		Kind:   KindDML,
		Entity: "PR_NAM_Product_Name",
		Source: "sap",
	}
	if diff := cmp.Diff(want, a, cmpIgnoreSQL); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}
	if a.Asset() != "PR_NAM_Product_Name_sap" {
		t.Errorf("Asset() = %q", a.Asset())
	}

	hist, _ := out.Get("CU_NAM_Customer_Name_load.sql")
	if !hist.Historized || hist.Asset() != "CU_NAM_Customer_Name" {
		t.Errorf("historized artifact = %+v", hist)
	}
}

func TestResolveSources(t *testing.T) {
	tests := []struct {
		name     string
		mappings []*model.StagingMapping
		want     []string
	}{
		{"none", nil, []string{""}},
		{"single", []*model.StagingMapping{{System: "SAP"}}, []string{""}},
		{
			"distinct systems",
			[]*model.StagingMapping{{System: "SAP", Priority: intPtr(2)}, {System: "Northwind", Priority: intPtr(1)}},
			[]string{"northwind", "sap"},
		},
		{
			"same system by tenant",
			[]*model.StagingMapping{{System: "SAP", Tenant: "EU"}, {System: "sap", Tenant: "APAC"}},
			[]string{"sap_eu", "sap_apac"},
		},
		{
			"exact repeats",
			[]*model.StagingMapping{{System: "SAP", Tenant: "EU"}, {System: "SAP", Tenant: "EU"}, {System: "X"}},
			[]string{"sap_eu", "sap_eu_2", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources := resolveSources(tt.mappings)
			got := make([]string, len(sources))
			for i, s := range sources {
				got[i] = s.Suffix
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("suffixes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlanStagingFirstDeclarationWins(t *testing.T) {
	shared := "stg_shared"
	m := &model.Model{Anchors: []*model.Anchor{
		{Mnemonic: "ZZ", Descriptor: "Late", StagingMappings: []*model.StagingMapping{{System: "S", Table: shared, NaturalKeyColumns: []string{"z"}}}},
		{Mnemonic: "AA", Descriptor: "Early", StagingMappings: []*model.StagingMapping{{System: "S", Table: shared, NaturalKeyColumns: []string{"a"}}}},
	}}

	p := NewPlan(m)
	if len(p.Staging) != 1 {
		t.Fatalf("staging tables = %d, want 1", len(p.Staging))
	}
	if p.Staging[0].Anchor.Mnemonic != "AA" {
		t.Errorf("winner = %s, want AA", p.Staging[0].Anchor.Mnemonic)
	}
}

func TestOutputAddReplaces(t *testing.T) {
	out := NewOutput()
	out.Add(&Artifact{Name: "a.sql", SQL: "one"})
	out.Add(&Artifact{Name: "b.sql", SQL: "two"})
	out.Add(&Artifact{Name: "a.sql", SQL: "three"})

	if diff := cmp.Diff([]string{"a.sql", "b.sql"}, out.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if out.SQL("a.sql") != "three" {
		t.Errorf("SQL(a.sql) = %q", out.SQL("a.sql"))
	}
	if out.SQL("missing.sql") != "" {
		t.Error("SQL of missing artifact not empty")
	}
}
