package generate

import (
	"github.com/dataarchitect/architect/internal/model"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var cmpIgnoreSQL = cmpopts.IgnoreFields(Artifact{}, "SQL")

func intPtr(i int) *int { return &i }

// testModel covers every entity kind: a knot, a plain anchor without staging,
// a single-source anchor with a composite key, a multi-source anchor and both
// static and historized attributes and ties.
func testModel() *model.Model {
	return &model.Model{
		Knots: []*model.Knot{
			{Mnemonic: "SEG", Descriptor: "Segment", Identity: "SMALLINT", DataRange: "VARCHAR(42)"},
			{Mnemonic: "CAT", Descriptor: "Category", Identity: "INT", DataRange: "VARCHAR(100)"},
		},
		Anchors: []*model.Anchor{
			{
				Mnemonic:   "PR",
				Descriptor: "Product",
				Identity:   "INT",
				Attributes: []*model.Attribute{
					{Mnemonic: "NAM", Descriptor: "Name", DataRange: "VARCHAR(100)"},
					{Mnemonic: "CAT", Descriptor: "Category", KnotRange: "CAT"},
				},
				StagingMappings: []*model.StagingMapping{
					{
						System:            "SAP",
						Tenant:            "ACME",
						Table:             "stg_sap_materials",
						NaturalKeyColumns: []string{"matnr"},
						Columns: []model.StagingColumn{
							{Name: "PR_ID", Type: "INT"},
							{Name: "matnr", Type: "VARCHAR(18)"},
							{Name: "maktx", Type: "VARCHAR(100)", MapsTo: "NAM"},
							{Name: "CAT_ID", Type: "INT"},
						},
						Priority: intPtr(5),
					},
					{
						System:            "Northwind",
						Tenant:            "ACME",
						Table:             "stg_nw_products",
						NaturalKeyColumns: []string{"product_id"},
						Columns: []model.StagingColumn{
							{Name: "PR_ID", Type: "INT"},
							{Name: "product_id", Type: "INT"},
							{Name: "product_name", Type: "VARCHAR(100)"},
							{Name: "CAT_ID", Type: "INT"},
						},
						ColumnMappings: map[string]string{"NAM": "product_name"},
						Priority:       intPtr(1),
					},
				},
			},
			{
				Mnemonic:   "CU",
				Descriptor: "Customer",
				Identity:   "INT",
				Attributes: []*model.Attribute{
					{Mnemonic: "NAM", Descriptor: "Name", DataRange: "VARCHAR(100)", TimeRange: "TIMESTAMP"},
					{Mnemonic: "SEG", Descriptor: "Segment", KnotRange: "SEG"},
				},
			},
			{
				Mnemonic:   "OR",
				Descriptor: "Order",
				Identity:   "BIGINT",
				Attributes: []*model.Attribute{
					{Mnemonic: "DAT", Descriptor: "Date", DataRange: "DATE"},
				},
				StagingMappings: []*model.StagingMapping{
					{
						System:            "Northwind",
						Tenant:            "ACME",
						Table:             "stg_nw_order_lines",
						NaturalKeyColumns: []string{"order_id", "line_no"},
						Columns: []model.StagingColumn{
							{Name: "OR_ID", Type: "BIGINT"},
							{Name: "order_id", Type: "INT"},
							{Name: "line_no", Type: "INT"},
							{Name: "order_date", Type: "DATE", MapsTo: "DAT"},
						},
					},
				},
			},
		},
		Ties: []*model.Tie{
			{
				Roles: []*model.Role{
					{Role: "placed", Type: "OR"},
					{Role: "by", Type: "CU"},
				},
				TimeRange: "TIMESTAMP",
			},
			{
				Roles: []*model.Role{
					{Role: "contains", Type: "PR"},
					{Role: "in", Type: "OR"},
				},
			},
		},
	}
}
