package generate

import (
	"strings"

	"github.com/dataarchitect/architect/internal/dialect"
	"github.com/dataarchitect/architect/internal/model"
)

const (
	ChangedAt          = "changed_at"
	RecordedAt         = "recorded_at"
	MetadataRecordedAt = "metadata_recorded_at"
	MetadataRecordedBy = "metadata_recorded_by"
	MetadataID         = "metadata_id"
	KeysetID           = "keyset_id"

	metadataStringType = "VARCHAR(255)"
	keysetType         = "VARCHAR(500)"

	// DefaultIdentityType is used for a foreign key whose target identity
	// type is unknown
	DefaultIdentityType = "BIGINT"
)

// Column is one column of a generated table
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
	Generated  string // expression of a stored computed column
}

// Definition renders the column as it appears inside CREATE TABLE
func (c Column) Definition(d dialect.Dialect) string {
	if c.Generated != "" {
		return d.GeneratedColumn(c.Name, c.Type, c.Generated)
	}

	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString(" ")
	b.WriteString(c.Type)
	if c.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	} else if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	return b.String()
}

// BitemporalColumns returns the valid-time and transaction-time pair
func BitemporalColumns(d dialect.Dialect) []Column {
	return []Column{
		{Name: ChangedAt, Type: d.TimestampType(), NotNull: true},
		{Name: RecordedAt, Type: d.TimestampType(), NotNull: true},
	}
}

// MetadataColumns returns the metadata triple carried by every table
func MetadataColumns(d dialect.Dialect) []Column {
	return []Column{
		{Name: MetadataRecordedAt, Type: d.TimestampType(), NotNull: true},
		{Name: MetadataRecordedBy, Type: metadataStringType},
		{Name: MetadataID, Type: metadataStringType},
	}
}

// KeysetColumn returns the computed keyset_id column of a staging table fed
// by mapping into anchor a.
func KeysetColumn(a *model.Anchor, mapping *model.StagingMapping, d dialect.Dialect) (Column, error) {
	expr, err := MappingKeysetExpr(a, mapping, d)
	if err != nil {
		return Column{}, err
	}
	return Column{Name: KeysetID, Type: keysetType, Generated: expr}, nil
}

// identityType resolves the type of the identity a foreign key refers to
func identityType(identities map[string]string, mnemonic string) string {
	if t := identities[mnemonic]; t != "" {
		return t
	}
	return DefaultIdentityType
}
