package database

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	CatalogTableName = "catalog"
	TeamTableName    = "team"
)

var (
	CatalogColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "name", Type: field.TypeString},
		{Name: "pokedex_number", Type: field.TypeInt},
		{Name: "sprite_url", Type: field.TypeString, Size: 2048},
		{Name: "primary_type", Type: field.TypeString},
		{Name: "secondary_type", Type: field.TypeString, Nullable: true},
		{Name: "region", Type: field.TypeString},
	}
	CatalogTable = &schema.Table{
		Name:       CatalogTableName,
		Columns:    CatalogColumns,
		PrimaryKey: []*schema.Column{CatalogColumns[0]},
	}

	TeamColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "entry_id", Type: field.TypeInt},
		{Name: "nickname", Type: field.TypeString, Nullable: true},
	}
	TeamTable = &schema.Table{
		Name:       TeamTableName,
		Columns:    TeamColumns,
		PrimaryKey: []*schema.Column{TeamColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "team_catalog_entry",
				Columns:    []*schema.Column{TeamColumns[1]},
				RefColumns: []*schema.Column{CatalogColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	Tables = []*schema.Table{
		CatalogTable,
		TeamTable,
	}
)

func init() {
	TeamTable.ForeignKeys[0].RefTable = CatalogTable
}
