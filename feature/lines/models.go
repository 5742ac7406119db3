package lines

import "time"

// TableName is the table the sync writes to.
const TableName = "mango_office__phone_numbers"

// PhoneNumber is the stored counterpart of a remote line, keyed by Number.
// LineID holds the vendor id but is never used to find a row.
type PhoneNumber struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	LineID     int64     `gorm:"column:line_id;not null"`
	Number     string    `gorm:"column:number;size:20;not null;uniqueIndex"`
	Name       *string   `gorm:"column:name;size:255"`
	Comment    *string   `gorm:"column:comment;type:text"`
	Region     string    `gorm:"column:region;size:10;not null"`
	SchemaID   int64     `gorm:"column:schema_id;not null"`
	SchemaName string    `gorm:"column:schema_name;size:255;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

// TableName overrides the table name used by GORM.
func (PhoneNumber) TableName() string {
	return TableName
}

// Columns lists every column the sync reads or writes.
var Columns = []string{
	"id", "line_id", "number", "name", "comment", "region",
	"schema_id", "schema_name", "created_at", "updated_at",
}
