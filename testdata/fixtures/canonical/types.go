package canonical

// UUID is a 16 byte identifier.
type UUID [16]byte

// Identifier is implemented by stored records.
type Identifier interface {
	// Identity returns the primary key.
	//
	// @return UUID
	Identity() UUID
}

type TestEmbedded struct {
	ID UUID `gorm:"primary_key" json:"id" yaml:"id" mapstructure:"id"`
}

// Identity returns ID.
func (e TestEmbedded) Identity() UUID { return e.ID }

type PrimaryKey interface {
	~string | ~[]byte |
		// smaller int primary key types can be used for enums with small id spaces
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		// UUIDs, ULIDs, etc.
		~[16]byte
}

type TestEmbeddedGeneric[T PrimaryKey] struct {
	ID T `gorm:"primary_key" json:"id" yaml:"id" mapstructure:"id"`
}

// TestWidget is a widget.
//
// @see TestWodget
type TestWidget struct {
	TestEmbedded `gorm:",embedded" mapstructure:",squash" json:",inline" yaml:",inline" dto:"-"`
	WodgetID     UUID   `gorm:"type:uuid;" json:"wodget_id" yaml:"wodget_id" mapstructure:"wodget_id"`
	Name         string `gorm:"type:text;" json:"name" yaml:"name" mapstructure:"name"`
	Category     int    `gorm:"type:numeric(2);" json:"age" yaml:"age" mapstructure:"age"`
}

type TestWidgets []*TestWidget

type TestWodget struct {
	TestEmbedded `gorm:",embedded" mapstructure:",squash" json:",inline" yaml:",inline" dto:"-"`
	Widgets      TestWidgets `gorm:"foreignkey:WodgetID" json:"widgets" yaml:"widgets" mapstructure:"widgets"`
}

type TestWodgets []TestWodget

type TestWadget struct {
	Ref UUID   `gorm:"type:uuid;primaryKey" json:"ref" yaml:"ref" mapstructure:"ref"`
	Key string `gorm:"primary_key" json:"key" yaml:"key" mapstructure:"key"`
	// DepField is going away.
	//
	// Deprecated: this field will be removed in a subsequent release
	DepField string      `gorm:"type:text;" json:"dep_field" yaml:"dep_field" mapstructure:"dep_field"`
	WodgetID UUID        `gorm:"type:uuid;" json:"wodget_id" yaml:"wodget_id" mapstructure:"wodget_id"`
	Wodgets  TestWodgets `gorm:"foreignkey:WodgetID" json:"wodgets" yaml:"wodgets" mapstructure:"wodgets"`
}

// TestDeprecatedStruct is kept for old clients.
//
// Deprecated: use TestWidget.
type TestDeprecatedStruct struct {
	TestEmbedded `gorm:",embedded" mapstructure:",squash" json:",inline" yaml:",inline"  dto:"-"`
}

type TestWidgetGeneric struct {
	TestEmbeddedGeneric[UUID] `gorm:",embedded" mapstructure:",squash" json:",inline" yaml:",inline"`
	WidgetID                  UUID `json:"widget_id" mapstructure:"widget_id" yaml:"widget_id"`
}
