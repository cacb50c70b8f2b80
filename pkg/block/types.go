package block

// Type is the discriminator the upstream document API puts on every block.
type Type string

const (
	TypeParagraph        Type = "paragraph"
	TypeHeading1         Type = "heading_1"
	TypeHeading2         Type = "heading_2"
	TypeHeading3         Type = "heading_3"
	TypeBulletedListItem Type = "bulleted_list_item"
	TypeNumberedListItem Type = "numbered_list_item"
	TypeCode             Type = "code"
	TypeQuote            Type = "quote"
	TypeCallout          Type = "callout"
	TypeImage            Type = "image"
	TypeVideo            Type = "video"
	TypeEmbed            Type = "embed"
	TypeDivider          Type = "divider"
	TypeToggle           Type = "toggle"
	TypeToDo             Type = "to_do"
	TypeBookmark         Type = "bookmark"
	TypeTable            Type = "table"
	TypeTableRow         Type = "table_row"
	TypeColumnList       Type = "column_list"
	TypeColumn           Type = "column"
	TypeEquation         Type = "equation"
	TypeTableOfContents  Type = "table_of_contents"
)

const (
	ColorDefault = "default"
)

// Block is a single node of a content tree. Children are attached by the
// caller before rendering and keep the upstream sibling order.
type Block struct {
	ID          string
	Type        Type
	HasChildren bool
	Children    Blocks
	Payload     Payload
}

type Blocks []Block

// Payload carries the variant specific fields of a block. The set of
// implementations is closed, Unknown catches every type this package does
// not know about.
type Payload interface {
	payload()
}

type Paragraph struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

type Heading struct {
	RichText     []RichText `json:"rich_text"`
	Color        string     `json:"color,omitempty"`
	IsToggleable bool       `json:"is_toggleable"`

	Level int `json:"-"`
}

// ListItem is the payload of both bulleted and numbered list items. The
// block's Type decides which list container it is grouped into.
type ListItem struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

type Code struct {
	RichText []RichText `json:"rich_text"`
	Caption  []RichText `json:"caption,omitempty"`
	Language string     `json:"language,omitempty"`
}

type Quote struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

type Callout struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
	Icon     *Icon      `json:"icon,omitempty"`
}

type Icon struct {
	Type     string `json:"type"`
	Emoji    string `json:"emoji,omitempty"`
	External *Link  `json:"external,omitempty"`
	File     *Link  `json:"file,omitempty"`
}

// URL returns the image location of an external or hosted icon.
func (i Icon) URL() string {
	if i.External != nil && i.External.URL != "" {
		return i.External.URL
	}
	if i.File != nil {
		return i.File.URL
	}

	return ""
}

type Link struct {
	URL string `json:"url"`
}

// Media is the payload of image and video blocks. Upstream populates either
// External or File, never both.
type Media struct {
	Type     string     `json:"type,omitempty"`
	External *Link      `json:"external,omitempty"`
	File     *Link      `json:"file,omitempty"`
	Caption  []RichText `json:"caption,omitempty"`
}

// URL resolves the media location. An external link wins over a hosted file.
func (m Media) URL() string {
	if m.External != nil && m.External.URL != "" {
		return m.External.URL
	}
	if m.File != nil {
		return m.File.URL
	}

	return ""
}

type Image struct {
	Media
}

type Video struct {
	Media
}

type Embed struct {
	URL     string     `json:"url"`
	Caption []RichText `json:"caption,omitempty"`
}

type Bookmark struct {
	URL     string     `json:"url"`
	Caption []RichText `json:"caption,omitempty"`
}

type Divider struct{}

type Toggle struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

type ToDo struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
	Color    string     `json:"color,omitempty"`
}

type Table struct {
	TableWidth      int  `json:"table_width"`
	HasColumnHeader bool `json:"has_column_header"`
	HasRowHeader    bool `json:"has_row_header"`
}

type TableRow struct {
	Cells [][]RichText `json:"cells"`
}

type ColumnList struct{}

type Column struct{}

type Equation struct {
	Expression string `json:"expression"`
}

type TableOfContents struct {
	Color string `json:"color,omitempty"`
}

// Unknown is the payload of every block type that is not modelled above.
type Unknown struct {
	Type Type `json:"-"`
}

func (Paragraph) payload()       {}
func (Heading) payload()         {}
func (ListItem) payload()        {}
func (Code) payload()            {}
func (Quote) payload()           {}
func (Callout) payload()         {}
func (Image) payload()           {}
func (Video) payload()           {}
func (Embed) payload()           {}
func (Bookmark) payload()        {}
func (Divider) payload()         {}
func (Toggle) payload()          {}
func (ToDo) payload()            {}
func (Table) payload()           {}
func (TableRow) payload()        {}
func (ColumnList) payload()      {}
func (Column) payload()          {}
func (Equation) payload()        {}
func (TableOfContents) payload() {}
func (Unknown) payload()         {}
