package block

import (
	"encoding/json"

	"github.com/xh3b4sd/tracer"
)

type wireBlock struct {
	Object      string `json:"object,omitempty"`
	ID          string `json:"id"`
	Type        Type   `json:"type"`
	HasChildren bool   `json:"has_children"`
	Children    Blocks `json:"children,omitempty"`
}

// UnmarshalJSON decodes the upstream wire shape, where the variant fields
// live under a key named like the block type.
func (b *Block) UnmarshalJSON(data []byte) error {
	var w wireBlock
	err := json.Unmarshal(data, &w)
	if err != nil {
		return tracer.Mask(err)
	}

	var raw map[string]json.RawMessage
	err = json.Unmarshal(data, &raw)
	if err != nil {
		return tracer.Mask(err)
	}

	p, err := decodePayload(w.Type, raw[string(w.Type)])
	if err != nil {
		return tracer.Mask(err)
	}

	*b = Block{
		ID:          w.ID,
		Type:        w.Type,
		HasChildren: w.HasChildren,
		Children:    w.Children,
		Payload:     p,
	}

	return nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	var err error

	var base []byte
	{
		base, err = json.Marshal(wireBlock{
			Object:      "block",
			ID:          b.ID,
			Type:        b.Type,
			HasChildren: b.HasChildren,
			Children:    b.Children,
		})
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var raw map[string]json.RawMessage
	{
		err = json.Unmarshal(base, &raw)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	if _, ok := b.Payload.(Unknown); !ok && b.Payload != nil && b.Type != "" {
		p, err := json.Marshal(b.Payload)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		raw[string(b.Type)] = p
	}

	return json.Marshal(raw)
}

func decodePayload(t Type, raw json.RawMessage) (Payload, error) {
	var p Payload

	switch t {
	case TypeParagraph:
		p = &Paragraph{}
	case TypeHeading1, TypeHeading2, TypeHeading3:
		p = &Heading{}
	case TypeBulletedListItem, TypeNumberedListItem:
		p = &ListItem{}
	case TypeCode:
		p = &Code{}
	case TypeQuote:
		p = &Quote{}
	case TypeCallout:
		p = &Callout{}
	case TypeImage:
		p = &Image{}
	case TypeVideo:
		p = &Video{}
	case TypeEmbed:
		p = &Embed{}
	case TypeDivider:
		return Divider{}, nil
	case TypeToggle:
		p = &Toggle{}
	case TypeToDo:
		p = &ToDo{}
	case TypeBookmark:
		p = &Bookmark{}
	case TypeTable:
		p = &Table{}
	case TypeTableRow:
		p = &TableRow{}
	case TypeColumnList:
		return ColumnList{}, nil
	case TypeColumn:
		return Column{}, nil
	case TypeEquation:
		p = &Equation{}
	case TypeTableOfContents:
		p = &TableOfContents{}
	default:
		return Unknown{Type: t}, nil
	}

	if len(raw) != 0 && string(raw) != "null" {
		err := json.Unmarshal(raw, p)
		if err != nil {
			return nil, tracer.Maskf(invalidPayloadError, "%s: %s", t, err)
		}
	}

	return deref(t, p), nil
}

func deref(t Type, p Payload) Payload {
	switch v := p.(type) {
	case *Paragraph:
		return *v
	case *Heading:
		h := *v
		h.Level = headingLevel(t)
		return h
	case *ListItem:
		return *v
	case *Code:
		return *v
	case *Quote:
		return *v
	case *Callout:
		return *v
	case *Image:
		return *v
	case *Video:
		return *v
	case *Embed:
		return *v
	case *Toggle:
		return *v
	case *ToDo:
		return *v
	case *Bookmark:
		return *v
	case *Table:
		return *v
	case *TableRow:
		return *v
	case *Equation:
		return *v
	case *TableOfContents:
		return *v
	}

	return p
}

func headingLevel(t Type) int {
	switch t {
	case TypeHeading1:
		return 1
	case TypeHeading2:
		return 2
	default:
		return 3
	}
}
