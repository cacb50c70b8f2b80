package block

import (
	"encoding/json"
	"strings"

	"github.com/xh3b4sd/tracer"
)

const (
	KindText     = "text"
	KindEquation = "equation"
	KindMention  = "mention"
)

// RichText is one styled inline run. Equation runs carry their expression
// instead of styled text.
type RichText struct {
	Kind        string
	PlainText   string
	Href        string
	Expression  string
	Annotations Annotations
}

type Annotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color"`
}

type wireRichText struct {
	Type        string       `json:"type"`
	PlainText   string       `json:"plain_text"`
	Href        *string      `json:"href"`
	Annotations *Annotations `json:"annotations,omitempty"`
	Text        *wireText    `json:"text,omitempty"`
	Equation    *Equation    `json:"equation,omitempty"`
}

type wireText struct {
	Content string `json:"content"`
	Link    *Link  `json:"link"`
}

func (r *RichText) UnmarshalJSON(data []byte) error {
	var w wireRichText
	err := json.Unmarshal(data, &w)
	if err != nil {
		return tracer.Mask(err)
	}

	*r = RichText{
		Kind:      w.Type,
		PlainText: w.PlainText,
	}

	if r.Kind == "" {
		r.Kind = KindText
	}
	if w.Href != nil {
		r.Href = *w.Href
	}
	if w.Annotations != nil {
		r.Annotations = *w.Annotations
	}
	if w.Text != nil {
		if r.PlainText == "" {
			r.PlainText = w.Text.Content
		}
		if r.Href == "" && w.Text.Link != nil {
			r.Href = w.Text.Link.URL
		}
	}
	if w.Equation != nil {
		r.Expression = w.Equation.Expression
		if r.PlainText == "" {
			r.PlainText = r.Expression
		}
	}

	return nil
}

func (r RichText) MarshalJSON() ([]byte, error) {
	w := wireRichText{
		Type:      r.Kind,
		PlainText: r.PlainText,
	}

	if w.Type == "" {
		w.Type = KindText
	}
	if r.Href != "" {
		h := r.Href
		w.Href = &h
	}
	{
		a := r.Annotations
		if a.Color == "" {
			a.Color = ColorDefault
		}
		w.Annotations = &a
	}

	switch w.Type {
	case KindEquation:
		w.Equation = &Equation{Expression: r.Expression}
	case KindText:
		w.Text = &wireText{Content: r.PlainText}
		if r.Href != "" {
			w.Text.Link = &Link{URL: r.Href}
		}
	}

	b, err := json.Marshal(w)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return b, nil
}

// PlainText concatenates the unstyled text of all spans.
func PlainText(spans []RichText) string {
	var builder strings.Builder
	for _, s := range spans {
		builder.WriteString(s.PlainText)
	}
	return builder.String()
}
