package extraction

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

const (
	fieldSelector   = "input, select, textarea"
	displaySelector = "span[name], div[name], data[name]"

	// rows only take display text from spans and divs
	rowDisplaySelector = "span[name], div[name]"
)

// View is a rendered character sheet document
type View struct {
	doc *goquery.Document
}

// NewView wraps a parsed document. A nil document is an empty view.
func NewView(doc *goquery.Document) *View {
	return &View{doc: doc}
}

// ParseView parses sheet HTML into a view
func ParseView(r io.Reader) (*View, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse sheet document: %w", err)
	}
	return NewView(doc), nil
}

func (v *View) root() *goquery.Selection {
	if v == nil || v.doc == nil {
		return nil
	}
	return v.doc.Selection
}

// InputCount reports how many input elements the view holds
func (v *View) InputCount() int {
	root := v.root()
	if root == nil {
		return 0
	}
	return root.Find("input").Length()
}

// Attributes returns every named field value in the view keyed by its
// prefix-stripped name. Editable fields win over display text for the
// same key.
func (v *View) Attributes() models.Attributes {
	attrs := models.Attributes{}
	root := v.root()
	if root == nil {
		return attrs
	}

	root.Find(fieldSelector).Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			return
		}
		key := StripPrefix(name)

		if isToggle(s) {
			if isChecked(s) {
				attrs[key] = toggleValue(s)
			}
			return
		}
		if value := strings.TrimSpace(fieldValue(s)); value != "" {
			attrs[key] = value
		}
	})

	fillFromDisplay(root, displaySelector, attrs, StripPrefix)
	return attrs
}

// RepeatingGroup returns one row per direct child of the group's container,
// in document order. Keys are the field part of the repeating name. Rows
// without any value are dropped; a missing container yields no rows.
func (v *View) RepeatingGroup(group string) []models.Row {
	rows := []models.Row{}
	container := v.container(group)
	if container == nil {
		return rows
	}

	container.Children().Each(func(_ int, item *goquery.Selection) {
		row := models.Row{}
		item.Find(fieldSelector).Each(func(_ int, s *goquery.Selection) {
			name, ok := s.Attr("name")
			if !ok || name == "" {
				return
			}
			key := RowFieldKey(name)

			switch {
			case isCheckbox(s):
				if isChecked(s) {
					row[key] = "1"
				} else {
					row[key] = "0"
				}
			case isToggle(s):
				if isChecked(s) {
					row[key] = toggleValue(s)
				}
			default:
				if value := strings.TrimSpace(fieldValue(s)); value != "" {
					row[key] = value
				}
			}
		})
		fillFromDisplay(item, rowDisplaySelector, row, RowFieldKey)

		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows
}

// DisplayGroup reads groups whose rows keep their values in a display block
// rather than in editable fields. scope selects that block inside each
// .repitem row (".display" or ".display button"). Rows without the block or
// without any value are dropped.
func (v *View) DisplayGroup(group, scope string) []models.Row {
	rows := []models.Row{}
	container := v.container(group)
	if container == nil {
		return rows
	}

	container.Find(".repitem").Each(func(_ int, item *goquery.Selection) {
		block := item.Find(scope).First()
		if block.Length() == 0 {
			return
		}

		row := models.Row{}
		block.Find("[name]").Each(func(_ int, s *goquery.Selection) {
			key := StripPrefix(s.AttrOr("name", ""))
			if key == "" {
				return
			}
			if row[key] != "" {
				return
			}
			var value string
			if goquery.NodeName(s) == "input" {
				value = strings.TrimSpace(s.AttrOr("value", ""))
			} else {
				value = strings.TrimSpace(s.Text())
			}
			if value != "" {
				row[key] = value
			}
		})

		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows
}

func (v *View) container(group string) *goquery.Selection {
	root := v.root()
	if root == nil {
		return nil
	}
	sel := root.Find(fmt.Sprintf(`.repcontainer[data-groupname=%q]`, group)).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel
}

// fillFromDisplay adds the text of named display elements under scope for
// keys the editable fields did not already populate.
func fillFromDisplay(scope *goquery.Selection, selector string, dst map[string]string, keyOf func(string) string) {
	scope.Find(selector).Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			return
		}
		key := keyOf(name)
		if dst[key] != "" {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			dst[key] = text
		}
	})
}

func inputType(s *goquery.Selection) string {
	if goquery.NodeName(s) != "input" {
		return ""
	}
	return strings.ToLower(s.AttrOr("type", "text"))
}

func isCheckbox(s *goquery.Selection) bool {
	return inputType(s) == "checkbox"
}

func isToggle(s *goquery.Selection) bool {
	t := inputType(s)
	return t == "checkbox" || t == "radio"
}

func isChecked(s *goquery.Selection) bool {
	_, ok := s.Attr("checked")
	return ok
}

func toggleValue(s *goquery.Selection) string {
	if v := s.AttrOr("value", ""); v != "" {
		return v
	}
	return "1"
}

// fieldValue returns the current value of an input, select or textarea
func fieldValue(s *goquery.Selection) string {
	switch goquery.NodeName(s) {
	case "textarea":
		return s.Text()
	case "select":
		opt := s.Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = s.Find("option").First()
		}
		if v, ok := opt.Attr("value"); ok {
			return v
		}
		return opt.Text()
	default:
		return s.AttrOr("value", "")
	}
}
