// Package form maps field definitions to control descriptions and default values.
package form

import (
	"github.com/kailas-cloud/recordkit/internal/domain/creation"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype/field"
	"github.com/kailas-cloud/recordkit/internal/domain/record"
)

// Mode distinguishes a brand-new record form from editing an existing one.
type Mode string

const (
	// ModeCreate initializes values for a new record.
	ModeCreate Mode = "create"
	// ModeEdit renders values of an existing record.
	ModeEdit Mode = "edit"
)

// Widget is the control a renderer should draw.
type Widget string

// Widgets.
const (
	WidgetText     Widget = "text"
	WidgetTextarea Widget = "textarea"
	WidgetNumber   Widget = "number"
	WidgetToggle   Widget = "toggle"
	WidgetDate     Widget = "date"
	WidgetTime     Widget = "time"
	WidgetSelect   Widget = "select"
	WidgetGeoPoint Widget = "geopoint"
	WidgetRecord   Widget = "record"
)

// InputMode refines single-line text controls.
type InputMode string

// Input modes.
const (
	InputText  InputMode = "text"
	InputEmail InputMode = "email"
	InputURL   InputMode = "url"
	InputTel   InputMode = "tel"
)

// Reference describes the selector a reference control embeds.
type Reference struct {
	TypeSlug string          `json:"type_slug"`
	Creation creation.Config `json:"creation"`
}

// Control is the description of one editable field.
type Control struct {
	Name        string     `json:"name"`
	Label       string     `json:"label"`
	HelpText    string     `json:"help_text,omitempty"`
	Placeholder string     `json:"placeholder,omitempty"`
	Widget      Widget     `json:"widget"`
	InputMode   InputMode  `json:"input_mode,omitempty"`
	Step        string     `json:"step,omitempty"`
	Options     []string   `json:"options,omitempty"`
	Required    bool       `json:"required"`
	Disabled    bool       `json:"disabled"`
	Value       any        `json:"value"`
	Sub         []Control  `json:"sub,omitempty"`
	Reference   *Reference `json:"reference,omitempty"`
}

// Context carries the per-call rendering options.
type Context struct {
	Mode        Mode
	Label       string
	Placeholder string
	Required    bool
	Disabled    bool
}

// ContextFor builds the rendering context of a creation form field.
func ContextFor(f field.Field, cfg creation.Config, schemaRequired bool) Context {
	return Context{
		Mode:        ModeCreate,
		Label:       cfg.Label(f),
		Placeholder: cfg.Placeholder(f.Name()),
		Required:    schemaRequired || cfg.ExtraRequired(f.Name()),
	}
}

// Render describes the control for one field with its current value.
func Render(name string, f field.Field, value any, ctx Context) Control {
	c := Control{
		Name:        name,
		Label:       ctx.Label,
		HelpText:    f.Description(),
		Placeholder: ctx.Placeholder,
		Required:    ctx.Required,
		Disabled:    ctx.Disabled,
		Value:       value,
	}
	if c.Label == "" {
		c.Label = creation.Config{}.Label(f)
	}
	if c.HelpText == c.Label {
		c.HelpText = ""
	}
	if value == nil && ctx.Mode == ModeCreate {
		c.Value = Default(f, ModeCreate)
	}

	switch f.Kind() {
	case field.String:
		renderText(&c, f.Format())
	case field.Text:
		c.Widget = WidgetTextarea
	case field.Number:
		c.Widget = WidgetNumber
		c.Step = "any"
	case field.Integer:
		c.Widget = WidgetNumber
		c.Step = "1"
	case field.Boolean:
		c.Widget = WidgetToggle
		if _, ok := value.(bool); !ok {
			c.Value = false
		}
	case field.Date:
		c.Widget = WidgetDate
	case field.Time:
		c.Widget = WidgetTime
	case field.Enum:
		c.Widget = WidgetSelect
		c.Options = f.Options()
		if c.Placeholder == "" {
			c.Placeholder = "Select " + c.Label
		}
	case field.GeoPoint:
		renderPoint(&c, value)
	case field.Reference:
		c.Widget = WidgetRecord
		c.Reference = &Reference{TypeSlug: f.LinkedType(), Creation: creation.Nested(f)}
	default:
		// field.Any and kinds this build does not know.
		renderText(&c, field.FormatNone)
	}
	return c
}

func renderText(c *Control, format field.Format) {
	c.Widget = WidgetText
	switch format {
	case field.FormatEmail:
		c.InputMode = InputEmail
	case field.FormatURL:
		c.InputMode = InputURL
	case field.FormatPhone:
		c.InputMode = InputTel
	case field.FormatLongText:
		c.Widget = WidgetTextarea
	default:
		c.InputMode = InputText
	}
}

func renderPoint(c *Control, value any) {
	p := record.ParseGeoPoint(value)
	c.Widget = WidgetGeoPoint
	c.Value = p
	c.Sub = []Control{
		{Name: c.Name + ".latitude", Label: "Latitude", Widget: WidgetNumber, Step: "any",
			Required: c.Required, Disabled: c.Disabled, Value: p.Latitude},
		{Name: c.Name + ".longitude", Label: "Longitude", Widget: WidgetNumber, Step: "any",
			Required: c.Required, Disabled: c.Disabled, Value: p.Longitude},
	}
}
