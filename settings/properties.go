package settings

// PropertyType identifies the kind of editor a host shows for a property.
type PropertyType uint8

const (
	// PropertyList is a drop-down list of string values.
	PropertyList PropertyType = iota + 1
)

// ListItem is one selectable entry of a list property.
type ListItem struct {
	// Label is the localized display text.
	Label string

	// Value is the token stored in settings.
	Value string
}

// Property describes one editable setting.
type Property struct {
	Name        string
	Description string
	Type        PropertyType
	Items       []ListItem
}

// AddString appends a list item.
func (p *Property) AddString(label, value string) {
	p.Items = append(p.Items, ListItem{Label: label, Value: value})
}

// Properties is an ordered set of property descriptions.
type Properties struct {
	list []*Property
}

// NewProperties creates an empty property set.
func NewProperties() *Properties {
	return &Properties{}
}

// AddList adds a list property and returns it for item population.
func (ps *Properties) AddList(name, description string) *Property {
	p := &Property{Name: name, Description: description, Type: PropertyList}
	ps.list = append(ps.list, p)
	return p
}

// Get returns the named property, or nil.
func (ps *Properties) Get(name string) *Property {
	for _, p := range ps.list {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// All returns the properties in insertion order.
func (ps *Properties) All() []*Property {
	return ps.list
}
