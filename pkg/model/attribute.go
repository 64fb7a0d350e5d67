package model

type attributeSettings struct {
	definition string
	base       *AttrMap
}

// AttributeOption customizes NewAttribute.
type AttributeOption func(*attributeSettings)

// WithDefinition sets the definition of the new attribute.
func WithDefinition(definition string) AttributeOption {
	return func(s *attributeSettings) {
		s.definition = definition
	}
}

// WithBase seeds the new attribute with a deep copy of base.
func WithBase(base *AttrMap) AttributeOption {
	return func(s *attributeSettings) {
		s.base = base
	}
}

// Attribute builds nested attribute dictionaries following the conventions:
// every dictionary starts with a definition key, leaves carry definition,
// value and unit keys in that order.
type Attribute struct {
	content *AttrMap
}

// NewAttribute builds an attribute dictionary, seeded from WithBase when
// given, with its definition key set.
func NewAttribute(opts ...AttributeOption) *Attribute {
	var settings attributeSettings
	for _, apply := range opts {
		apply(&settings)
	}
	a := &Attribute{content: NewAttrMap()}
	if settings.base != nil {
		a.content = settings.base.Copy()
	}
	a.content.Set(DefinitionKey, settings.definition)
	return a
}

// AddGroup adds a nested attribute group and returns the new group.
func (a *Attribute) AddGroup(name, definition string) *Attribute {
	group := NewAttribute(WithDefinition(definition))
	a.content.Set(name, group)
	return group
}

// AddValue adds a leaf holding value with its definition and unit, and
// returns the receiver for chaining.
func (a *Attribute) AddValue(name string, value interface{}, definition, unit string) *Attribute {
	leaf := NewAttrMap()
	leaf.Set(DefinitionKey, definition)
	leaf.Set(ValueKey, NormalizeValue(value))
	leaf.Set(UnitKey, unit)
	a.content.Set(name, leaf)
	return a
}

// AsMap materializes the attribute as an ordered dictionary, resolving
// nested groups recursively.
func (a *Attribute) AsMap() *AttrMap {
	out := NewAttrMap()
	for _, it := range a.content.items {
		if group, ok := it.value.(*Attribute); ok {
			out.Set(it.key, group.AsMap())
			continue
		}
		out.Set(it.key, CopyValue(it.value))
	}
	return out
}
