// Package workspace declares the shape of workspace documents.
//
// The descriptor returned by Schema is consumed by the validating document
// store; nothing in this package validates records itself.
package workspace

// Property types used by the descriptor.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

// SchemaVersion is bumped whenever the record shape changes.
const SchemaVersion = 0

// Property describes one field of a document.
type Property struct {
	Type       string               `json:"type"`
	Primary    bool                 `json:"primary,omitempty"`
	Properties map[string]*Property `json:"properties,omitempty"`
	Items      *Property            `json:"items,omitempty"`
}

// Descriptor is a versioned description of a document collection.
type Descriptor struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     int    `json:"version"`
	Property
}

// Schema returns the workspace descriptor. Each call builds a fresh value.
func Schema() Descriptor {
	return Descriptor{
		Title:       "workspace schema",
		Description: "Schema for workspaces of Reactive Desktop",
		Version:     SchemaVersion,
		Property: object(map[string]*Property{
			"id":   {Type: TypeString, Primary: true},
			"name": scalar(TypeString),
			"avatars": {
				Type:  TypeArray,
				Items: avatarProperty(),
			},
		}),
	}
}

func avatarProperty() *Property {
	geometry := object(map[string]*Property{
		"x":      scalar(TypeNumber),
		"y":      scalar(TypeNumber),
		"z":      scalar(TypeNumber),
		"width":  scalar(TypeNumber),
		"height": scalar(TypeNumber),
	})
	style := object(map[string]*Property{
		"uiColor":         scalar(TypeString),
		"backgroundColor": scalar(TypeString),
		"opacity":         scalar(TypeNumber),
		"zoom":            scalar(TypeNumber),
	})
	condition := object(map[string]*Property{
		"locked": scalar(TypeBoolean),
	})
	date := object(map[string]*Property{
		"createdDate":  scalar(TypeString),
		"modifiedDate": scalar(TypeString),
	})

	avatar := object(map[string]*Property{
		"geometry":  &geometry,
		"style":     &style,
		"condition": &condition,
		"date":      &date,
		"id":        scalar(TypeString),
	})
	return &avatar
}

func object(properties map[string]*Property) Property {
	return Property{Type: TypeObject, Properties: properties}
}

func scalar(kind string) *Property {
	return &Property{Type: kind}
}

// PrimaryKey returns the name of the top-level primary property.
func (descriptor Descriptor) PrimaryKey() string {
	for name, property := range descriptor.Properties {
		if property != nil && property.Primary {
			return name
		}
	}
	return ""
}

// Lookup walks nested properties by name. Array items are entered
// transparently, so Lookup("avatars", "style", "zoom") reaches the zoom field.
func (property *Property) Lookup(path ...string) (*Property, bool) {
	current := property
	for _, name := range path {
		for current != nil && current.Type == TypeArray {
			current = current.Items
		}
		if current == nil {
			return nil, false
		}
		next, ok := current.Properties[name]
		if !ok || next == nil {
			return nil, false
		}
		current = next
	}
	return current, current != nil
}
