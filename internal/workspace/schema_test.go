package workspace

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSchemaHeader(t *testing.T) {
	schema := Schema()

	if schema.Title != "workspace schema" {
		t.Errorf("unexpected title %q", schema.Title)
	}
	if schema.Version != SchemaVersion {
		t.Errorf("expected version %d, got %d", SchemaVersion, schema.Version)
	}
	if schema.Type != TypeObject {
		t.Errorf("expected object root, got %q", schema.Type)
	}
	if got := schema.PrimaryKey(); got != "id" {
		t.Errorf("expected primary key id, got %q", got)
	}
}

func TestSchemaLookup(t *testing.T) {
	schema := Schema()

	tests := []struct {
		path     []string
		wantType string
		wantOK   bool
	}{
		{path: []string{"name"}, wantType: TypeString, wantOK: true},
		{path: []string{"avatars"}, wantType: TypeArray, wantOK: true},
		{path: []string{"avatars", "geometry", "width"}, wantType: TypeNumber, wantOK: true},
		{path: []string{"avatars", "style", "uiColor"}, wantType: TypeString, wantOK: true},
		{path: []string{"avatars", "condition", "locked"}, wantType: TypeBoolean, wantOK: true},
		{path: []string{"avatars", "date", "modifiedDate"}, wantType: TypeString, wantOK: true},
		{path: []string{"avatars", "missing"}, wantOK: false},
		{path: []string{"name", "nested"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.path, "."), func(t *testing.T) {
			property, ok := schema.Lookup(tt.path...)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && property.Type != tt.wantType {
				t.Errorf("expected type %q, got %q", tt.wantType, property.Type)
			}
		})
	}
}

func TestSchemaIsFreshPerCall(t *testing.T) {
	first := Schema()
	first.Properties["name"].Type = TypeNumber

	second := Schema()
	if second.Properties["name"].Type != TypeString {
		t.Fatal("mutating one descriptor leaked into the next")
	}
}

// The descriptor and the Go records must name the same fields.
func TestSchemaMatchesRecordFields(t *testing.T) {
	schema := Schema()

	if diff := cmp.Diff(propertyNames(schema.Properties), jsonFields(reflect.TypeOf(WorkspaceRecord{}))); diff != "" {
		t.Errorf("workspace fields mismatch (-schema +record):\n%s", diff)
	}

	avatar, ok := schema.Lookup("avatars")
	if !ok {
		t.Fatal("avatars property missing")
	}
	avatarType := reflect.TypeOf(AvatarRecord{})
	if diff := cmp.Diff(propertyNames(avatar.Items.Properties), jsonFields(avatarType)); diff != "" {
		t.Errorf("avatar fields mismatch (-schema +record):\n%s", diff)
	}

	for i := 0; i < avatarType.NumField(); i++ {
		field := avatarType.Field(i)
		if field.Type.Kind() != reflect.Struct {
			continue
		}
		name := jsonName(field)
		nested, ok := schema.Lookup("avatars", name)
		if !ok {
			t.Fatalf("avatar property %q missing", name)
		}
		if diff := cmp.Diff(propertyNames(nested.Properties), jsonFields(field.Type)); diff != "" {
			t.Errorf("%s fields mismatch (-schema +record):\n%s", name, diff)
		}
	}
}

func TestSchemaJSONShape(t *testing.T) {
	data, err := json.Marshal(Schema())
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}

	if decoded["type"] != TypeObject {
		t.Errorf("expected flattened type field, got %v", decoded["type"])
	}
	properties, ok := decoded["properties"].(map[string]any)
	if !ok {
		t.Fatalf("expected properties object, got %T", decoded["properties"])
	}
	id, ok := properties["id"].(map[string]any)
	if !ok || id["primary"] != true {
		t.Errorf("expected id to be marked primary, got %v", properties["id"])
	}
	name, _ := properties["name"].(map[string]any)
	if _, present := name["primary"]; present {
		t.Error("non-primary properties should omit the primary flag")
	}
}

func TestWorkspaceRecordJSON(t *testing.T) {
	record := WorkspaceRecord{
		ID:   "ws-1",
		Name: "Desk",
		Avatars: []AvatarRecord{{
			ID:        "card-1/avatar-1",
			Geometry:  Geometry{X: 10, Y: 20, Z: 2, Width: 300, Height: 200},
			Style:     Style{UIColor: "#f0f0f0", BackgroundColor: "#ffffff", Opacity: 1, Zoom: 1},
			Condition: Condition{Locked: true},
			Date:      Date{CreatedDate: "2021-01-01 00:00:00", ModifiedDate: "2021-01-02 00:00:00"},
		}},
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	for _, field := range []string{`"uiColor":"#f0f0f0"`, `"locked":true`, `"createdDate":"2021-01-01 00:00:00"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("expected %s in %s", field, data)
		}
	}
}

func propertyNames(properties map[string]*Property) []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func jsonFields(recordType reflect.Type) []string {
	names := make([]string, 0, recordType.NumField())
	for i := 0; i < recordType.NumField(); i++ {
		names = append(names, jsonName(recordType.Field(i)))
	}
	sort.Strings(names)
	return names
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	return name
}
