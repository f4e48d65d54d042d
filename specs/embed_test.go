package specs

import (
	"testing"

	sv "github.com/goschema/validator"
	"github.com/goschema/validator/jsontree"
)

func TestMetaschema(t *testing.T) {
	for _, d := range []sv.Draft{sv.Draft4, sv.Draft6, sv.Draft7} {
		meta, err := Metaschema(d)
		if err != nil {
			t.Fatalf("Metaschema(%s): %v", d, err)
		}
		obj, ok := meta.(*jsontree.Object)
		if !ok {
			t.Fatalf("Metaschema(%s) = %T, want *jsontree.Object", d, meta)
		}

		idKey := "$id"
		if d == sv.Draft4 {
			idKey = "id"
		}
		raw, ok := obj.Get(idKey)
		if !ok {
			t.Fatalf("%s metaschema has no %s", d, idKey)
		}
		id, _ := raw.(string)
		if got, ok := sv.DraftFromURL(id); !ok || got != d {
			t.Errorf("%s metaschema id %q does not round-trip", d, id)
		}
	}
}

func TestMetaschemaUnsupported(t *testing.T) {
	if _, err := Metaschema(sv.Draft(5)); err == nil {
		t.Error("unsupported draft should error")
	}
}

func TestMetaschemaShared(t *testing.T) {
	a, err := Metaschema(sv.Draft7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Metaschema(sv.Draft7)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("metaschema should be decoded once and shared")
	}
}

func TestMetaschemaForURL(t *testing.T) {
	meta, ok := MetaschemaForURL("http://json-schema.org/draft-07/schema#")
	if !ok || meta == nil {
		t.Error("draft-07 URL with fragment should resolve")
	}
	meta, ok = MetaschemaForURL("http://json-schema.org/draft-06/schema")
	if !ok || meta == nil {
		t.Error("draft-06 URL without fragment should resolve")
	}
	if _, ok := MetaschemaForURL("https://example.com/schema"); ok {
		t.Error("unknown URL should not resolve")
	}
}

func TestDraft4MetaschemaExclusives(t *testing.T) {
	meta, err := Metaschema(sv.Draft4)
	if err != nil {
		t.Fatal(err)
	}
	obj := meta.(*jsontree.Object)
	props, _ := obj.Get("properties")
	raw, ok := props.(*jsontree.Object).Get("exclusiveMinimum")
	if !ok {
		t.Fatal("draft-04 metaschema lacks exclusiveMinimum")
	}
	decl := raw.(*jsontree.Object)
	if typ, _ := decl.Get("type"); typ != "boolean" {
		t.Errorf("draft-04 exclusiveMinimum type = %v, want boolean", typ)
	}
}
