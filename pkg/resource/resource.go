package resource

import "encoding/json"

// Object is the interface every typed resource implements.
//
// A resource is a thin typed view over the raw JSON document the API server
// returned (or the caller built locally). The synced flag records whether the
// in-memory state matches the last server-confirmed state: resources that
// round-tripped through the API are synced, locally built ones are not.
type Object interface {
	// Kind returns the resource kind, e.g. "Pod".
	Kind() string

	// Raw returns the underlying decoded document. It may be nil for a
	// resource materialized from an empty or undecodable body.
	Raw() map[string]interface{}

	// Synced reports whether this resource's state was confirmed by the
	// server.
	Synced() bool

	// MarkSynced records that the current in-memory state equals the last
	// known server state.
	MarkSynced()
}

// Labeled is implemented by kinds that carry metadata labels.
type Labeled interface {
	Labels() map[string]string
}

// Annotated is implemented by kinds that carry metadata annotations.
type Annotated interface {
	Annotations() map[string]string
}

// Specced is implemented by kinds with a spec section.
type Specced interface {
	Spec() map[string]interface{}
}

// Statused is implemented by kinds with a status section.
type Statused interface {
	Status() map[string]interface{}
}

// Unstructured is the generic resource kind: a schemaless wrapper around a
// raw document. It implements Object and all capability interfaces, and is
// the embedding base for concrete kinds.
type Unstructured struct {
	doc    map[string]interface{}
	synced bool
}

// NewUnstructured wraps a decoded document. The resource starts unsynced;
// the client marks it synced once the state is server-confirmed.
func NewUnstructured(doc map[string]interface{}) *Unstructured {
	return &Unstructured{doc: doc}
}

// Generic is the default Factory, producing an Unstructured resource.
func Generic(doc map[string]interface{}) Object {
	return NewUnstructured(doc)
}

// Kind returns the document's kind field, or "" if absent.
func (u *Unstructured) Kind() string {
	return nestedString(u.doc, "kind")
}

// APIVersion returns the document's apiVersion field, or "" if absent.
func (u *Unstructured) APIVersion() string {
	return nestedString(u.doc, "apiVersion")
}

// Raw returns the underlying document.
func (u *Unstructured) Raw() map[string]interface{} {
	return u.doc
}

// Synced reports whether the resource state is server-confirmed.
func (u *Unstructured) Synced() bool {
	return u.synced
}

// MarkSynced flags the resource as matching the last known server state.
func (u *Unstructured) MarkSynced() {
	u.synced = true
}

// Name returns metadata.name, or "" if absent.
func (u *Unstructured) Name() string {
	return nestedString(u.doc, "metadata", "name")
}

// Namespace returns metadata.namespace, or "" if absent.
func (u *Unstructured) Namespace() string {
	return nestedString(u.doc, "metadata", "namespace")
}

// ResourceVersion returns metadata.resourceVersion, or "" if absent.
func (u *Unstructured) ResourceVersion() string {
	return nestedString(u.doc, "metadata", "resourceVersion")
}

// Labels returns metadata.labels as a string map. Absent or malformed labels
// yield an empty map.
func (u *Unstructured) Labels() map[string]string {
	return nestedStringMap(u.doc, "metadata", "labels")
}

// Annotations returns metadata.annotations as a string map.
func (u *Unstructured) Annotations() map[string]string {
	return nestedStringMap(u.doc, "metadata", "annotations")
}

// Spec returns the spec section, or nil if absent.
func (u *Unstructured) Spec() map[string]interface{} {
	return nestedMap(u.doc, "spec")
}

// Status returns the status section, or nil if absent.
func (u *Unstructured) Status() map[string]interface{} {
	return nestedMap(u.doc, "status")
}

// MarshalJSON serializes the raw document, so a resource round-trips to the
// same wire form it was materialized from. The synced flag is bookkeeping,
// not document content, and is not serialized.
func (u *Unstructured) MarshalJSON() ([]byte, error) {
	if u.doc == nil {
		return []byte("null"), nil
	}
	return json.Marshal(u.doc)
}

var (
	_ Object    = (*Unstructured)(nil)
	_ Labeled   = (*Unstructured)(nil)
	_ Annotated = (*Unstructured)(nil)
	_ Specced   = (*Unstructured)(nil)
	_ Statused  = (*Unstructured)(nil)
)

func nestedMap(doc map[string]interface{}, keys ...string) map[string]interface{} {
	cur := doc
	for _, key := range keys {
		next, ok := cur[key].(map[string]interface{})
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

func nestedString(doc map[string]interface{}, keys ...string) string {
	parent := doc
	if len(keys) > 1 {
		parent = nestedMap(doc, keys[:len(keys)-1]...)
	}
	if parent == nil {
		return ""
	}
	s, _ := parent[keys[len(keys)-1]].(string)
	return s
}

func nestedStringMap(doc map[string]interface{}, keys ...string) map[string]string {
	raw := nestedMap(doc, keys...)
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
