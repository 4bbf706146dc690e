// Package resource defines the typed resource model consumed by the client:
// the Object interface every resource kind implements, the Unstructured
// generic kind, capability interfaces for common field groups, a kind-to-
// factory registry, and templated API path builders.
//
// Resource kinds are composed structurally: a concrete kind embeds
// Unstructured and picks up the capability interfaces (Labeled, Annotated,
// Specced, Statused) it cares about for free, overriding accessors only
// where its schema diverges.
package resource
