package client

import (
	"github.com/Jeffail/gabs"

	"github.com/wattle/kubeclient/internal/logging"
	"github.com/wattle/kubeclient/pkg/resource"
)

// materialize turns a response body into typed resources. A document with an
// items array becomes an ordered list, one resource per entry; anything else
// becomes a single resource. Every materialized resource is marked synced:
// its state just round-tripped through the server.
//
// Decoding is deliberately lenient: a malformed body yields an absent
// document rather than an error, so the factory sees nil and downstream code
// handles missing fields instead of the operation blowing up.
func (c *Cluster) materialize(factory resource.Factory, body []byte) Result {
	doc, err := gabs.ParseJSON(body)
	if err != nil {
		c.logger.Warn("response body did not decode, materializing absent document",
			logging.Err(err))
		return Result{Object: synced(factory(nil))}
	}

	if doc.Exists("items") {
		children, err := doc.S("items").Children()
		if err == nil {
			list := make([]resource.Object, 0, len(children))
			for _, child := range children {
				entry, _ := child.Data().(map[string]interface{})
				list = append(list, synced(factory(entry)))
			}
			return Result{List: list}
		}
		// items present but not an array; fall through to the singleton path
		c.logger.Warn("items field is not an array, materializing as singleton")
	}

	raw, _ := doc.Data().(map[string]interface{})
	return Result{Object: synced(factory(raw))}
}

func synced(obj resource.Object) resource.Object {
	obj.MarkSynced()
	return obj
}
