package graph

import (
	"context"
	"fmt"

	"github.com/microsoft/kiota-abstractions-go/serialization"
	msgraphcore "github.com/microsoftgraph/msgraph-sdk-go-core"
)

// CollectAll returns every item of a Graph collection, following @odata.nextLink
// from the first response. convert maps each SDK item to a domain value.
func CollectAll[T any, R any](ctx context.Context, c *Client, first serialization.Parsable, factory serialization.ParsableFactory, convert func(T) R) ([]R, error) {
	it, err := msgraphcore.NewPageIterator[T](first, c.GraphClient.GetAdapter(), factory)
	if err != nil {
		return nil, fmt.Errorf("creating page iterator: %w", err)
	}

	var out []R
	err = it.Iterate(ctx, func(item T) bool {
		out = append(out, convert(item))
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
