package notification

import "fmt"

// ContentKind identifies which kind of content triggered a fan-out.
type ContentKind string

const (
	KindPost ContentKind = "post"
	KindPoll ContentKind = "poll"
)

// ContentEvent describes one content-creation event. It is ephemeral: built
// by the feed layer after the creating transaction commits and discarded
// once the fan-out finishes.
type ContentEvent struct {
	AuthorID   string
	AuthorName string
	ContentID  string
	Kind       ContentKind
	// Extra is merged into the push data payload, values are coerced to
	// strings before hitting the gateway
	Extra map[string]interface{}
}

// BatchResult aggregates one fan-out pass. Constructed fresh per event; only
// the purge side effect outlives it.
type BatchResult struct {
	Total     int
	Delivered int
	Failed    int
	// InvalidTokens are the tokens the gateway rejected as permanently
	// invalid, to be cleared from user records
	InvalidTokens []string
	// GatewayDown marks a whole-batch failure at the gateway boundary.
	// Healthy tokens are never purged in that case.
	GatewayDown bool
}

// Success reports batch-wide success: at least one delivery went through.
func (b BatchResult) Success() bool {
	return b.Delivered > 0
}

// stringifyData coerces every payload value to a string, the gateway does
// not accept heterogeneous types.
func stringifyData(data map[string]interface{}) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = fmt.Sprint(v)
	}
	return out
}
