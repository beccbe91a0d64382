package topping

const (
	EventCreate = "TOPPING_CREATE"
	EventUpdate = "TOPPING_UPDATE"
	EventDelete = "TOPPING_DELETE"
)

// Event is published to the topping topic after every successful mutation.
type Event struct {
	EventType string    `json:"event_type"`
	Data      EventData `json:"data"`
}

type EventData struct {
	ID       string  `json:"id"`
	Price    float64 `json:"price"`
	TenantID string  `json:"tenantId"`
}

// SearchMapping is the Elasticsearch mapping for the topping index.
const SearchMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "keyword" },
			"tenantId": { "type": "keyword" },
			"name": { "type": "text" },
			"price": { "type": "double" },
			"image": { "type": "keyword", "index": false },
			"isPublish": { "type": "boolean" },
			"createdAt": { "type": "date" },
			"updatedAt": { "type": "date" }
		}
	}
}`
